package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/courseservice/internal/app/clients"
	"github.com/yigit/courseservice/internal/app/models/dto"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
	"github.com/yigit/courseservice/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Unrecognized
// errors become a 500 envelope.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("Request failed")
	}
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	})
}

func errorResponse(err error) (int, *dto.ErrorDetail) {
	var custom *apperrors.CustomError
	hasCustom := errors.As(err, &custom)
	message := func(fallback string) string {
		if hasCustom && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeStudentNotFound, "Student not found in the Student service")
	case errors.Is(err, apperrors.ErrRemoteServiceError):
		detail := dto.NewErrorDetail(dto.ErrorCodeRemoteServiceError, "Student service returned an unexpected response")
		var remoteErr *clients.RemoteError
		if errors.As(err, &remoteErr) {
			detail = detail.WithDetails(map[string]interface{}{"upstreamStatus": remoteErr.StatusCode})
		}
		return http.StatusBadGateway, detail
	case errors.Is(err, apperrors.ErrRemoteUnavailable):
		detail := dto.NewErrorDetail(dto.ErrorCodeRemoteUnavailable, "Student service unavailable")
		var remoteErr *clients.RemoteError
		if errors.As(err, &remoteErr) {
			detail = detail.WithDetails(map[string]interface{}{"reason": remoteErr.Error()})
		}
		return http.StatusServiceUnavailable, detail
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Resource already exists"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))
		if hasCustom && custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message("Bad request"))
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
