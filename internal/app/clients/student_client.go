package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

var tracer = otel.Tracer("student_client")

// RemoteErrorKind classifies a failed call to the Student service.
type RemoteErrorKind string

const (
	KindNotFound     RemoteErrorKind = "NOT_FOUND"
	KindServiceError RemoteErrorKind = "SERVICE_ERROR"
	KindTimeout      RemoteErrorKind = "TIMEOUT"
	KindUnavailable  RemoteErrorKind = "UNAVAILABLE"
	KindUnknown      RemoteErrorKind = "UNKNOWN"
)

// RemoteError is returned by FetchStudent for every unsuccessful lookup.
// It unwraps to the matching apperrors sentinel and to the transport cause.
type RemoteError struct {
	Kind       RemoteErrorKind
	StudentID  int64
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("student %d not found", e.StudentID)
	case KindServiceError:
		return fmt.Sprintf("student service error: %d", e.StatusCode)
	case KindTimeout:
		return "student service timeout"
	case KindUnavailable:
		return "student service unavailable"
	default:
		return fmt.Sprintf("unexpected error: %v", e.Err)
	}
}

func (e *RemoteError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *RemoteError) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return apperrors.ErrStudentNotFound
	case KindServiceError:
		return apperrors.ErrRemoteServiceError
	default:
		return apperrors.ErrRemoteUnavailable
	}
}

// Unreachable reports whether the service could not be reached at all, as
// opposed to answering with something other than the student.
func (e *RemoteError) Unreachable() bool {
	return e.Kind == KindTimeout || e.Kind == KindUnavailable || e.Kind == KindUnknown
}

// StudentResult is the outcome of one lookup in a batch.
type StudentResult struct {
	StudentID int64
	Student   *models.StudentRecord
	Err       error
}

// StudentClientConfig configures the Student service client.
type StudentClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxConcurrency int
}

// StudentClient calls the Student service. It holds no mutable state after
// construction and is safe for concurrent use.
type StudentClient struct {
	http           *resty.Client
	maxConcurrency int
	logger         zerolog.Logger
}

// studentPayload is the wire shape served by the Student service.
type studentPayload struct {
	ID        *int64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// NewStudentClient creates a client for cfg.BaseURL. Retries are disabled.
func NewStudentClient(cfg StudentClientConfig, logger zerolog.Logger) *StudentClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &StudentClient{
		http:           httpClient,
		maxConcurrency: cfg.MaxConcurrency,
		logger:         logger.With().Str("component", "student_client").Logger(),
	}
}

// FetchStudent retrieves one student. Every failure is a *RemoteError.
func (c *StudentClient) FetchStudent(ctx context.Context, studentID int64) (*models.StudentRecord, error) {
	ctx, span := tracer.Start(ctx, "StudentClient.FetchStudent")
	defer span.End()
	span.SetAttributes(attribute.Int64("student.id", studentID))

	student, err := c.fetch(ctx, studentID)
	if err != nil {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			span.SetAttributes(attribute.String("student.lookup_failure", string(remoteErr.Kind)))
			c.logger.Error().
				Err(remoteErr.Err).
				Int64("student_id", studentID).
				Str("kind", string(remoteErr.Kind)).
				Int("status", remoteErr.StatusCode).
				Msg("Student service call failed")
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return student, nil
}

func (c *StudentClient) fetch(ctx context.Context, studentID int64) (*models.StudentRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/" + strconv.FormatInt(studentID, 10))
	if err != nil {
		return nil, &RemoteError{Kind: classifyTransportError(err), StudentID: studentID, Err: err}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &RemoteError{Kind: KindNotFound, StudentID: studentID, StatusCode: resp.StatusCode()}
	default:
		return nil, &RemoteError{Kind: KindServiceError, StudentID: studentID, StatusCode: resp.StatusCode()}
	}

	var payload studentPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, &RemoteError{
			Kind:       KindUnknown,
			StudentID:  studentID,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("decoding student payload: %w", err),
		}
	}

	record := &models.StudentRecord{
		ID:        studentID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	}
	if payload.ID != nil {
		record.ID = *payload.ID
	}
	return record, nil
}

// ValidateMany looks up every id independently. The result slice has one
// entry per id in input order; a failure never stops the other lookups.
func (c *StudentClient) ValidateMany(ctx context.Context, studentIDs []int64) []StudentResult {
	results := make([]StudentResult, len(studentIDs))

	var g errgroup.Group
	g.SetLimit(c.maxConcurrency)
	for i, id := range studentIDs {
		i, id := i, id
		g.Go(func() error {
			student, err := c.FetchStudent(ctx, id)
			results[i] = StudentResult{StudentID: id, Student: student, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Exists reports whether the Student service returns the student.
func (c *StudentClient) Exists(ctx context.Context, studentID int64) bool {
	_, err := c.FetchStudent(ctx, studentID)
	return err == nil
}

func classifyTransportError(err error) RemoteErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || errors.Is(err, syscall.ECONNREFUSED) {
		return KindUnavailable
	}

	return KindUnknown
}
