package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseNotFoundUnwrapsToResourceNotFound(t *testing.T) {
	wrapped := fmt.Errorf("loading roster: %w", ErrCourseNotFound)

	assert.True(t, errors.Is(wrapped, ErrCourseNotFound))
	assert.True(t, errors.Is(wrapped, ErrResourceNotFound))
	assert.Equal(t, "loading roster: course not found", wrapped.Error())
}

func TestIsMatchesAnyCandidate(t *testing.T) {
	err := fmt.Errorf("enroll: %w", ErrRemoteUnavailable)

	assert.True(t, Is(err, ErrStudentNotFound, ErrRemoteServiceError, ErrRemoteUnavailable))
	assert.False(t, Is(err, ErrStudentNotFound, ErrRemoteServiceError))
}

func TestCustomErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "bad request", (&CustomError{Err: ErrBadRequest}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
	assert.Equal(t, "name is required", NewValidationError("name", "name is required").Error())
}
