package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_student_course_key"}

	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", pgErr), "enrollments_student_course_key"))
	assert.False(t, IsDuplicateConstraintError(pgErr, "courses_pkey"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503"}, "enrollments_student_course_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "enrollments_student_course_key"))
}
