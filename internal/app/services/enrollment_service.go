package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

var tracer = otel.Tracer("services")

// EnrollmentService enrolls remote students into local courses.
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID int64) (models.EnrollOutcome, error)
}

type enrollmentServiceImpl struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
	students       StudentDirectory
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(courseRepo CourseStore, enrollmentRepo EnrollmentStore, students StudentDirectory, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		students:       students,
		logger:         logger.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll checks, in order: both ids present, the course exists locally, the
// student exists remotely, the pair is not yet enrolled. The first unmet
// condition ends the call. Repeating a successful call returns
// EnrollAlreadyEnrolled without error.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) (models.EnrollOutcome, error) {
	ctx, span := tracer.Start(ctx, "EnrollmentService.Enroll", trace.WithAttributes(
		attribute.Int64("student.id", studentID),
		attribute.Int64("course.id", courseID),
	))
	defer span.End()

	if studentID <= 0 || courseID <= 0 {
		return "", apperrors.NewBadRequestError("the fields 'student_id' and 'course_id' are required")
	}

	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return "", apperrors.ErrCourseNotFound
		}
		return "", fmt.Errorf("error loading course %d: %w", courseID, err)
	}

	if _, err := s.students.FetchStudent(ctx, studentID); err != nil {
		return "", fmt.Errorf("validating student %d: %w", studentID, err)
	}

	exists, err := s.enrollmentRepo.ExistsByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return "", fmt.Errorf("error checking enrollment: %w", err)
	}
	if exists {
		span.SetAttributes(attribute.String("enroll.outcome", string(models.EnrollAlreadyEnrolled)))
		return models.EnrollAlreadyEnrolled, nil
	}

	enrollment, err := s.enrollmentRepo.CreateEnrollment(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentExists) {
			// lost the race against a concurrent enroll of the same pair
			return models.EnrollAlreadyEnrolled, nil
		}
		return "", fmt.Errorf("error creating enrollment: %w", err)
	}

	span.SetAttributes(attribute.String("enroll.outcome", string(models.EnrollCreated)))
	s.logger.Info().
		Int64("enrollment_id", enrollment.ID).
		Int64("student_id", studentID).
		Int64("course_id", courseID).
		Msg("Student enrolled")
	return models.EnrollCreated, nil
}
