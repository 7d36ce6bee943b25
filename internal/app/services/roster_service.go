package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/courseservice/internal/app/clients"
	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

// RosterService builds course rosters enriched with remote student data.
type RosterService interface {
	ListStudentsForCourse(ctx context.Context, courseID int64) (*models.CourseRoster, error)
}

type rosterServiceImpl struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
	students       StudentDirectory
	logger         zerolog.Logger
}

// NewRosterService creates a new roster service instance
func NewRosterService(courseRepo CourseStore, enrollmentRepo EnrollmentStore, students StudentDirectory, logger zerolog.Logger) RosterService {
	return &rosterServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		students:       students,
		logger:         logger.With().Str("component", "roster_service").Logger(),
	}
}

// ListStudentsForCourse returns one row per enrollment, ordered by
// enrollment id. A student whose lookup fails gets a placeholder row; remote
// failures never fail the listing.
func (s *rosterServiceImpl) ListStudentsForCourse(ctx context.Context, courseID int64) (*models.CourseRoster, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error loading course %d: %w", courseID, err)
	}

	enrollments, err := s.enrollmentRepo.GetEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading enrollments for course %d: %w", courseID, err)
	}

	ids := make([]int64, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.StudentID
	}

	results := s.students.ValidateMany(ctx, ids)
	students := make([]models.StudentRecord, len(results))
	degraded := 0
	for i, res := range results {
		students[i] = rosterRow(res)
		if res.Err != nil {
			degraded++
		}
	}

	if degraded > 0 {
		s.logger.Warn().
			Int64("course_id", courseID).
			Int("students", len(students)).
			Int("placeholders", degraded).
			Msg("Roster served with placeholder rows")
	}

	return &models.CourseRoster{
		CourseID:   course.ID,
		CourseName: course.Name,
		Students:   students,
	}, nil
}

func rosterRow(res clients.StudentResult) models.StudentRecord {
	if res.Err == nil && res.Student != nil {
		return *res.Student
	}
	return models.PlaceholderStudent(res.StudentID, placeholderEmail(res.Err))
}

// placeholderEmail tells an absent student apart from an unreachable service.
func placeholderEmail(err error) string {
	var remoteErr *clients.RemoteError
	if errors.As(err, &remoteErr) && !remoteErr.Unreachable() {
		return models.PlaceholderEmailMissing
	}
	if errors.Is(err, apperrors.ErrStudentNotFound) || errors.Is(err, apperrors.ErrRemoteServiceError) {
		return models.PlaceholderEmailMissing
	}
	return models.PlaceholderEmailUnreachable
}
