package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
	SearchCourses(ctx context.Context, filter models.CourseSearchFilter) ([]*models.Course, error)
	GetCoursesByStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
}

type courseServiceImpl struct {
	courseRepo CourseStore
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseStore, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	if course == nil {
		return 0, fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}

	id, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	s.logger.Info().Int64("course_id", id).Str("name", course.Name).Msg("Course created")
	return id, nil
}

func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}

	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}
	if course.ID <= 0 {
		return apperrors.ErrCourseNotFound
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrCourseNotFound
	}

	removed, err := s.courseRepo.DeleteCourse(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	s.logger.Info().Int64("course_id", id).Int64("enrollments_removed", removed).Msg("Course deleted")
	return nil
}

// SearchCourses requires at least one filter field. An empty match set is
// reported as a not-found error carrying a "no results" message.
func (s *courseServiceImpl) SearchCourses(ctx context.Context, filter models.CourseSearchFilter) ([]*models.Course, error) {
	if filter.IsEmpty() {
		return nil, apperrors.NewBadRequestError("provide at least one search parameter: q, name, instructor or category")
	}

	courses, err := s.courseRepo.SearchCourses(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("error searching courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, apperrors.NewResourceNotFoundError("no courses found")
	}
	return courses, nil
}

func (s *courseServiceImpl) GetCoursesByStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetCoursesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student courses: %w", err)
	}
	return courses, nil
}
