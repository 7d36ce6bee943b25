package services

import (
	"context"

	"github.com/yigit/courseservice/internal/app/clients"
	"github.com/yigit/courseservice/internal/app/models"
)

// CourseStore is the course persistence used by the services. It is
// implemented by repositories.CourseRepository.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	SearchCourses(ctx context.Context, filter models.CourseSearchFilter) ([]*models.Course, error)
	GetCoursesByStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) (int64, error)
}

// EnrollmentStore is the enrollment persistence used by the services. It is
// implemented by repositories.EnrollmentRepository.
type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
}

// StudentDirectory is the remote Student service. It is implemented by
// clients.StudentClient.
type StudentDirectory interface {
	FetchStudent(ctx context.Context, studentID int64) (*models.StudentRecord, error)
	ValidateMany(ctx context.Context, studentIDs []int64) []clients.StudentResult
}
