// Package memory is a process-local course and enrollment store. It backs
// the "memory" database driver for local runs without PostgreSQL and keeps
// the same contracts as the PostgreSQL repositories: unique
// (student_id, course_id) pairs and cascading course deletion.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

// Store implements services.CourseStore and services.EnrollmentStore.
type Store struct {
	mu           sync.RWMutex
	nextCourseID int64
	nextEnrollID int64
	courses      map[int64]models.Course
	enrollments  []models.Enrollment
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{courses: map[int64]models.Course{}}
}

func (s *Store) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCourseID++
	c := *course
	c.ID = s.nextCourseID
	s.courses[c.ID] = c
	return c.ID, nil
}

func (s *Store) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &c, nil
}

func (s *Store) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.collect(func(*models.Course) bool { return true }), nil
}

func (s *Store) SearchCourses(ctx context.Context, filter models.CourseSearchFilter) ([]*models.Course, error) {
	return s.collect(filter.Matches), nil
}

func (s *Store) GetCoursesByStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Course{}
	for _, e := range s.enrollments {
		if e.StudentID == studentID {
			c := s.courses[e.CourseID]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *Store) UpdateCourse(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	s.courses[course.ID] = *course
	return nil
}

func (s *Store) DeleteCourse(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return 0, apperrors.ErrCourseNotFound
	}
	delete(s.courses, id)

	kept := s.enrollments[:0]
	var removed int64
	for _, e := range s.enrollments {
		if e.CourseID == id {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.enrollments = kept
	return removed, nil
}

func (s *Store) CreateEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[courseID]; !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	if s.indexOf(studentID, courseID) >= 0 {
		return nil, apperrors.ErrEnrollmentExists
	}
	s.nextEnrollID++
	e := models.Enrollment{ID: s.nextEnrollID, StudentID: studentID, CourseID: courseID, CreatedAt: time.Now()}
	s.enrollments = append(s.enrollments, e)
	return &e, nil
}

func (s *Store) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(studentID, courseID) >= 0, nil
}

func (s *Store) GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Enrollment{}
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			cp := e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// CountEnrollments returns how many enrollments reference courseID.
func (s *Store) CountEnrollments(courseID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n
}

func (s *Store) indexOf(studentID, courseID int64) int {
	for i, e := range s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return i
		}
	}
	return -1
}

func (s *Store) collect(keep func(*models.Course) bool) []*models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Course{}
	for _, c := range s.courses {
		c := c
		if keep(&c) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
