package services

import (
	"context"
	"sync/atomic"

	"github.com/yigit/courseservice/internal/app/clients"
	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/app/repositories/memory"
)

// memStore wraps the in-memory repository with test helpers.
type memStore struct {
	*memory.Store

	// skipExistsCheck makes ExistsByStudentAndCourse always report false,
	// simulating a concurrent enroll that passed the check first.
	skipExistsCheck bool
}

func newMemStore() *memStore {
	return &memStore{Store: memory.NewStore()}
}

func (m *memStore) addCourse(name, instructor, category, schedule string) int64 {
	id, _ := m.CreateCourse(context.Background(), &models.Course{Name: name, Instructor: instructor, Category: category, Schedule: schedule})
	return id
}

func (m *memStore) enrollmentCount(courseID int64) int {
	return m.CountEnrollments(courseID)
}

func (m *memStore) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	if m.skipExistsCheck {
		return false, nil
	}
	return m.Store.ExistsByStudentAndCourse(ctx, studentID, courseID)
}

// fakeDirectory answers every student with a synthetic record unless a
// RemoteErrorKind is registered for the id.
type fakeDirectory struct {
	failures map[int64]clients.RemoteErrorKind
	calls    int32
}

func (f *fakeDirectory) FetchStudent(ctx context.Context, studentID int64) (*models.StudentRecord, error) {
	atomic.AddInt32(&f.calls, 1)
	if kind, ok := f.failures[studentID]; ok {
		return nil, &clients.RemoteError{Kind: kind, StudentID: studentID, StatusCode: statusFor(kind)}
	}
	return &models.StudentRecord{
		ID:        studentID,
		FirstName: "First",
		LastName:  "Last",
		Email:     "student@school.test",
	}, nil
}

func (f *fakeDirectory) ValidateMany(ctx context.Context, studentIDs []int64) []clients.StudentResult {
	results := make([]clients.StudentResult, len(studentIDs))
	for i, id := range studentIDs {
		student, err := f.FetchStudent(ctx, id)
		results[i] = clients.StudentResult{StudentID: id, Student: student, Err: err}
	}
	return results
}

func (f *fakeDirectory) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func statusFor(kind clients.RemoteErrorKind) int {
	switch kind {
	case clients.KindNotFound:
		return 404
	case clients.KindServiceError:
		return 500
	default:
		return 0
	}
}
