package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseservice/internal/app/clients"
	"github.com/yigit/courseservice/internal/app/models"
	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

func TestListStudentsForCourse_OneRemoteFailureYieldsPlaceholder(t *testing.T) {
	store := newMemStore()
	dir := &fakeDirectory{failures: map[int64]clients.RemoteErrorKind{22: clients.KindUnavailable}}
	enroll := NewEnrollmentService(store, store, &fakeDirectory{}, zerolog.Nop())
	roster := NewRosterService(store, store, dir, zerolog.Nop())

	courseID := store.addCourse("Python Programming", "Dr. Sara", "Programmation", "Lundi 9h-11h")
	for _, id := range []int64{11, 22, 33} {
		_, err := enroll.Enroll(context.Background(), id, courseID)
		require.NoError(t, err)
	}

	got, err := roster.ListStudentsForCourse(context.Background(), courseID)
	require.NoError(t, err)

	assert.Equal(t, courseID, got.CourseID)
	assert.Equal(t, "Python Programming", got.CourseName)
	require.Len(t, got.Students, 3)

	assert.Equal(t, int64(11), got.Students[0].ID)
	assert.Equal(t, "First", got.Students[0].FirstName)
	assert.Equal(t, models.StudentRecord{
		ID:        22,
		FirstName: "Étudiant",
		LastName:  "#22",
		Email:     "Service indisponible",
	}, got.Students[1])
	assert.Equal(t, int64(33), got.Students[2].ID)
	assert.Equal(t, "student@school.test", got.Students[2].Email)
}

func TestListStudentsForCourse_PlaceholderEmailDependsOnFailureKind(t *testing.T) {
	store := newMemStore()
	courseID := store.addCourse("Algebra", "Dr. Amine", "Math", "Mardi")
	kinds := map[int64]clients.RemoteErrorKind{
		1: clients.KindNotFound,
		2: clients.KindServiceError,
		3: clients.KindTimeout,
		4: clients.KindUnavailable,
		5: clients.KindUnknown,
	}
	for id := int64(1); id <= 5; id++ {
		_, err := store.CreateEnrollment(context.Background(), id, courseID)
		require.NoError(t, err)
	}

	got, err := NewRosterService(store, store, &fakeDirectory{failures: kinds}, zerolog.Nop()).
		ListStudentsForCourse(context.Background(), courseID)
	require.NoError(t, err)

	emails := make([]string, len(got.Students))
	for i, s := range got.Students {
		emails[i] = s.Email
	}
	assert.Equal(t, []string{
		"Non disponible",
		"Non disponible",
		"Service indisponible",
		"Service indisponible",
		"Service indisponible",
	}, emails)
}

func TestListStudentsForCourse_EmptyCourse(t *testing.T) {
	store := newMemStore()
	courseID := store.addCourse("Algebra", "Dr. Amine", "Math", "Mardi")

	got, err := NewRosterService(store, store, &fakeDirectory{}, zerolog.Nop()).
		ListStudentsForCourse(context.Background(), courseID)

	require.NoError(t, err)
	assert.Empty(t, got.Students)
	assert.NotNil(t, got.Students)
}

func TestDeleteCourse_CascadesAndRosterReportsNotFound(t *testing.T) {
	store := newMemStore()
	dir := &fakeDirectory{}
	courses := NewCourseService(store, zerolog.Nop())
	enroll := NewEnrollmentService(store, store, dir, zerolog.Nop())
	roster := NewRosterService(store, store, dir, zerolog.Nop())

	courseID := store.addCourse("Algebra", "Dr. Amine", "Math", "Mardi")
	for _, id := range []int64{1, 2} {
		_, err := enroll.Enroll(context.Background(), id, courseID)
		require.NoError(t, err)
	}

	require.NoError(t, courses.DeleteCourse(context.Background(), courseID))

	assert.Zero(t, store.enrollmentCount(courseID))
	_, err := roster.ListStudentsForCourse(context.Background(), courseID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
