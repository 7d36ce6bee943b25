package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/courseservice/internal/pkg/apperrors"
)

// fakeStudentService serves /api/students/{id} from a fixed table; ids listed
// in statuses answer with that status instead.
func fakeStudentService(t *testing.T, statuses map[string]int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		id := strings.TrimPrefix(r.URL.Path, "/api/students/")
		if status, ok := statuses[id]; ok {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": %s, "firstName": "First%s", "lastName": "Last%s", "email": "s%s@school.test"}`, id, id, id, id)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(baseURL string, timeout time.Duration) *StudentClient {
	return NewStudentClient(StudentClientConfig{
		BaseURL:        baseURL,
		Timeout:        timeout,
		MaxConcurrency: 3,
	}, zerolog.Nop())
}

func TestFetchStudent_Success(t *testing.T) {
	srv, _ := fakeStudentService(t, nil)
	client := newTestClient(srv.URL+"/api/students/", time.Second)

	student, err := client.FetchStudent(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), student.ID)
	assert.Equal(t, "First7", student.FirstName)
	assert.Equal(t, "Last7", student.LastName)
	assert.Equal(t, "s7@school.test", student.Email)
}

func TestFetchStudent_MissingOptionalFieldsDefaultToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"firstName": "Ada"}`))
	}))
	defer srv.Close()

	student, err := newTestClient(srv.URL, time.Second).FetchStudent(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), student.ID)
	assert.Equal(t, "Ada", student.FirstName)
	assert.Empty(t, student.LastName)
	assert.Empty(t, student.Email)
}

func TestFetchStudent_ClassifiesFailures(t *testing.T) {
	srv, _ := fakeStudentService(t, map[string]int{"404": http.StatusNotFound, "500": http.StatusInternalServerError})
	client := newTestClient(srv.URL+"/api/students", time.Second)

	_, err := client.FetchStudent(context.Background(), 404)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, KindNotFound, remoteErr.Kind)
	assert.Equal(t, int64(404), remoteErr.StudentID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.False(t, remoteErr.Unreachable())

	_, err = client.FetchStudent(context.Background(), 500)
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, KindServiceError, remoteErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.ErrorIs(t, err, apperrors.ErrRemoteServiceError)
	assert.NotErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestFetchStudent_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestClient(srv.URL, 50*time.Millisecond).FetchStudent(context.Background(), 1)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, KindTimeout, remoteErr.Kind)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
	assert.True(t, remoteErr.Unreachable())
}

func TestFetchStudent_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, time.Second).FetchStudent(context.Background(), 1)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, KindUnavailable, remoteErr.Kind)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
}

func TestFetchStudent_UnknownTransportFault(t *testing.T) {
	_, err := newTestClient("ftp://students.invalid", time.Second).FetchStudent(context.Background(), 1)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, KindUnknown, remoteErr.Kind)
	assert.NotNil(t, remoteErr.Err)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
}

func TestFetchStudent_UndecodableBodyIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).FetchStudent(context.Background(), 3)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, KindUnknown, remoteErr.Kind)
}

func TestValidateMany_PreservesOrderAndDoesNotShortCircuit(t *testing.T) {
	srv, calls := fakeStudentService(t, map[string]int{"2": http.StatusNotFound, "4": http.StatusBadGateway})
	client := newTestClient(srv.URL+"/api/students", time.Second)

	ids := []int64{5, 2, 9, 4, 1}
	results := client.ValidateMany(context.Background(), ids)

	require.Len(t, results, len(ids))
	assert.Equal(t, int32(len(ids)), atomic.LoadInt32(calls))
	for i, id := range ids {
		assert.Equal(t, id, results[i].StudentID)
	}
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "First5", results[0].Student.FirstName)
	assert.True(t, errors.Is(results[1].Err, apperrors.ErrStudentNotFound))
	assert.Nil(t, results[1].Student)
	assert.NoError(t, results[2].Err)
	assert.True(t, errors.Is(results[3].Err, apperrors.ErrRemoteServiceError))
	assert.NoError(t, results[4].Err)
}

func TestValidateMany_Empty(t *testing.T) {
	assert.Empty(t, newTestClient("http://localhost:1", time.Second).ValidateMany(context.Background(), nil))
}

func TestExists(t *testing.T) {
	srv, _ := fakeStudentService(t, map[string]int{"8": http.StatusNotFound})
	client := newTestClient(srv.URL+"/api/students", time.Second)

	assert.True(t, client.Exists(context.Background(), 7))
	assert.False(t, client.Exists(context.Background(), 8))
}
