package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbox/quill/internal/storage"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, opts...)
}

func TestAuthInterceptorAddsBearer(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"content": []}`))
	}, WithInterceptor(AuthInterceptor(staticToken("token123"))))

	_, err := client.ListStories(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", gotAuth)
}

func TestAuthInterceptorSkipsEmptyToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"content": []}`))
	}, WithInterceptor(AuthInterceptor(staticToken(""))))

	_, err := client.ListStories(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedInterceptorFires(t *testing.T) {
	fired := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithInterceptor(UnauthorizedInterceptor(func() { fired = true })))

	_, err := client.GetStory(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.True(t, fired, "401 must invoke the unauthorized hook")
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message": "nope"}`))
			})
			_, err := client.GetStory(context.Background(), 7)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestTransportErrorWrapping(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", WithTimeout(200*time.Millisecond))

	_, err := client.ListCategories(context.Background())
	require.Error(t, err)

	var terr *TransportError
	assert.True(t, errors.As(err, &terr), "connection failures surface as TransportError")
}

func TestListStoriesDecodesTupleDates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stories", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		w.Write([]byte(`{
			"content": [{
				"id": 1,
				"title": "Ocean Tale",
				"content": "...",
				"status": "PUBLISHED",
				"privacy": "PUBLIC",
				"viewCount": 12,
				"createdAt": [2024, 1, 1, 8, 0, 0],
				"updatedAt": "2024-02-01T09:00:00",
				"publishedAt": [2023, 1, 1]
			}],
			"totalElements": 1,
			"totalPages": 1
		}`))
	})

	page, err := client.ListStories(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)

	story := page.Content[0]
	assert.Equal(t, int64(1), story.ID)
	assert.True(t, story.CreatedAt.Equal(time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local)))
	assert.True(t, story.PublishedAt.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, story.EffectiveDate().Equal(story.PublishedAt.Time))
}

func TestSetStoryCategory(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/stories/5/category", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"id": 5, "title": "t", "status": "DRAFT", "privacy": "PUBLIC", "createdAt": "2024-01-01T00:00:00", "updatedAt": "2024-01-01T00:00:00"}`))
	})

	catID := int64(3)
	_, err := client.SetStoryCategory(context.Background(), 5, &catID)
	require.NoError(t, err)
	assert.Equal(t, "categoryId=3", gotQuery)

	// Absent param means auto/uncategorized.
	_, err = client.SetStoryCategory(context.Background(), 5, nil)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestUploadImportArchive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "stories.zip", header.Filename)

		w.Write([]byte(`{"success": true, "jobId": 42, "status": "PENDING", "totalDocuments": 5}`))
	})

	job, err := client.UploadImportArchive(context.Background(), "stories.zip", strings.NewReader("zip-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), job.JobID)
	assert.Equal(t, ImportPending, job.Status)
	assert.Equal(t, 5, job.TotalDocuments)
}

func TestUploadImportArchive_BackendFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "archive is empty"}`))
	})

	_, err := client.UploadImportArchive(context.Background(), "stories.zip", strings.NewReader(""))
	require.Error(t, err)

	var remote *RemoteError
	require.True(t, errors.As(err, &remote), "2xx with success=false is a RemoteError")
	assert.Equal(t, "archive is empty", remote.Message)
}

func TestImportJobStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bulk-import/status/42", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"status": "RUNNING",
			"totalDocuments": 5,
			"processedFiles": 3,
			"createdStories": 2,
			"failedFiles": 1,
			"progress": 60,
			"errors": ["bad.docx: unreadable"]
		}`))
	})

	job, err := client.ImportJobStatus(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), job.JobID, "job id backfilled from the request")
	assert.Equal(t, ImportRunning, job.Status)
	assert.False(t, job.Status.Terminal())
	assert.Equal(t, 60.0, job.Progress)
	assert.Equal(t, []string{"bad.docx: unreadable"}, job.Errors)
}

func TestImportStatusTerminal(t *testing.T) {
	assert.False(t, ImportPending.Terminal())
	assert.False(t, ImportRunning.Terminal())
	assert.True(t, ImportCompleted.Terminal())
	assert.True(t, ImportFailed.Terminal())
	assert.True(t, ImportCancelled.Terminal())
}

func TestUploadImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("image")
		require.NoError(t, err)
		assert.Equal(t, "cover.png", header.Filename)
		w.Write([]byte(`{"success": true, "imageUrl": "/uploads/cover.png", "message": "ok"}`))
	})

	up, err := client.UploadImage(context.Background(), "cover.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/cover.png", up.ImageURL)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"accessToken": "tok", "tokenType": "Bearer", "username": "mona", "email": "m@example.com"}`))
	})

	resp, err := client.Login(context.Background(), LoginRequest{UsernameOrEmail: "mona", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "mona", resp.Username)
}

func TestCreateStory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id": 9, "title": "New", "status": "DRAFT", "privacy": "PRIVATE", "createdAt": "2024-01-01T00:00:00", "updatedAt": "2024-01-01T00:00:00"}`))
	})

	story, err := client.CreateStory(context.Background(), CreateStoryRequest{
		Title:   "New",
		Content: "body",
		Status:  storage.StatusDraft,
		Privacy: storage.PrivacyPrivate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), story.ID)
}
