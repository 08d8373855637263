package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"media-feed/pkg/config"
	"media-feed/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method  string
	path    string
	tagging string
	ctype   string
	body    string
}

type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.requests...)
}

func newTestServer(t *testing.T, status int) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.requests = append(rec.requests, capturedRequest{
			method:  r.Method,
			path:    r.URL.Path,
			tagging: r.Header.Get("X-Amz-Tagging"),
			ctype:   r.Header.Get("Content-Type"),
			body:    string(body),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(t *testing.T, endpoint, publicURL string) *Client {
	t.Helper()
	client, err := newClient(&config.Config{
		StoragePublicKey:   "public",
		StoragePrivateKey:  "private",
		StorageURLEndpoint: publicURL,
		StorageEndpoint:    endpoint,
		StorageRegion:      "us-east-1",
		StorageBucket:      "media",
		StorageFolder:      "posts",
	})
	require.NoError(t, err)
	return client
}

func TestUpload_Success(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK)
	client := newTestClient(t, srv.URL, "https://cdn.example.com")

	content := "fake-jpeg"
	result, err := client.Upload(context.Background(), strings.NewReader(content), int64(len(content)), "a.jpg", storage.UploadOptions{
		UseUniqueFileName: true,
		Tags:              []string{"backend-upload"},
		ContentType:       "image/jpeg",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.HTTPStatusCode)
	assert.True(t, strings.HasPrefix(result.Name, "a_"))
	assert.Equal(t, "posts/"+result.Name, result.FileID)
	assert.Equal(t, "https://cdn.example.com/posts/"+result.Name, result.URL)

	requests := captured.all()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/media/posts/"+result.Name, req.path)
	assert.Equal(t, "backend-upload=true", req.tagging)
	assert.Equal(t, "image/jpeg", req.ctype)
	assert.Equal(t, content, req.body)
}

func TestUpload_EndpointURLWithoutPublicBase(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK)
	client := newTestClient(t, srv.URL, "")

	result, err := client.Upload(context.Background(), strings.NewReader("x"), 1, "clip.mp4", storage.UploadOptions{})
	require.NoError(t, err)

	host := strings.TrimPrefix(srv.URL, "http://")
	assert.Equal(t, "clip.mp4", result.Name)
	assert.Equal(t, "http://"+host+"/media/posts/clip.mp4", result.URL)
}

func TestUpload_Rejected(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusForbidden)
	client := newTestClient(t, srv.URL, "")

	result, err := client.Upload(context.Background(), strings.NewReader("x"), 1, "a.jpg", storage.UploadOptions{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestDelete(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusNoContent)
	client := newTestClient(t, srv.URL, "")

	require.NoError(t, client.Delete(context.Background(), "posts/x.jpg"))
	requests := captured.all()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodDelete, requests[0].method)
	assert.Equal(t, "/media/posts/x.jpg", requests[0].path)
}

func TestObjectURL_AWS(t *testing.T) {
	client := newTestClient(t, "", "")
	assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com/posts/x.jpg", client.objectURL("posts/x.jpg"))
}
