package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-edit-server/internal/logging"
	"line-edit-server/internal/models"
)

func newHTTPServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	svc, dir := newTestStack(t)
	handler := NewHTTPHandler(svc, logging.New(io.Discard, "error"))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, dir
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func TestHTTPHealth(t *testing.T) {
	srv, _ := newHTTPServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPReadFile(t *testing.T) {
	srv, dir := newHTTPServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web.txt"), []byte("a\nb\n"), 0644))

	resp, body := postJSON(t, srv.URL+"/read_file", `{"name":"web.txt"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result models.ReadFileResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "a\nb", result.Content)
	assert.Equal(t, 2, result.TotalLines)
}

func TestHTTPEditFile(t *testing.T) {
	srv, dir := newHTTPServer(t)
	path := filepath.Join(dir, "edit.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0644))

	resp, body := postJSON(t, srv.URL+"/edit_file",
		`{"name":"edit.txt","edits":[{"lineNumber":2,"type":"replace","text":"B"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nB\nc\n", string(data))
}

func TestHTTPErrorStatusMapping(t *testing.T) {
	srv, dir := newHTTPServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "err.txt"), []byte("foo\n"), 0644))

	tests := []struct {
		name       string
		endpoint   string
		body       string
		wantStatus int
	}{
		{"not found", "/read_file", `{"name":"ghost.txt"}`, http.StatusNotFound},
		{"access denied", "/read_file", `{"name":"../../etc/passwd"}`, http.StatusForbidden},
		{"validation", "/edit_file",
			`{"name":"err.txt","edits":[{"lineNumber":99,"type":"delete"}]}`,
			http.StatusUnprocessableEntity},
		{"conflict", "/edit_file",
			`{"name":"err.txt","edits":[{"lineNumber":1,"type":"replace","text":"x","oldText":"missing"}]}`,
			http.StatusConflict},
		{"bad json", "/read_file", `{"name":`, http.StatusBadRequest},
		{"unknown field", "/read_file", `{"name":"err.txt","frobnicate":true}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, srv.URL+tt.endpoint, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))

			var errResp models.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.NotEmpty(t, errResp.Error.Message)
		})
	}
}

func TestHTTPRejectsGet(t *testing.T) {
	srv, _ := newHTTPServer(t)
	resp, err := http.Get(srv.URL + "/read_file")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHTTPRejectsWrongContentType(t *testing.T) {
	srv, _ := newHTTPServer(t)
	resp, err := http.Post(srv.URL+"/read_file", "text/plain", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestHTTPWriteAndList(t *testing.T) {
	srv, _ := newHTTPServer(t)

	resp, body := postJSON(t, srv.URL+"/write_file", `{"name":"made.txt","content":"one\ntwo\n"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var writeResp models.WriteFileResponse
	require.NoError(t, json.Unmarshal(body, &writeResp))
	assert.True(t, writeResp.FileCreated)

	resp, body = postJSON(t, srv.URL+"/list_files", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var listResp models.ListFilesResponse
	require.NoError(t, json.Unmarshal(body, &listResp))
	require.Equal(t, 1, len(listResp.Files))
	assert.Equal(t, "made.txt", listResp.Files[0].Name)
	assert.Equal(t, 2, listResp.Files[0].Lines)
}
