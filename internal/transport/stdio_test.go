package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-edit-server/internal/config"
	"line-edit-server/internal/errors"
	"line-edit-server/internal/filesystem"
	"line-edit-server/internal/lock"
	"line-edit-server/internal/logging"
	"line-edit-server/internal/mcp"
	"line-edit-server/internal/models"
	"line-edit-server/internal/sandbox"
	"line-edit-server/internal/service"
)

func newTestStack(t *testing.T) (service.FileService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Roots = []string{dir}

	box, err := sandbox.New(cfg.Roots)
	require.NoError(t, err)
	svc, err := service.New(filesystem.NewOSAdapter(), lock.NewFlockManager(), box, cfg,
		logging.New(io.Discard, "error"))
	require.NoError(t, err)
	return svc, box.Roots()[0]
}

// run feeds newline-delimited JSON-RPC requests through the handler and
// decodes one response per request line.
func run(t *testing.T, svc service.FileService, requests ...string) []models.JSONRPCResponse {
	t.Helper()
	handler := NewStdioHandler(svc, mcp.NewProcessor(svc), logging.New(io.Discard, "error"))

	var out bytes.Buffer
	input := strings.NewReader(strings.Join(requests, "\n") + "\n")
	require.NoError(t, handler.Start(input, &out))

	var responses []models.JSONRPCResponse
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp models.JSONRPCResponse
		require.NoError(t, json.Unmarshal([]byte(line), &resp), line)
		responses = append(responses, resp)
	}
	return responses
}

func TestStdioReadFile(t *testing.T) {
	svc, dir := newTestStack(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi\nthere\n"), 0644))

	resps := run(t, svc,
		`{"jsonrpc":"2.0","id":1,"method":"read_file","params":{"name":"hello.txt"}}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)
	assert.Equal(t, float64(1), resps[0].ID)

	result := resps[0].Result.(map[string]interface{})
	assert.Equal(t, "hi\nthere", result["content"])
	assert.Equal(t, float64(2), result["total_lines"])
}

func TestStdioEditFile(t *testing.T) {
	svc, dir := newTestStack(t)
	path := filepath.Join(dir, "edit-me.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0644))

	resps := run(t, svc,
		`{"jsonrpc":"2.0","id":"e1","method":"edit_file","params":{"name":"edit-me.txt","edits":[{"lineNumber":2,"type":"delete"}]}}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", string(data))
}

func TestStdioParseError(t *testing.T) {
	svc, _ := newTestStack(t)
	resps := run(t, svc, `{not json`)
	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, errors.CodeParseError, resps[0].Error.Code)
}

func TestStdioInvalidVersion(t *testing.T) {
	svc, _ := newTestStack(t)
	resps := run(t, svc, `{"jsonrpc":"1.0","id":1,"method":"list_files"}`)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, errors.CodeInvalidRequest, resps[0].Error.Code)
}

func TestStdioMethodNotFound(t *testing.T) {
	svc, _ := newTestStack(t)
	resps := run(t, svc, `{"jsonrpc":"2.0","id":1,"method":"delete_everything"}`)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, errors.CodeMethodNotFound, resps[0].Error.Code)
}

func TestStdioErrorCarriesFilename(t *testing.T) {
	svc, _ := newTestStack(t)
	resps := run(t, svc,
		`{"jsonrpc":"2.0","id":9,"method":"read_file","params":{"name":"ghost.txt"}}`)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, errors.CodeNotFound, resps[0].Error.Code)
	require.NotNil(t, resps[0].Error.Data)
	assert.Equal(t, "ghost.txt", resps[0].Error.Data.Filename)
	assert.NotEmpty(t, resps[0].Error.Data.Timestamp)
}

// An edit instruction without a type tag is a schema error, not a default
// insert.
func TestStdioEditMissingType(t *testing.T) {
	svc, dir := newTestStack(t)
	path := filepath.Join(dir, "typed.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0644))

	resps := run(t, svc,
		`{"jsonrpc":"2.0","id":1,"method":"edit_file","params":{"name":"typed.txt","edits":[{"lineNumber":2,"text":"X"}]}}`)
	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, errors.CodeInvalidParams, resps[0].Error.Code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(data))
}

func TestStdioSkipsBlankLines(t *testing.T) {
	svc, _ := newTestStack(t)
	handler := NewStdioHandler(svc, nil, logging.New(io.Discard, "error"))
	var out bytes.Buffer
	require.NoError(t, handler.Start(strings.NewReader("\n   \n"), &out))
	assert.Empty(t, out.String())
}

func TestStdioMultipleRequests(t *testing.T) {
	svc, dir := newTestStack(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "multi.txt"), []byte("x\n"), 0644))

	resps := run(t, svc,
		`{"jsonrpc":"2.0","id":1,"method":"read_file","params":{"name":"multi.txt"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"list_files","params":{}}`)
	require.Len(t, resps, 2)
	assert.Equal(t, float64(1), resps[0].ID)
	assert.Equal(t, float64(2), resps[1].ID)
	assert.Nil(t, resps[0].Error)
	assert.Nil(t, resps[1].Error)
}

func TestStdioMCPInitialize(t *testing.T) {
	svc, _ := newTestStack(t)
	resps := run(t, svc, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	result := resps[0].Result.(map[string]interface{})
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	serverInfo := result["serverInfo"].(map[string]interface{})
	assert.Equal(t, "line-edit-server", serverInfo["name"])
}

func TestStdioMCPToolsCall(t *testing.T) {
	svc, dir := newTestStack(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool.txt"), []byte("a\nb\n"), 0644))

	resps := run(t, svc,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"read_file","arguments":{"name":"tool.txt"}}}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	result := resps[0].Result.(map[string]interface{})
	assert.Equal(t, false, result["isError"])
	content := result["content"].([]interface{})
	require.Len(t, content, 1)
	text := content[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "Total lines: 2")
}

// Without an MCP processor the MCP vocabulary falls through to the plain
// dispatcher and is rejected as unknown.
func TestStdioWithoutProcessor(t *testing.T) {
	svc, _ := newTestStack(t)
	handler := NewStdioHandler(svc, nil, logging.New(io.Discard, "error"))
	var out bytes.Buffer
	require.NoError(t, handler.Start(
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`+"\n"), &out))

	var resp models.JSONRPCResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, errors.CodeMethodNotFound, resp.Error.Code)
}
