package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{CodeParseError, http.StatusBadRequest},
		{CodeInvalidRequest, http.StatusBadRequest},
		{CodeInvalidParams, http.StatusBadRequest},
		{CodeMethodNotFound, http.StatusNotFound},
		{CodeNotFound, http.StatusNotFound},
		{CodeValidationFailed, http.StatusUnprocessableEntity},
		{CodeEncodingError, http.StatusUnprocessableEntity},
		{CodeConflict, http.StatusConflict},
		{CodeAccessDenied, http.StatusForbidden},
		{CodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{CodeLockFailed, http.StatusServiceUnavailable},
		{CodeInternalError, http.StatusInternalServerError},
		{-99999, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToHTTPStatus(tt.code), "code %d", tt.code)
	}
}

func TestToJSONRPCErrorLiftsFields(t *testing.T) {
	detail := NewNotFoundError("gone.txt", "edit")
	rpcErr := ToJSONRPCError(detail)
	require.NotNil(t, rpcErr)
	assert.Equal(t, CodeNotFound, rpcErr.Code)
	require.NotNil(t, rpcErr.Data)
	assert.Equal(t, "gone.txt", rpcErr.Data.Filename)
	assert.Equal(t, "edit", rpcErr.Data.Operation)
	assert.NotEmpty(t, rpcErr.Data.Timestamp)
}

func TestToJSONRPCErrorNil(t *testing.T) {
	assert.Nil(t, ToJSONRPCError(nil))
	assert.Nil(t, ToErrorResponse(nil))
}

func TestConflictErrorMessage(t *testing.T) {
	detail := NewConflictError("f.txt", 7, "needle")
	assert.Equal(t, CodeConflict, detail.Code)
	assert.Contains(t, detail.Message, "needle")
	assert.Contains(t, detail.Message, "line 7")
}

func TestValidationErrorCarriesIssues(t *testing.T) {
	issues := []string{"edit #1 (line 0): bad"}
	detail := NewValidationError("f.txt", issues, "edit #1 (line 0): bad")
	assert.Equal(t, CodeValidationFailed, detail.Code)

	data := detail.Data.(map[string]interface{})
	assert.Equal(t, issues, data["issues"])
	assert.Equal(t, "validation_failed", data["type"])
}

func TestFileTooLargeError(t *testing.T) {
	detail := NewFileTooLargeError("big.bin", 52428800, 10)
	assert.Equal(t, CodeFileTooLarge, detail.Code)
	assert.Contains(t, detail.Message, "52428800")
	assert.Contains(t, detail.Message, "10 MB")
}
