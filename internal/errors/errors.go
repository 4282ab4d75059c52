// Package errors defines the error taxonomy of the edit engine and its
// JSON-RPC/HTTP representations. Every failure that reaches a transport is
// one of these structured details; nothing crosses the boundary uncaught.
package errors

import (
	"fmt"
	"net/http"
	"time"

	"line-edit-server/internal/models"
)

// JSON-RPC error codes (JSON-RPC 2.0 specification).
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Application error codes, one per member of the taxonomy.
const (
	// CodeValidationFailed: a semantically invalid instruction (bad range,
	// missing required field). The batch failed atomically; the data field
	// carries every discovered issue, not just the first.
	CodeValidationFailed = -32001

	// CodeConflict: a Replace whose oldText was absent from its target
	// line at apply time. The file is untouched.
	CodeConflict = -32002

	// CodeNotFound: the target file is absent for an edit or read.
	CodeNotFound = -32003

	// CodeAccessDenied: the sandbox rejected the requested path.
	CodeAccessDenied = -32004

	// CodeEncodingError: unsupported encoding name or content not
	// representable in the requested encoding.
	CodeEncodingError = -32005

	// CodeIOError: an underlying read/write failed. Not retried; the
	// caller may retry. A failure mid-write can leave the file
	// inconsistent.
	CodeIOError = -32006

	// CodeLockFailed: the per-path advisory lock could not be acquired in
	// time. The lock is best-effort only; it is not a cross-request
	// consistency guarantee.
	CodeLockFailed = -32007

	// CodeFileTooLarge: the file or request exceeds the configured limits.
	CodeFileTooLarge = -32008
)

// NewErrorDetail creates a structured error detail.
func NewErrorDetail(code int, message string, data interface{}) *models.ErrorDetail {
	return &models.ErrorDetail{Code: code, Message: message, Data: data}
}

// NewParseError reports malformed JSON (SchemaError).
func NewParseError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeParseError, "Parse error", map[string]interface{}{"details": details})
}

// NewInvalidRequestError reports an invalid JSON-RPC request object.
func NewInvalidRequestError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidRequest, "Invalid Request", map[string]interface{}{"details": details})
}

// NewMethodNotFoundError reports an unknown JSON-RPC method.
func NewMethodNotFoundError(method string) *models.ErrorDetail {
	return NewErrorDetail(CodeMethodNotFound, "Method not found", map[string]interface{}{"method": method})
}

// NewSchemaError reports a structurally invalid request payload, including
// unrecognized edit-type tags (SchemaError).
func NewSchemaError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidParams, "Invalid params", map[string]interface{}{"details": details})
}

// NewInternalError reports an unexpected server-side failure.
func NewInternalError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInternalError, "Internal error", map[string]interface{}{"details": details})
}

// NewValidationError reports a batch that failed static validation. issues
// holds one entry per failing instruction, in batch order.
func NewValidationError(filename string, issues interface{}, summary string) *models.ErrorDetail {
	return NewErrorDetail(CodeValidationFailed,
		fmt.Sprintf("Edit batch for %q failed validation: %s", filename, summary),
		map[string]interface{}{
			"filename": filename,
			"issues":   issues,
			"type":     "validation_failed",
		})
}

// NewConflictError reports an oldText substring that was not found in its
// target line.
func NewConflictError(filename string, lineNumber int, oldText string) *models.ErrorDetail {
	return NewErrorDetail(CodeConflict,
		fmt.Sprintf("oldText %q not found in line %d of %q", oldText, lineNumber, filename),
		map[string]interface{}{
			"filename":   filename,
			"lineNumber": lineNumber,
			"oldText":    oldText,
			"type":       "conflict",
		})
}

// NewBatchConflictError reports same-line instructions that collided at
// apply time: an earlier edit of the batch consumed the line a later one
// targets.
func NewBatchConflictError(filename string, lineNumber int) *models.ErrorDetail {
	return NewErrorDetail(CodeConflict,
		fmt.Sprintf("line %d of %q was already consumed by an earlier edit in the batch", lineNumber, filename),
		map[string]interface{}{
			"filename":   filename,
			"lineNumber": lineNumber,
			"type":       "conflict",
		})
}

// NewNotFoundError reports a missing target file.
func NewNotFoundError(filename, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeNotFound,
		fmt.Sprintf("File %q not found", filename),
		map[string]interface{}{
			"filename":  filename,
			"operation": operation,
			"type":      "not_found",
		})
}

// NewAccessDeniedError reports a sandbox rejection.
func NewAccessDeniedError(filename string) *models.ErrorDetail {
	return NewErrorDetail(CodeAccessDenied,
		fmt.Sprintf("Access to %q denied: path is outside the accessible roots", filename),
		map[string]interface{}{
			"filename": filename,
			"type":     "access_denied",
		})
}

// NewEncodingError reports an unsupported or unrepresentable encoding.
func NewEncodingError(filename, operation, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeEncodingError,
		fmt.Sprintf("Encoding error for %q: %s", filename, details),
		map[string]interface{}{
			"filename":  filename,
			"operation": operation,
			"details":   details,
			"type":      "encoding_error",
		})
}

// NewIOError reports an underlying read/write failure.
func NewIOError(filename, operation, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeIOError,
		fmt.Sprintf("I/O error for %q during %s", filename, operation),
		map[string]interface{}{
			"filename":  filename,
			"operation": operation,
			"details":   details,
			"type":      "io_error",
		})
}

// NewLockFailedError reports a lock acquisition timeout.
func NewLockFailedError(filename, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeLockFailed,
		fmt.Sprintf("Could not acquire lock for %q", filename),
		map[string]interface{}{
			"filename": filename,
			"details":  details,
			"type":     "lock_failed",
		})
}

// NewFileTooLargeError reports a file exceeding the configured size limit.
func NewFileTooLargeError(filename string, sizeBytes int64, maxSizeMB int) *models.ErrorDetail {
	return NewErrorDetail(CodeFileTooLarge,
		fmt.Sprintf("File %q (%d bytes) exceeds maximum allowed size of %d MB", filename, sizeBytes, maxSizeMB),
		map[string]interface{}{
			"filename":    filename,
			"size_bytes":  sizeBytes,
			"max_size_mb": maxSizeMB,
			"type":        "file_too_large",
		})
}

// ToErrorResponse wraps a detail for HTTP bodies.
func ToErrorResponse(detail *models.ErrorDetail) *models.ErrorResponse {
	if detail == nil {
		return nil
	}
	return &models.ErrorResponse{Error: *detail}
}

// ToJSONRPCError converts a detail to a JSON-RPC error object, lifting the
// well-known fields out of the data map.
func ToJSONRPCError(detail *models.ErrorDetail) *models.JSONRPCError {
	if detail == nil {
		return nil
	}
	rpcErr := &models.JSONRPCError{
		Code:    detail.Code,
		Message: detail.Message,
	}
	if detail.Data == nil {
		return rpcErr
	}
	data := &models.JSONRPCErrorData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if m, ok := detail.Data.(map[string]interface{}); ok {
		if v, ok := m["filename"].(string); ok {
			data.Filename = v
		}
		if v, ok := m["operation"].(string); ok {
			data.Operation = v
		}
		if v, ok := m["details"].(string); ok {
			data.Details = v
		}
	} else {
		data.Details = fmt.Sprintf("%v", detail.Data)
	}
	rpcErr.Data = data
	return rpcErr
}

// MapErrorToHTTPStatus maps an error code to the HTTP status the HTTP
// transport responds with.
func MapErrorToHTTPStatus(code int) int {
	switch code {
	case CodeParseError, CodeInvalidRequest, CodeInvalidParams:
		return http.StatusBadRequest
	case CodeMethodNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed, CodeEncodingError:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	case CodeAccessDenied:
		return http.StatusForbidden
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeLockFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
