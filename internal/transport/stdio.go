// Package transport carries JSON-RPC requests to the file service over
// stdio or HTTP. The transports hand the service fully-formed requests and
// return structured results; no error ever crosses them uncaught.
package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"line-edit-server/internal/errors"
	"line-edit-server/internal/logging"
	"line-edit-server/internal/mcp"
	"line-edit-server/internal/models"
	"line-edit-server/internal/service"
)

// StdioHandler handles JSON-RPC communication over standard input/output.
// One request per line in, one response per line out; logs go to stderr.
// The MCP vocabulary (initialize, tools/list, tools/call) is delegated to
// the processor; the plain methods call the service directly.
type StdioHandler struct {
	service   service.FileService
	processor *mcp.Processor
	logger    *log.Logger
}

// NewStdioHandler creates a new StdioHandler.
func NewStdioHandler(svc service.FileService, processor *mcp.Processor, logger *log.Logger) *StdioHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StdioHandler{service: svc, processor: processor, logger: logger}
}

func (h *StdioHandler) writeResponse(w io.Writer, resp models.JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("marshaling response", logging.FieldError, err)
		fallback := models.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      resp.ID,
			Error:   errors.ToJSONRPCError(errors.NewInternalError("failed to marshal response")),
		}
		data, _ = json.Marshal(fallback)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		h.logger.Error("writing response", logging.FieldError, err)
	}
}

// Start processes JSON-RPC requests from input until EOF.
func (h *StdioHandler) Start(input io.Reader, output io.Writer) error {
	h.logger.Info("stdio transport started")
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var req models.JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			h.writeResponse(output, models.JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   errors.ToJSONRPCError(errors.NewParseError(err.Error())),
			})
			continue
		}

		h.logger.Debug("request received", logging.FieldMethod, req.Method)
		resp := models.JSONRPCResponse{JSONRPC: "2.0", ID: req.ID}

		switch {
		case req.JSONRPC != "2.0":
			resp.Error = errors.ToJSONRPCError(errors.NewInvalidRequestError("jsonrpc version must be \"2.0\""))
		case req.Method == "":
			resp.Error = errors.ToJSONRPCError(errors.NewInvalidRequestError("method not specified"))
		case h.processor != nil && isMCPMethod(req.Method):
			result, rpcErr := h.processor.ProcessRequest(req)
			if rpcErr != nil {
				resp.Error = rpcErr
			} else {
				resp.Result = result
			}
		default:
			result, errDetail := h.dispatch(req.Method, req.Params)
			if errDetail != nil {
				rpcErr := errors.ToJSONRPCError(errDetail)
				if rpcErr.Data != nil && rpcErr.Data.Operation == "" {
					rpcErr.Data.Operation = req.Method
				}
				resp.Error = rpcErr
			} else {
				resp.Result = result
			}
		}
		h.writeResponse(output, resp)
	}

	if err := scanner.Err(); err != nil {
		h.logger.Error("reading stdin", logging.FieldError, err)
		return err
	}
	h.logger.Info("stdio transport finished")
	return nil
}

func isMCPMethod(method string) bool {
	switch method {
	case "initialize", "tools/list", "tools/call":
		return true
	default:
		return false
	}
}

func (h *StdioHandler) dispatch(method string, params json.RawMessage) (interface{}, *models.ErrorDetail) {
	switch method {
	case "edit_file":
		var req models.EditFileRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, errors.NewSchemaError(fmt.Sprintf("invalid params for edit_file: %v", err))
		}
		return unwrap(h.service.EditFile(req))
	case "read_file":
		var req models.ReadFileRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, errors.NewSchemaError(fmt.Sprintf("invalid params for read_file: %v", err))
		}
		return unwrap(h.service.ReadFile(req))
	case "write_file":
		var req models.WriteFileRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, errors.NewSchemaError(fmt.Sprintf("invalid params for write_file: %v", err))
		}
		return unwrap(h.service.WriteFile(req))
	case "list_files":
		if len(params) > 0 && string(params) != "null" && string(params) != "{}" {
			return nil, errors.NewSchemaError("params for list_files must be an empty object or null")
		}
		return unwrap(h.service.ListFiles(models.ListFilesRequest{}))
	default:
		return nil, errors.NewMethodNotFoundError(method)
	}
}

// unwrap flattens a typed (response, error) pair into the interface{} the
// JSON-RPC result field carries.
func unwrap[T any](resp *T, errDetail *models.ErrorDetail) (interface{}, *models.ErrorDetail) {
	if errDetail != nil {
		return nil, errDetail
	}
	return resp, nil
}
