// Package mcp adapts the file service to the Model Context Protocol
// request vocabulary: initialize, tools/list and tools/call.
package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"line-edit-server/internal/errors"
	"line-edit-server/internal/models"
	"line-edit-server/internal/service"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "line-edit-server"
	serverVersion   = "1.0.0"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Processor handles MCP requests on behalf of a transport.
type Processor struct {
	service service.FileService
}

// NewProcessor creates a new Processor.
func NewProcessor(svc service.FileService) *Processor {
	return &Processor{service: svc}
}

// ProcessRequest handles one JSON-RPC request in MCP vocabulary.
func (p *Processor) ProcessRequest(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	switch req.Method {
	case "initialize":
		return models.InitializeResponse{
			ProtocolVersion: protocolVersion,
			Capabilities:    models.Capabilities{},
			ServerInfo: models.ServerInfo{
				Name:        serverName,
				Version:     serverVersion,
				Description: "Line-indexed file editing with encoding preservation",
			},
		}, nil
	case "tools/list":
		return models.ToolsListResponse{Tools: toolDefinitions()}, nil
	case "tools/call":
		var params ToolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, errors.ToJSONRPCError(
				errors.NewSchemaError(fmt.Sprintf("invalid parameters for tools/call: %v", err)))
		}
		return p.callTool(params.Name, params.Arguments)
	default:
		return nil, errors.ToJSONRPCError(errors.NewMethodNotFoundError(req.Method))
	}
}

func (p *Processor) callTool(name string, args json.RawMessage) (interface{}, *models.JSONRPCError) {
	switch name {
	case "edit_file":
		var req models.EditFileRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, errors.ToJSONRPCError(
				errors.NewSchemaError(fmt.Sprintf("invalid arguments for edit_file: %v", err)))
		}
		resp, errDetail := p.service.EditFile(req)
		if errDetail != nil {
			return toolError(errDetail), nil
		}
		return toolText(formatEditResult(resp)), nil
	case "read_file":
		var req models.ReadFileRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, errors.ToJSONRPCError(
				errors.NewSchemaError(fmt.Sprintf("invalid arguments for read_file: %v", err)))
		}
		resp, errDetail := p.service.ReadFile(req)
		if errDetail != nil {
			return toolError(errDetail), nil
		}
		return toolText(formatReadResult(req.Name, resp)), nil
	case "write_file":
		var req models.WriteFileRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, errors.ToJSONRPCError(
				errors.NewSchemaError(fmt.Sprintf("invalid arguments for write_file: %v", err)))
		}
		resp, errDetail := p.service.WriteFile(req)
		if errDetail != nil {
			return toolError(errDetail), nil
		}
		return toolText(formatWriteResult(req.Name, resp)), nil
	case "list_files":
		resp, errDetail := p.service.ListFiles(models.ListFilesRequest{})
		if errDetail != nil {
			return toolError(errDetail), nil
		}
		return toolText(formatListResult(resp)), nil
	default:
		return toolText(fmt.Sprintf("Error: unknown tool %q", name)), nil
	}
}

func toolText(text string) *models.MCPToolResult {
	return &models.MCPToolResult{
		Content: []models.MCPToolContent{{Type: "text", Text: text}},
	}
}

func toolError(detail *models.ErrorDetail) *models.MCPToolResult {
	return &models.MCPToolResult{
		Content: []models.MCPToolContent{{
			Type: "text",
			Text: fmt.Sprintf("Error: %s (code %d)", detail.Message, detail.Code),
		}},
		IsError: true,
	}
}

func formatEditResult(resp *models.EditFileResponse) string {
	var b strings.Builder
	fmt.Fprintln(&b, resp.Message)
	fmt.Fprintf(&b, "Edits applied: %d\n", resp.EditCount)
	fmt.Fprintf(&b, "New total lines: %d\n", resp.NewTotalLines)
	fmt.Fprintf(&b, "Encoding: %s\n", resp.PreservedEncoding)
	fmt.Fprintf(&b, "Content hash: %s\n", resp.ContentHash)
	if resp.Diff != "" {
		fmt.Fprintf(&b, "\nDiff:\n%s", resp.Diff)
	}
	return b.String()
}

func formatReadResult(name string, resp *models.ReadFileResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", name)
	fmt.Fprintf(&b, "Total lines: %d\n", resp.TotalLines)
	fmt.Fprintf(&b, "Encoding: %s\n", resp.Encoding)
	if r := resp.RangeRequested; r != nil {
		fmt.Fprintf(&b, "Range: lines %d-%d\n", r.StartLine, r.EndLine)
	}
	fmt.Fprintf(&b, "\nContent:\n%s", resp.Content)
	return b.String()
}

func formatWriteResult(name string, resp *models.WriteFileResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", name)
	fmt.Fprintln(&b, resp.Message)
	fmt.Fprintf(&b, "Encoding: %s\n", resp.PreservedEncoding)
	fmt.Fprintf(&b, "Content hash: %s\n", resp.ContentHash)
	return b.String()
}

func formatListResult(resp *models.ListFilesResponse) string {
	if len(resp.Files) == 0 {
		return fmt.Sprintf("No files found in directory: %s", resp.Directory)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\nTotal files: %d\n\n", resp.Directory, resp.TotalCount)
	for _, f := range resp.Files {
		fmt.Fprintf(&b, "- %s (%d bytes, modified %s", f.Name, f.Size, f.Modified)
		if f.Lines >= 0 {
			fmt.Fprintf(&b, ", %d lines", f.Lines)
		}
		if f.Encoding != "" {
			fmt.Fprintf(&b, ", %s", f.Encoding)
		}
		fmt.Fprintln(&b, ")")
	}
	return b.String()
}
