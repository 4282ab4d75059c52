package models

import "encoding/json"

// JSONRPCRequest represents a JSON-RPC 2.0 request object.
type JSONRPCRequest struct {
	// JSONRPC must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is a unique identifier established by the client, echoed back in
	// the response. String or number.
	ID interface{} `json:"id"`
	// Method names the operation to invoke.
	Method string `json:"method"`
	// Params holds the method parameters; parsing is deferred until the
	// method is known.
	Params json.RawMessage `json:"params"`
}

// JSONRPCErrorData carries application-specific context inside a JSON-RPC
// error object.
type JSONRPCErrorData struct {
	Filename  string `json:"filename,omitempty"`
	Operation string `json:"operation,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Details   string `json:"details,omitempty"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    *JSONRPCErrorData `json:"data,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response object. Exactly one of
// Result and Error is set.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}
