package models

// InitializeResponse is the JSON result of the "initialize" method.
type InitializeResponse struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ServerInfo provides information about the server.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Capabilities defines the server's capabilities.
type Capabilities struct {
	Tools ToolsCapabilities `json:"tools"`
}

// ToolsCapabilities is an empty object for now.
type ToolsCapabilities struct{}

// ToolsListResponse is the JSON result of the "tools/list" method.
type ToolsListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolDefinition describes a single tool exposed through the server.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema Schema          `json:"inputSchema"`
	Annotations ToolAnnotations `json:"annotations"`
}

// Schema represents a JSON schema, kept as a free-form map.
type Schema map[string]interface{}

// ToolAnnotations provides hints about the tool's behavior.
type ToolAnnotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint"`
	DestructiveHint bool `json:"destructiveHint"`
}

// MCPToolContent represents one content item of a tool result.
type MCPToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MCPToolResult represents the result of a tool call.
type MCPToolResult struct {
	Content []MCPToolContent `json:"content"`
	IsError bool             `json:"isError"`
}
