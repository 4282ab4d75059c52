package models

// ReadFileRequest represents a request to read a file.
type ReadFileRequest struct {
	// Name is the path of the file to read, resolved through the sandbox.
	Name string `json:"name"`
	// StartLine is the optional 1-based starting line for partial reads.
	StartLine int `json:"start_line,omitempty"`
	// EndLine is the optional 1-based ending line for partial reads.
	EndLine int `json:"end_line,omitempty"`
}

// RangeRequested echoes the line range that was served.
type RangeRequested struct {
	StartLine int `json:"start_line,omitempty"`
	EndLine   int `json:"end_line,omitempty"`
}

// ReadFileResponse represents the response from a file read operation.
type ReadFileResponse struct {
	// Content is the decoded content of the requested range.
	Content string `json:"content"`
	// TotalLines is the total number of lines in the file.
	TotalLines int `json:"total_lines"`
	// Encoding is the wire name of the detected on-disk encoding.
	Encoding string `json:"encoding"`
	// RangeRequested is present for partial reads.
	RangeRequested *RangeRequested `json:"range_requested,omitempty"`
}
