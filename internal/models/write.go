package models

// WriteFileRequest represents a whole-file write.
type WriteFileRequest struct {
	// Name is the path of the file to write, resolved through the sandbox.
	Name string `json:"name"`
	// Content is the full new content.
	Content string `json:"content"`
	// Encoding is the requested write encoding by wire name. Empty means
	// utf8. "auto" is only meaningful for reads and resolves to utf8 here.
	Encoding string `json:"encoding,omitempty"`
	// PreserveOriginalEncoding makes the detected encoding of an existing
	// target override Encoding. Defaults to false for writes.
	PreserveOriginalEncoding bool `json:"preserveOriginalEncoding,omitempty"`
}

// WriteFileResponse reports the outcome of a whole-file write. It mirrors
// the edit result shape so callers handle both uniformly.
type WriteFileResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Diff              string `json:"diff"`
	PreservedEncoding string `json:"preservedEncoding"`
	ContentHash       string `json:"contentHash"`
	FileCreated       bool   `json:"file_created,omitempty"`
	NewTotalLines     int    `json:"new_total_lines"`
}
