package models

// FileInfo describes a file in the directory listing.
type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"` // RFC 3339, UTC
	Readable bool   `json:"readable"`
	Writable bool   `json:"writable"`
	// Lines is the line count, or -1 when unknown (unreadable or too large).
	Lines int `json:"lines"`
	// Encoding is the wire name of the detected encoding, empty when the
	// file could not be read.
	Encoding string `json:"encoding,omitempty"`
}

// ListFilesRequest represents a request to list files. No parameters.
type ListFilesRequest struct{}

// ListFilesResponse represents the response from a list files operation.
type ListFilesResponse struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
	Directory  string     `json:"directory"`
}
