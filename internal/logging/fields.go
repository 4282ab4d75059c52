package logging

// Field name constants for structured logging.
const (
	FieldError     = "error"
	FieldFile      = "file"
	FieldRoot      = "root"
	FieldTransport = "transport"
	FieldPort      = "port"
	FieldMethod    = "method"
	FieldEncoding  = "encoding"
	FieldEdits     = "edits"
)
