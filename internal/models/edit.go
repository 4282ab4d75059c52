package models

import "line-edit-server/internal/editor"

// EditFileRequest represents a request to apply a batch of line-indexed
// edits to a file. All line numbers in Edits reference the file as it is
// before any edit of the batch runs.
type EditFileRequest struct {
	// Name is the path of the file to edit, resolved through the sandbox.
	Name string `json:"name"`
	// Edits is the batch of instructions. Parsing rejects unknown edit
	// types; validation rejects semantically invalid instructions. Either
	// failure leaves the file untouched.
	Edits []editor.Instruction `json:"edits"`
	// DryRun, when true, simulates the batch and reports the hypothetical
	// outcome without writing anything.
	DryRun bool `json:"dry_run,omitempty"`
	// CreateIfMissing treats an absent target as an empty file instead of
	// returning not-found. The requested encoding then governs the write,
	// since there is nothing to preserve.
	CreateIfMissing bool `json:"create_if_missing,omitempty"`
	// Encoding is the requested write encoding by wire name ("utf8",
	// "utf8-bom", "ascii", "utf16le", "utf16be", "utf32le", "system",
	// "auto"). Empty means utf8.
	Encoding string `json:"encoding,omitempty"`
	// PreserveOriginalEncoding makes the detected current encoding of the
	// file override Encoding on write. Defaults to true for edits of
	// existing files.
	PreserveOriginalEncoding *bool `json:"preserveOriginalEncoding,omitempty"`
}

// EditFileResponse reports the outcome of an edit batch.
type EditFileResponse struct {
	// Success is true when the batch was applied (or, on a dry run, would
	// have applied) cleanly.
	Success bool `json:"success"`
	// Message is a short human-readable summary.
	Message string `json:"message"`
	// EditCount is the number of instructions applied.
	EditCount int `json:"editCount"`
	// Diff is a unified-style line diff between the pre- and post-edit
	// content.
	Diff string `json:"diff"`
	// PreservedEncoding is the wire name of the encoding actually used to
	// write (or that would have been used, on a dry run).
	PreservedEncoding string `json:"preservedEncoding"`
	// ContentHash fingerprints the final bytes ("sha256:<hex>").
	ContentHash string `json:"contentHash"`
	// DryRun echoes whether this was a simulation.
	DryRun bool `json:"dry_run,omitempty"`
	// FileCreated indicates the target did not exist before the request.
	FileCreated bool `json:"file_created,omitempty"`
	// NewTotalLines is the line count after the batch.
	NewTotalLines int `json:"new_total_lines"`
}
