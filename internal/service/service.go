// Package service hosts the edit orchestrator: it composes the sandbox,
// the filesystem adapter, encoding detection and the edit engine into the
// read -> validate -> (simulate|apply) -> write -> report flow. It is the
// only layer with I/O side effects.
package service

import (
	stdErrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"line-edit-server/internal/config"
	"line-edit-server/internal/editor"
	"line-edit-server/internal/errors"
	"line-edit-server/internal/filesystem"
	"line-edit-server/internal/lock"
	"line-edit-server/internal/logging"
	"line-edit-server/internal/models"
	"line-edit-server/internal/sandbox"
	"line-edit-server/internal/textenc"
)

const maxEditsAllowed = 1000

// FileService defines the operations exposed over the transports.
type FileService interface {
	EditFile(req models.EditFileRequest) (*models.EditFileResponse, *models.ErrorDetail)
	ReadFile(req models.ReadFileRequest) (*models.ReadFileResponse, *models.ErrorDetail)
	WriteFile(req models.WriteFileRequest) (*models.WriteFileResponse, *models.ErrorDetail)
	ListFiles(req models.ListFilesRequest) (*models.ListFilesResponse, *models.ErrorDetail)
}

// Orchestrator implements FileService.
type Orchestrator struct {
	fs              filesystem.Adapter
	locks           lock.Manager
	box             *sandbox.Sandbox
	logger          *log.Logger
	maxFileSize     int64
	maxLineCount    int
	lockTimeout     time.Duration
	defaultEncoding textenc.Encoding
}

// New creates an Orchestrator from its collaborators and configuration.
func New(fs filesystem.Adapter, locks lock.Manager, box *sandbox.Sandbox, cfg *config.Config, logger *log.Logger) (*Orchestrator, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("lock manager is required")
	}
	if box == nil {
		return nil, fmt.Errorf("sandbox is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	defEnc, err := textenc.Parse(cfg.DefaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("default encoding: %w", err)
	}
	return &Orchestrator{
		fs:              fs,
		locks:           locks,
		box:             box,
		logger:          logger,
		maxFileSize:     int64(cfg.MaxFileSizeMB) * 1024 * 1024,
		maxLineCount:    cfg.MaxLineCount,
		lockTimeout:     time.Duration(cfg.LockTimeoutSec) * time.Second,
		defaultEncoding: defEnc,
	}, nil
}

// resolvePath runs the requested path through the sandbox and maps the
// outcome to the error taxonomy. The sandbox is the only path-boundary
// authority; no other component performs its own checks.
func (o *Orchestrator) resolvePath(name string) (string, *models.ErrorDetail) {
	path, err := o.box.Resolve(name)
	if err != nil {
		if stdErrors.Is(err, sandbox.ErrDenied) {
			return "", errors.NewAccessDeniedError(name)
		}
		if os.IsNotExist(err) || stdErrors.Is(err, os.ErrNotExist) {
			return "", errors.NewNotFoundError(name, "path_resolution")
		}
		return "", errors.NewIOError(name, "path_resolution", err.Error())
	}
	return path, nil
}

// loadDocument reads and decodes the file at path. For an absent file it
// returns an empty document with existed=false; the caller decides whether
// that is an error.
func (o *Orchestrator) loadDocument(name, path, operation string) (*document, *models.ErrorDetail) {
	exists, err := o.fs.FileExists(path)
	if err != nil {
		return nil, errors.NewIOError(name, operation, err.Error())
	}
	if !exists {
		return &document{lines: []string{}, encoding: o.defaultEncoding, existed: false}, nil
	}

	stats, err := o.fs.GetFileStats(path)
	if err != nil {
		return nil, errors.NewIOError(name, operation, err.Error())
	}
	if stats.IsDir {
		return nil, errors.NewSchemaError(fmt.Sprintf("path %q is a directory, not a file", name))
	}
	if stats.Size > o.maxFileSize {
		return nil, errors.NewFileTooLargeError(name, stats.Size, int(o.maxFileSize/(1024*1024)))
	}

	raw, err := o.fs.ReadFileBytes(path)
	if err != nil {
		return nil, errors.NewIOError(name, operation, err.Error())
	}

	enc := textenc.Detect(raw)
	content, err := textenc.Decode(raw, enc)
	if err != nil {
		return nil, errors.NewEncodingError(name, operation, err.Error())
	}
	lines, trailing := splitLines(content)
	if len(lines) > o.maxLineCount {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("file %q exceeds maximum line count of %d", name, o.maxLineCount))
	}
	return &document{
		lines:           lines,
		encoding:        enc,
		trailingNewline: trailing,
		existed:         true,
	}, nil
}

// resolveWriteEncoding applies the encoding resolution policy: when
// preservation is in effect and the file existed, the detected original
// encoding wins and the explicit request is ignored. AutoDetect is not a
// writable target and resolves to utf8 without BOM.
func resolveWriteEncoding(requested textenc.Encoding, detected textenc.Encoding, existed, preserve bool) textenc.Encoding {
	if preserve && existed {
		return detected
	}
	if requested == textenc.AutoDetect {
		return textenc.Utf8NoBom
	}
	return requested
}

// EditFile applies a batch of line-indexed edit instructions to a file.
//
// The batch is all-or-nothing: any validation issue or apply-time conflict
// leaves the file untouched and reports every discovered problem. Line
// numbers reference the file before any edit of the batch runs. There is no
// cross-request isolation beyond a best-effort advisory lock: two
// concurrent edits of the same path from uncooperative processes can race.
func (o *Orchestrator) EditFile(req models.EditFileRequest) (*models.EditFileResponse, *models.ErrorDetail) {
	path, errDetail := o.resolvePath(req.Name)
	if errDetail != nil {
		return nil, errDetail
	}

	if len(req.Edits) > maxEditsAllowed {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("number of edits %d exceeds maximum of %d", len(req.Edits), maxEditsAllowed))
	}
	requestedEnc, err := textenc.Parse(req.Encoding)
	if err != nil {
		return nil, errors.NewEncodingError(req.Name, "edit", err.Error())
	}
	if req.Encoding == "" {
		requestedEnc = o.defaultEncoding
	}

	// Dry runs never mutate anything, including lock files.
	if !req.DryRun {
		handle, lockErr := o.locks.Acquire(path, o.lockTimeout)
		if lockErr != nil {
			return nil, errors.NewLockFailedError(req.Name, lockErr.Error())
		}
		defer func() {
			if err := o.locks.Release(handle); err != nil {
				o.logger.Warn("releasing lock", logging.FieldFile, req.Name, logging.FieldError, err)
			}
		}()
	}

	doc, errDetail := o.loadDocument(req.Name, path, "edit")
	if errDetail != nil {
		return nil, errDetail
	}
	if !doc.existed && !req.CreateIfMissing {
		return nil, errors.NewNotFoundError(req.Name, "edit")
	}

	report := editor.Validate(req.Edits, len(doc.lines))
	if !report.OK() {
		return nil, errors.NewValidationError(req.Name, report.Issues, report.Summary())
	}

	afterLines, applied, applyErr := editor.Apply(doc.lines, req.Edits)
	if applyErr != nil {
		var conflict *editor.ConflictError
		if stdErrors.As(applyErr, &conflict) {
			return nil, errors.NewConflictError(req.Name, conflict.LineNumber, conflict.OldText)
		}
		var overlap *editor.OverlapError
		if stdErrors.As(applyErr, &overlap) {
			return nil, errors.NewBatchConflictError(req.Name, overlap.LineNumber)
		}
		return nil, errors.NewInternalError(applyErr.Error())
	}
	if len(afterLines) > o.maxLineCount {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("edit results in %d lines, exceeding the maximum of %d", len(afterLines), o.maxLineCount))
	}

	// Policy: edits of existing files preserve the original encoding
	// unless the request explicitly opts out.
	preserve := true
	if req.PreserveOriginalEncoding != nil {
		preserve = *req.PreserveOriginalEncoding
	}
	finalEnc := resolveWriteEncoding(requestedEnc, doc.encoding, doc.existed, preserve)

	finalContent := joinLines(afterLines, doc.trailingNewline)
	finalBytes, encErr := textenc.Encode(finalContent, finalEnc)
	if encErr != nil {
		return nil, errors.NewEncodingError(req.Name, "edit", encErr.Error())
	}
	if int64(len(finalBytes)) > o.maxFileSize {
		return nil, errors.NewFileTooLargeError(req.Name, int64(len(finalBytes)), int(o.maxFileSize/(1024*1024)))
	}

	diff := editor.Diff(doc.lines, afterLines)

	resp := &models.EditFileResponse{
		Success:           true,
		EditCount:         applied,
		Diff:              diff,
		PreservedEncoding: finalEnc.String(),
		ContentHash:       editor.HashBytes(finalBytes),
		DryRun:            req.DryRun,
		FileCreated:       !doc.existed,
		NewTotalLines:     len(afterLines),
	}

	if req.DryRun {
		resp.Message = fmt.Sprintf("Dry run: %d edits would be applied to %q", applied, req.Name)
		return resp, nil
	}

	if err := o.fs.WriteFileBytesAtomic(path, finalBytes, 0644); err != nil {
		// The temp-file-and-rename write keeps the target intact on
		// failure before the rename; a failure during the rename itself
		// is surfaced as a fatal I/O error and is not retried here.
		return nil, errors.NewIOError(req.Name, "write", err.Error())
	}

	o.logger.Info("edit applied",
		logging.FieldFile, req.Name,
		logging.FieldEdits, applied,
		logging.FieldEncoding, finalEnc.String())

	resp.Message = fmt.Sprintf("Applied %d edits to %q", applied, req.Name)
	return resp, nil
}
