package service

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"line-edit-server/internal/editor"
	"line-edit-server/internal/errors"
	"line-edit-server/internal/logging"
	"line-edit-server/internal/models"
	"line-edit-server/internal/textenc"
)

// ReadFile returns the decoded content of a file or a range of its lines.
// Range semantics: 1-based, zero means unset, the end is clamped to the
// last line, a start past the end of a non-empty file is an error.
func (o *Orchestrator) ReadFile(req models.ReadFileRequest) (*models.ReadFileResponse, *models.ErrorDetail) {
	path, errDetail := o.resolvePath(req.Name)
	if errDetail != nil {
		return nil, errDetail
	}

	if (req.StartLine != 0 && req.StartLine < 1) || (req.EndLine != 0 && req.EndLine < 1) {
		return nil, errors.NewSchemaError("line numbers must be 1 or greater when specified")
	}
	if req.StartLine > 0 && req.EndLine > 0 && req.StartLine > req.EndLine {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("start_line %d cannot be greater than end_line %d", req.StartLine, req.EndLine))
	}

	doc, errDetail := o.loadDocument(req.Name, path, "read")
	if errDetail != nil {
		return nil, errDetail
	}
	if !doc.existed {
		return nil, errors.NewNotFoundError(req.Name, "read")
	}

	total := len(doc.lines)
	isRange := req.StartLine != 0 || req.EndLine != 0

	start := req.StartLine
	end := req.EndLine
	if start == 0 {
		start = 1
	}
	if end == 0 || end > total {
		end = total
	}
	if start > total && total > 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("start_line %d is greater than total lines %d", start, total))
	}
	if total == 0 && start > 1 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("start_line %d is invalid for an empty file", start))
	}

	var selected []string
	if total > 0 && start <= end {
		selected = doc.lines[start-1 : end]
	}

	resp := &models.ReadFileResponse{
		Content:    joinLines(selected, false),
		TotalLines: total,
		Encoding:   doc.encoding.String(),
	}
	if isRange {
		resp.RangeRequested = &models.RangeRequested{StartLine: start, EndLine: end}
	}
	return resp, nil
}

// WriteFile replaces the whole content of a file. Unlike edits, writes do
// not preserve the original encoding unless asked to.
func (o *Orchestrator) WriteFile(req models.WriteFileRequest) (*models.WriteFileResponse, *models.ErrorDetail) {
	path, errDetail := o.resolvePath(req.Name)
	if errDetail != nil {
		return nil, errDetail
	}

	requestedEnc, err := textenc.Parse(req.Encoding)
	if err != nil {
		return nil, errors.NewEncodingError(req.Name, "write", err.Error())
	}
	if req.Encoding == "" {
		requestedEnc = o.defaultEncoding
	}

	handle, lockErr := o.locks.Acquire(path, o.lockTimeout)
	if lockErr != nil {
		return nil, errors.NewLockFailedError(req.Name, lockErr.Error())
	}
	defer func() {
		if err := o.locks.Release(handle); err != nil {
			o.logger.Warn("releasing lock", logging.FieldFile, req.Name, logging.FieldError, err)
		}
	}()

	doc, errDetail := o.loadDocument(req.Name, path, "write")
	if errDetail != nil {
		return nil, errDetail
	}

	finalEnc := resolveWriteEncoding(requestedEnc, doc.encoding, doc.existed, req.PreserveOriginalEncoding)

	newLines, trailing := splitLines(req.Content)
	if len(newLines) > o.maxLineCount {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("content has %d lines, exceeding the maximum of %d", len(newLines), o.maxLineCount))
	}

	finalBytes, encErr := textenc.Encode(joinLines(newLines, trailing), finalEnc)
	if encErr != nil {
		return nil, errors.NewEncodingError(req.Name, "write", encErr.Error())
	}
	if int64(len(finalBytes)) > o.maxFileSize {
		return nil, errors.NewFileTooLargeError(req.Name, int64(len(finalBytes)), int(o.maxFileSize/(1024*1024)))
	}

	if err := o.fs.WriteFileBytesAtomic(path, finalBytes, 0644); err != nil {
		return nil, errors.NewIOError(req.Name, "write", err.Error())
	}

	o.logger.Info("file written",
		logging.FieldFile, req.Name,
		logging.FieldEncoding, finalEnc.String())

	return &models.WriteFileResponse{
		Success:           true,
		Message:           fmt.Sprintf("Wrote %d lines to %q", len(newLines), req.Name),
		Diff:              editor.Diff(doc.lines, newLines),
		PreservedEncoding: finalEnc.String(),
		ContentHash:       editor.HashBytes(finalBytes),
		FileCreated:       !doc.existed,
		NewTotalLines:     len(newLines),
	}, nil
}

// ListFiles lists the non-hidden regular files of the first sandbox root.
func (o *Orchestrator) ListFiles(models.ListFilesRequest) (*models.ListFilesResponse, *models.ErrorDetail) {
	dir := o.box.Roots()[0]
	entries, err := o.fs.ListDir(dir)
	if err != nil {
		return nil, errors.NewIOError(dir, "list", err.Error())
	}

	files := make([]models.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir || entry.IsHidden {
			continue
		}
		// The server's own lock artifacts are not user files.
		if strings.HasSuffix(entry.Name, ".lock") {
			continue
		}
		info := models.FileInfo{
			Name:     entry.Name,
			Size:     entry.Size,
			Modified: entry.ModTime.UTC().Format(time.RFC3339),
			Readable: entry.Mode&0400 != 0,
			Writable: entry.Mode&0200 != 0,
			Lines:    -1,
		}
		switch {
		case entry.Size == 0:
			info.Lines = 0
			info.Encoding = textenc.Utf8NoBom.String()
		case entry.Size <= o.maxFileSize:
			if raw, readErr := o.fs.ReadFileBytes(filepath.Join(dir, entry.Name)); readErr == nil {
				enc := textenc.Detect(raw)
				info.Encoding = enc.String()
				if content, decErr := textenc.Decode(raw, enc); decErr == nil {
					lines, _ := splitLines(content)
					if len(lines) <= o.maxLineCount {
						info.Lines = len(lines)
					}
				}
			}
		}
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return &models.ListFilesResponse{
		Files:      files,
		TotalCount: len(files),
		Directory:  dir,
	}, nil
}
