package mcp

import "line-edit-server/internal/models"

// toolDefinitions describes the exposed tools with their JSON argument
// schemas. Line numbers in edit batches always reference the file before
// any edit of the batch is applied.
func toolDefinitions() []models.ToolDefinition {
	encodingValues := []string{"utf8", "utf8-bom", "ascii", "utf16le", "utf16be", "utf32le", "system", "auto"}

	editSchema := models.Schema{
		"type": "object",
		"properties": models.Schema{
			"name": models.Schema{"type": "string", "description": "Path of the file to edit"},
			"edits": models.Schema{
				"type":        "array",
				"description": "Edit instructions; line numbers reference the pre-edit file",
				"items": models.Schema{
					"type": "object",
					"properties": models.Schema{
						"lineNumber": models.Schema{"type": "integer", "minimum": 1},
						"type": models.Schema{
							"type": "string",
							"enum": []string{"insert", "delete", "replace", "replaceSection"},
						},
						"text":    models.Schema{"type": "string"},
						"oldText": models.Schema{"type": "string"},
						"endLine": models.Schema{"type": "integer", "minimum": 1},
					},
					"required": []string{"lineNumber", "type"},
				},
			},
			"dry_run":                  models.Schema{"type": "boolean"},
			"create_if_missing":        models.Schema{"type": "boolean"},
			"encoding":                 models.Schema{"type": "string", "enum": encodingValues},
			"preserveOriginalEncoding": models.Schema{"type": "boolean"},
		},
		"required": []string{"name", "edits"},
	}

	readSchema := models.Schema{
		"type": "object",
		"properties": models.Schema{
			"name":       models.Schema{"type": "string", "description": "Path of the file to read"},
			"start_line": models.Schema{"type": "integer", "minimum": 1},
			"end_line":   models.Schema{"type": "integer", "minimum": 1},
		},
		"required": []string{"name"},
	}

	writeSchema := models.Schema{
		"type": "object",
		"properties": models.Schema{
			"name":                     models.Schema{"type": "string", "description": "Path of the file to write"},
			"content":                  models.Schema{"type": "string"},
			"encoding":                 models.Schema{"type": "string", "enum": encodingValues},
			"preserveOriginalEncoding": models.Schema{"type": "boolean"},
		},
		"required": []string{"name", "content"},
	}

	listSchema := models.Schema{
		"type":       "object",
		"properties": models.Schema{},
	}

	return []models.ToolDefinition{
		{
			Name: "edit_file",
			Description: "Apply a batch of line-indexed edits (insert, delete, replace, " +
				"replaceSection) to a file. The batch is atomic and the file's " +
				"original encoding is preserved by default. Supports dry_run.",
			InputSchema: editSchema,
			Annotations: models.ToolAnnotations{DestructiveHint: true},
		},
		{
			Name: "read_file",
			Description: "Read a file (optionally a line range), decoding its detected " +
				"encoding. Reports total lines and the encoding name.",
			InputSchema: readSchema,
			Annotations: models.ToolAnnotations{ReadOnlyHint: true},
		},
		{
			Name: "write_file",
			Description: "Replace the entire content of a file, optionally preserving " +
				"the existing file's encoding.",
			InputSchema: writeSchema,
			Annotations: models.ToolAnnotations{DestructiveHint: true},
		},
		{
			Name:        "list_files",
			Description: "List non-hidden files of the primary root with size, mtime, line count and encoding.",
			InputSchema: listSchema,
			Annotations: models.ToolAnnotations{ReadOnlyHint: true},
		},
	}
}
