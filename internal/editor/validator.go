package editor

import (
	"fmt"
	"strings"
)

// Issue describes one invalid instruction in a batch.
type Issue struct {
	// Index is the position of the instruction in the submitted batch.
	Index int `json:"index"`
	// LineNumber is the offending instruction's target line.
	LineNumber int `json:"lineNumber"`
	// Message says what is wrong.
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("edit #%d (line %d): %s", i.Index+1, i.LineNumber, i.Message)
}

// ValidationReport is the outcome of validating a batch. An empty report
// means the batch may proceed; a non-empty one lists every failing
// instruction in batch order. If any issue is present, no instruction in
// the batch is applied.
type ValidationReport struct {
	Issues []Issue
}

// OK reports whether the batch passed validation.
func (r ValidationReport) OK() bool { return len(r.Issues) == 0 }

// Summary joins all issues into a single human-readable message.
func (r ValidationReport) Summary() string {
	if r.OK() {
		return ""
	}
	parts := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// Validate statically checks a batch against the current line count. Every
// instruction is checked; the report lists all failures, not just the
// first, because the caller returns them together.
//
// As a side effect the batch's Text and OldText values are normalized:
// \r\n and bare \r become \n, so downstream line splitting is
// newline-convention-agnostic.
func Validate(batch []Instruction, totalLines int) ValidationReport {
	var report ValidationReport

	fail := func(i int, format string, args ...interface{}) {
		report.Issues = append(report.Issues, Issue{
			Index:      i,
			LineNumber: batch[i].LineNumber,
			Message:    fmt.Sprintf(format, args...),
		})
	}

	for i := range batch {
		normalizeInstruction(&batch[i])
		ins := batch[i]

		if ins.LineNumber < 1 {
			fail(i, "lineNumber must be 1 or greater, got %d", ins.LineNumber)
			continue
		}

		switch ins.Kind {
		case Insert:
			if ins.Text == nil {
				fail(i, "insert requires text (empty string is allowed, absent is not)")
			}
		case Delete:
			if ins.LineNumber > totalLines {
				fail(i, "cannot delete line %d: file has %d lines", ins.LineNumber, totalLines)
			}
		case Replace:
			if ins.Text == nil {
				fail(i, "replace requires text")
			}
			if ins.OldText != nil && *ins.OldText == "" {
				fail(i, "oldText must be non-empty when present")
			}
			if ins.LineNumber > totalLines {
				fail(i, "cannot replace line %d: file has %d lines", ins.LineNumber, totalLines)
			}
		case ReplaceSection:
			if ins.EndLine == nil {
				fail(i, "replaceSection requires endLine")
			} else if *ins.EndLine < ins.LineNumber {
				fail(i, "endLine %d must not precede lineNumber %d", *ins.EndLine, ins.LineNumber)
			}
			if ins.LineNumber > totalLines {
				fail(i, "cannot replace section starting at line %d: file has %d lines", ins.LineNumber, totalLines)
			}
		}
	}

	return report
}

func normalizeInstruction(ins *Instruction) {
	if ins.Text != nil {
		normalized := normalizeNewlines(*ins.Text)
		ins.Text = &normalized
	}
	if ins.OldText != nil {
		normalized := normalizeNewlines(*ins.OldText)
		ins.OldText = &normalized
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
