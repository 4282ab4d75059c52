// Package editor implements the line-indexed edit engine: the instruction
// model, batch validation, deterministic application, line diffing and
// content fingerprinting. All line numbers in a batch reference the file as
// it was before any instruction of the batch ran.
package editor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the tagged variant of an edit instruction.
type Kind int

const (
	// Insert places new lines immediately before the target line.
	Insert Kind = iota
	// Delete removes the single target line.
	Delete
	// Replace rewrites the target line, or substitutes the first
	// occurrence of OldText within it when OldText is set.
	Replace
	// ReplaceSection replaces the inclusive line range [LineNumber, EndLine].
	ReplaceSection
)

// String returns the canonical wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case ReplaceSection:
		return "replacesection"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a wire tag to a Kind. Matching is case-insensitive; an
// unrecognized tag is a hard error, never a silent default.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(tag) {
	case "insert":
		return Insert, nil
	case "delete":
		return Delete, nil
	case "replace":
		return Replace, nil
	case "replacesection", "replace_section":
		return ReplaceSection, nil
	default:
		return 0, fmt.Errorf("unknown edit type %q", tag)
	}
}

// MarshalJSON encodes the kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a wire tag, rejecting unknown values.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("edit type must be a string: %w", err)
	}
	parsed, err := ParseKind(tag)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Instruction is one requested change against the original (pre-batch) line
// numbering of the file.
//
// Text and OldText are pointers because presence matters: Insert requires
// Text to be present even when it is the empty string, and Replace behaves
// differently with and without OldText.
type Instruction struct {
	// LineNumber is the 1-based target line in the pre-batch numbering.
	LineNumber int `json:"lineNumber"`
	// Kind selects the operation.
	Kind Kind `json:"type"`
	// Text is the new content. Multi-line values split on \n into
	// multiple output lines.
	Text *string `json:"text,omitempty"`
	// OldText, when set on a Replace, restricts the substitution to the
	// first occurrence of this substring within the target line.
	OldText *string `json:"oldText,omitempty"`
	// EndLine is the inclusive end of the range for ReplaceSection.
	EndLine *int `json:"endLine,omitempty"`
}

// UnmarshalJSON decodes an instruction, rejecting objects without a type
// tag. The zero Kind is a real variant (Insert), so absence has to be
// detected here, before the tagged parse; it must never decode as a
// default.
func (ins *Instruction) UnmarshalJSON(data []byte) error {
	var raw struct {
		LineNumber int     `json:"lineNumber"`
		Type       *string `json:"type"`
		Text       *string `json:"text"`
		OldText    *string `json:"oldText"`
		EndLine    *int    `json:"endLine"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == nil {
		return fmt.Errorf("edit instruction for line %d is missing required field %q", raw.LineNumber, "type")
	}
	kind, err := ParseKind(*raw.Type)
	if err != nil {
		return err
	}
	*ins = Instruction{
		LineNumber: raw.LineNumber,
		Kind:       kind,
		Text:       raw.Text,
		OldText:    raw.OldText,
		EndLine:    raw.EndLine,
	}
	return nil
}

// ParseBatch decodes a JSON array of instructions. Any schema problem
// (malformed JSON, wrong field type, missing or unknown edit type) fails
// the whole batch before validation begins.
func ParseBatch(data []byte) ([]Instruction, error) {
	var batch []Instruction
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("malformed edit batch: %w", err)
	}
	return batch, nil
}
