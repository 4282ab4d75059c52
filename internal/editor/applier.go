package editor

import (
	"fmt"
	"sort"
	"strings"
)

// ConflictError reports a Replace whose OldText was not found in its target
// line at apply time. The whole batch fails; the file is left untouched.
type ConflictError struct {
	LineNumber int
	OldText    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("oldText %q not found in line %d", e.OldText, e.LineNumber)
}

// OverlapError reports an instruction whose target line no longer exists at
// apply time because an earlier instruction of the same batch consumed it
// (a same-line tie where the first instruction shrank the file). The whole
// batch fails; the file is left untouched.
type OverlapError struct {
	LineNumber int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("line %d was already consumed by an earlier edit in the batch", e.LineNumber)
}

// Apply runs a validated batch against the original line sequence and
// returns the new full sequence plus the number of instructions applied.
// The input slice is not modified.
//
// Instructions are processed in descending LineNumber order (ties: EndLine
// descending, then original batch order). Because every instruction is
// specified against the pre-batch numbering, working bottom-up means an
// instruction targeting line k still finds its target at index k-1 when it
// runs: everything processed so far only touched lines below it. The one
// exception is a same-line tie whose earlier instruction removed the target
// (two deletes of the same line, a delete followed by a replace of it);
// that is an OverlapError failing the whole batch.
func Apply(lines []string, batch []Instruction) ([]string, int, error) {
	work := make([]string, len(lines))
	copy(work, lines)

	ordered := make([]Instruction, len(batch))
	copy(ordered, batch)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].LineNumber != ordered[j].LineNumber {
			return ordered[i].LineNumber > ordered[j].LineNumber
		}
		return endLineOf(ordered[i]) > endLineOf(ordered[j])
	})

	applied := 0
	for _, ins := range ordered {
		var err error
		switch ins.Kind {
		case Insert:
			work = applyInsert(work, ins)
		case Delete:
			work, err = applyDelete(work, ins)
		case Replace:
			work, err = applyReplace(work, ins)
		case ReplaceSection:
			work, err = applyReplaceSection(work, ins)
		}
		if err != nil {
			return nil, applied, err
		}
		applied++
	}
	return work, applied, nil
}

func endLineOf(ins Instruction) int {
	if ins.EndLine != nil {
		return *ins.EndLine
	}
	return ins.LineNumber
}

// splitText turns instruction text into output lines. Text has been
// newline-normalized during validation, so only \n occurs.
func splitText(text string) []string {
	return strings.Split(text, "\n")
}

func applyInsert(lines []string, ins Instruction) []string {
	pos := ins.LineNumber
	if pos < 1 {
		pos = 1
	}
	if pos > len(lines)+1 {
		pos = len(lines) + 1 // past EOF appends
	}
	idx := pos - 1
	return splice(lines, idx, idx, splitText(*ins.Text))
}

func applyDelete(lines []string, ins Instruction) ([]string, error) {
	if ins.LineNumber > len(lines) {
		return nil, &OverlapError{LineNumber: ins.LineNumber}
	}
	idx := ins.LineNumber - 1
	return splice(lines, idx, idx+1, nil), nil
}

func applyReplace(lines []string, ins Instruction) ([]string, error) {
	if ins.LineNumber > len(lines) {
		return nil, &OverlapError{LineNumber: ins.LineNumber}
	}
	idx := ins.LineNumber - 1
	if ins.OldText == nil {
		return splice(lines, idx, idx+1, splitText(*ins.Text)), nil
	}
	// Substring substitution: exact, case-sensitive, first match only.
	target := lines[idx]
	if !strings.Contains(target, *ins.OldText) {
		return nil, &ConflictError{LineNumber: ins.LineNumber, OldText: *ins.OldText}
	}
	replaced := strings.Replace(target, *ins.OldText, *ins.Text, 1)
	return splice(lines, idx, idx+1, splitText(replaced)), nil
}

func applyReplaceSection(lines []string, ins Instruction) ([]string, error) {
	if ins.LineNumber > len(lines) {
		return nil, &OverlapError{LineNumber: ins.LineNumber}
	}
	start := ins.LineNumber - 1
	end := *ins.EndLine // inclusive, becomes exclusive index below
	if end > len(lines) {
		end = len(lines)
	}
	var replacement []string
	if ins.Text != nil {
		replacement = splitText(*ins.Text)
	}
	return splice(lines, start, end, replacement), nil
}

// splice replaces lines[start:end] with replacement.
func splice(lines []string, start, end int, replacement []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(replacement))
	out = append(out, lines[:start]...)
	out = append(out, replacement...)
	out = append(out, lines[end:]...)
	return out
}
