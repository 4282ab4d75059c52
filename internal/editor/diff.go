package editor

import (
	"fmt"
	"strings"
)

// maxDiffLines bounds the quadratic LCS table. Inputs beyond it get a
// coarse whole-file replacement diff instead.
const maxDiffLines = 10000

const diffContextLines = 3

// Diff produces a unified-style line diff between two line sequences.
// Output is deterministic for identical inputs and distinguishes inserted
// (+), removed (-) and unchanged (space) lines, grouped into hunks with
// @@ -start,count +start,count @@ headers and three lines of context.
// Identical inputs yield the empty string.
func Diff(before, after []string) string {
	ops := diffOps(before, after)

	var b strings.Builder
	i := 0
	for i < len(ops) {
		// Skip runs of equal lines between hunks.
		if ops[i].tag == ' ' {
			j := i
			for j < len(ops) && ops[j].tag == ' ' {
				j++
			}
			if j == len(ops) {
				break
			}
			i = j
			continue
		}

		// Expand the hunk: changed ops plus surrounding context, merging
		// changes separated by short equal runs.
		start := i
		end := i
		for end < len(ops) {
			if ops[end].tag != ' ' {
				end++
				continue
			}
			run := 0
			for end+run < len(ops) && ops[end+run].tag == ' ' {
				run++
			}
			if end+run == len(ops) || run > 2*diffContextLines {
				break
			}
			end += run
		}
		ctxStart := start - diffContextLines
		if ctxStart < 0 {
			ctxStart = 0
		}
		ctxEnd := end + diffContextLines
		if ctxEnd > len(ops) {
			ctxEnd = len(ops)
		}
		// Context must not swallow preceding/following changes.
		for ctxStart > 0 && ops[ctxStart-1].tag != ' ' {
			ctxStart--
		}

		writeHunk(&b, ops[ctxStart:ctxEnd])
		i = ctxEnd
	}
	return b.String()
}

type diffOp struct {
	tag     byte // ' ', '-', '+'
	line    string
	oldLine int // 1-based position in before; 0 for '+'
	newLine int // 1-based position in after; 0 for '-'
}

func writeHunk(b *strings.Builder, ops []diffOp) {
	oldStart, oldCount, newStart, newCount := 0, 0, 0, 0
	for _, op := range ops {
		if op.oldLine != 0 {
			if oldStart == 0 {
				oldStart = op.oldLine
			}
			oldCount++
		}
		if op.newLine != 0 {
			if newStart == 0 {
				newStart = op.newLine
			}
			newCount++
		}
	}
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, op := range ops {
		b.WriteByte(op.tag)
		b.WriteString(op.line)
		b.WriteByte('\n')
	}
}

// diffOps aligns the two sequences with a longest-common-subsequence table
// and emits per-line operations in order.
func diffOps(before, after []string) []diffOp {
	if len(before) > maxDiffLines || len(after) > maxDiffLines {
		return coarseOps(before, after)
	}

	n, m := len(before), len(after)
	// lcs[i][j] = length of LCS of before[i:] and after[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if before[i] == after[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case before[i] == after[j]:
			ops = append(ops, diffOp{' ', before[i], i + 1, j + 1})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{'-', before[i], i + 1, 0})
			i++
		default:
			ops = append(ops, diffOp{'+', after[j], 0, j + 1})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, diffOp{'-', before[i], i + 1, 0})
	}
	for ; j < m; j++ {
		ops = append(ops, diffOp{'+', after[j], 0, j + 1})
	}
	return ops
}

// coarseOps represents the change as remove-everything/add-everything.
// Only used past the LCS size limit.
func coarseOps(before, after []string) []diffOp {
	ops := make([]diffOp, 0, len(before)+len(after))
	for i, line := range before {
		ops = append(ops, diffOp{'-', line, i + 1, 0})
	}
	for j, line := range after {
		ops = append(ops, diffOp{'+', line, 0, j + 1})
	}
	return ops
}
