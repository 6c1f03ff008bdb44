// Package textdiff produces line level diffs for human review.
package textdiff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind classifies a diff line
type Kind string

const (
	Unchanged Kind = "unchanged"
	Removed   Kind = "removed"
	Added     Kind = "added"
)

// Line is one row of a diff. Line numbers are 1-based, zero means absent:
// removed lines have no NewLine and added lines have no OldLine.
type Line struct {
	Kind    Kind   `json:"kind"`
	Text    string `json:"text"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

// Lines diffs two texts line by line. A changed line is reported as the
// removed old line immediately followed by the added new line.
func Lines(oldText, newText string) []Line {
	a := splitLines(oldText)
	b := splitLines(newText)

	m := difflib.NewMatcher(a, b)
	out := make([]Line, 0, len(a)+len(b))
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i := 0; i < op.I2-op.I1; i++ {
				out = append(out, Line{Kind: Unchanged, Text: a[op.I1+i], OldLine: op.I1 + i + 1, NewLine: op.J1 + i + 1})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, Line{Kind: Removed, Text: a[i], OldLine: i + 1})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				out = append(out, Line{Kind: Added, Text: b[j], NewLine: j + 1})
			}
		case 'r':
			out = appendReplace(out, a, b, op)
		}
	}
	return out
}

// appendReplace pairs removed and added lines, leftovers trail the pairs
func appendReplace(out []Line, a, b []string, op difflib.OpCode) []Line {
	i, j := op.I1, op.J1
	for i < op.I2 || j < op.J2 {
		if i < op.I2 {
			out = append(out, Line{Kind: Removed, Text: a[i], OldLine: i + 1})
			i++
		}
		if j < op.J2 {
			out = append(out, Line{Kind: Added, Text: b[j], NewLine: j + 1})
			j++
		}
	}
	return out
}

// HasChanges reports whether any line was added or removed
func HasChanges(lines []Line) bool {
	for _, l := range lines {
		if l.Kind != Unchanged {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
