package gen

import (
	"fmt"
	"strings"
)

// Writer accumulates generated lines in memory. The generator performs no
// file I/O; the caller owns the placement of the final document.
type Writer struct {
	lines  []string
	indent int
}

// NewWriter creates an empty document writer.
func NewWriter() *Writer {
	return &Writer{}
}

// P appends one formatted line at the current indentation.
func (w *Writer) P(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if w.indent > 0 && line != "" {
		line = strings.Repeat("  ", w.indent) + line
	}
	w.lines = append(w.lines, line)
}

// Blank appends an empty line.
func (w *Writer) Blank() {
	w.lines = append(w.lines, "")
}

// In increases the indentation level.
func (w *Writer) In() { w.indent++ }

// Out decreases the indentation level.
func (w *Writer) Out() {
	if w.indent > 0 {
		w.indent--
	}
}

// Append copies all lines of another writer.
func (w *Writer) Append(other *Writer) {
	w.lines = append(w.lines, other.lines...)
}

// Len returns the number of accumulated lines.
func (w *Writer) Len() int { return len(w.lines) }

// String assembles the accumulated document.
func (w *Writer) String() string {
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}
