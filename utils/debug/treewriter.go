// Package debug produces human readable dumps for troubleshooting.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented text, one node per line.
type TreeWriter struct {
	w strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "label: value", value is quoted so surrounding whitespace and
// control characters are visible.
func (tw *TreeWriter) Field(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}
