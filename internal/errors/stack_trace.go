package errors

import (
	"fmt"
	"strings"
)

// StackFrame represents a single frame in a user-function call stack,
// captured when StackOverflowError is raised.
type StackFrame struct {
	FunctionName string
	Pos          Position
}

// String renders a frame as "name [line: N, column: M]".
func (sf StackFrame) String() string {
	return fmt.Sprintf("%s [line: %d, column: %d]", sf.FunctionName, sf.Pos.Line, sf.Pos.Column)
}

// StackTrace is an ordered sequence of frames, oldest first.
type StackTrace []StackFrame

// String renders the trace newest-first, one frame per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a copy of the trace with frames newest-first.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}
