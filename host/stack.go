package host

import (
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 64

// callerStack formats the stack of whoever called the function invoking it.
// The frame of that function and the outermost frame (the goroutine entry)
// are dropped.
func callerStack() string {
	pcs := make([]uintptr, maxStackDepth)
	// Skip runtime.Callers and callerStack.
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var lines []string
	for {
		frame, more := frames.Next()
		lines = append(lines, fmt.Sprintf("%s\n\t%s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}

	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
