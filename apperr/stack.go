package apperr

import (
	"fmt"
	"runtime"
	"strings"
)

// maxStackDepth bounds the number of frames captured per error.
const maxStackDepth = 32

// captureStack records the calling stack as text, skipping the given number
// of frames above captureStack itself. Runtime-internal frames are elided.
func captureStack(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
