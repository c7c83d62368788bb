// recover.go provides the Recover helper for standalone panic capture.
// Use this in HTTP handlers, goroutines, or other code that must not
// crash the host.

package vigil

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Recover captures a panic, submits it through the client, and returns
// the recovered value. Recover does NOT re-panic after recording.
//
// Use in defer:
//
//	func handler(ctx context.Context) {
//	    defer vigil.Recover(ctx, client)
//	    // code that might panic
//	}
//
// Or to capture the recovered value:
//
//	func handler(ctx context.Context) (err error) {
//	    defer func() {
//	        if r := vigil.Recover(ctx, client); r != nil {
//	            err = fmt.Errorf("panic: %v", r)
//	        }
//	    }()
//	    // code that might panic
//	}
func Recover(ctx context.Context, client *Client) any {
	r := recover()
	if r == nil {
		return nil
	}

	event := &Event{
		Level:   "fatal",
		Message: formatRecovered(r),
		Exceptions: []Exception{{
			Type:       fmt.Sprintf("%T", r),
			Value:      formatRecovered(r),
			Stacktrace: captureStacktrace(3),
		}},
	}
	event.Checksum = Checksum(event)

	// The submission result is advisory here: a failed telemetry send
	// must not affect the caller.
	_ = client.Send(ctx, event)

	return r
}

// formatRecovered formats a recovered panic value as a string.
func formatRecovered(recovered any) string {
	if recovered == nil {
		return "<nil>"
	}
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", recovered)
}

// captureStacktrace walks the caller's stack into frame records, skipping
// skip frames of capture machinery.
func captureStacktrace(skip int) *Stacktrace {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	callers := runtime.CallersFrames(pcs[:n])
	var out []Frame
	for {
		fr, more := callers.Next()
		if fr.Function != "" {
			module, function := splitFuncName(fr.Function)
			out = append(out, Frame{
				Function: function,
				Module:   module,
				AbsPath:  fr.File,
				Filename: filepath.Base(fr.File),
				Lineno:   fr.Line,
				InApp:    !strings.HasPrefix(fr.Function, "runtime."),
			})
		}
		if !more {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &Stacktrace{Frames: out}
}

// splitFuncName splits a runtime function name like
// "pkg/subpkg.(*T).Method" into its package path and bare name.
func splitFuncName(full string) (module, function string) {
	slash := strings.LastIndex(full, "/")
	dot := strings.Index(full[slash+1:], ".")
	if dot < 0 {
		return "", full
	}
	dot += slash + 1
	return full[:dot], full[dot+1:]
}
