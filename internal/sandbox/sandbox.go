// Package sandbox launches external analyzer programs with bounded output,
// a deadline, and cancellation (spec.md §4.3). It is the only place in the
// engine that spawns a subprocess.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// defaultOutputCapChars is the default per-stream output cap, in characters.
const defaultOutputCapChars = 10_000_000

// timedOutExitCode is the sentinel exit code reported when the process is
// killed for exceeding its deadline.
const timedOutExitCode = -1

// launchFailedExitCode is the sentinel exit code reported when the program
// could not be started at all.
const launchFailedExitCode = -2

// Result is the outcome of a sandboxed invocation.
type Result struct {
	ExitCode         int
	Stdout           string
	Stderr           string
	TimedOut         bool
	OutputTruncated  bool
}

// Options configures one Execute call. OutputCapChars defaults to
// defaultOutputCapChars when zero.
type Options struct {
	Program         string
	Args            []string
	WorkingDir      string
	Env             []string
	Timeout         time.Duration
	OutputCapChars  int
}

const truncationMarkerFmt = "[OUTPUT TRUNCATED - exceeded %dM char limit]"

// cappedWriter caps the number of characters written into buf, appending a
// sentinel marker once the cap is exceeded. Further writes beyond the cap
// are silently dropped (the marker itself is never truncated).
type cappedWriter struct {
	buf     bytes.Buffer
	limit   int
	marked  bool
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if w.marked {
		return n, nil
	}
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		w.buf.WriteString(fmt.Sprintf(truncationMarkerFmt, w.limit/1_000_000))
		w.marked = true
		return n, nil
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		w.buf.WriteString(fmt.Sprintf(truncationMarkerFmt, w.limit/1_000_000))
		w.marked = true
		return n, nil
	}
	w.buf.Write(p)
	return n, nil
}

// Execute runs opts.Program with opts.Args, enforcing opts.Timeout as an
// absolute deadline and honoring ctx cancellation independently of the
// timeout. A cancelled ctx returns ctx.Err() rather than a Result, per
// spec.md §4.3/§5: cancellation is never downgraded to a completed result.
func Execute(ctx context.Context, opts Options) (Result, error) {
	cap := opts.OutputCapChars
	if cap <= 0 {
		cap = defaultOutputCapChars
	}

	runCtx := ctx
	var cancelTimeout context.CancelFunc
	if opts.Timeout > 0 {
		runCtx, cancelTimeout = context.WithTimeout(ctx, opts.Timeout)
		defer cancelTimeout()
	}

	cmd := exec.CommandContext(runCtx, opts.Program, opts.Args...)
	cmd.Dir = opts.WorkingDir
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	}

	stdout := &cappedWriter{limit: cap}
	stderr := &cappedWriter{limit: cap}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return Result{
				ExitCode:        timedOutExitCode,
				Stdout:          stdout.buf.String(),
				Stderr:          stderr.buf.String(),
				TimedOut:        true,
				OutputTruncated: scanTruncated(stdout, stderr),
			}, nil
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				ExitCode:        exitErr.ExitCode(),
				Stdout:          stdout.buf.String(),
				Stderr:          stderr.buf.String(),
				OutputTruncated: scanTruncated(stdout, stderr),
			}, nil
		}

		// The program never launched (not found, permission denied, ...).
		return Result{
			ExitCode: launchFailedExitCode,
			Stdout:   stdout.buf.String(),
			Stderr:   "sandbox: failed to launch: " + err.Error(),
		}, nil
	}

	return Result{
		ExitCode:        0,
		Stdout:          stdout.buf.String(),
		Stderr:          stderr.buf.String(),
		OutputTruncated: scanTruncated(stdout, stderr),
	}, nil
}

func scanTruncated(stdout, stderr *cappedWriter) bool {
	return OutputTruncated(stdout.buf.String()) || OutputTruncated(stderr.buf.String())
}

// OutputTruncated scans a captured stream for the truncation sentinel. It is
// exported so callers can recompute the flag after a Result has round-tripped
// through JSON, per spec.md §4.3's "survives serialization" requirement.
func OutputTruncated(stream string) bool {
	return strings.Contains(stream, "[OUTPUT TRUNCATED - exceeded ")
}
