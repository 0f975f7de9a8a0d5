// Package runner spawns the external media tools and exposes their output
// as an incrementally consumed line stream.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

var commandContext = exec.CommandContext

// ErrSubprocess reports a nonzero exit from a spawned tool. It is distinct
// from the line stream simply running dry.
var ErrSubprocess = errors.New("subprocess failed")

// ffmpeg can emit very long metadata lines; the default 64KB scanner
// buffer is not always enough.
const maxLineBytes = 1024 * 1024

// Process is a live handle on a spawned subprocess. Stdout and stderr are
// merged into a single forward-only line sequence, since the tools
// interleave informational and data lines across both.
//
// The handle must be closed on every exit path; Close terminates the
// process if it is still running and always reaps it.
type Process struct {
	name    string
	cmd     *exec.Cmd
	scanner *bufio.Scanner
	waited  bool
	waitErr error
}

// Start spawns binary with args under ctx. Cancelling ctx kills the
// subprocess.
func Start(ctx context.Context, binary string, args ...string) (*Process, error) {
	cmd := commandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Process{name: binary, cmd: cmd, scanner: scanner}, nil
}

// Scan advances to the next output line, blocking until the subprocess
// emits one or exits. It returns false at end of stream.
func (p *Process) Scan() bool {
	return p.scanner.Scan()
}

// Line returns the most recently scanned line.
func (p *Process) Line() string {
	return p.scanner.Text()
}

// Wait reaps the subprocess and reports its exit status. A nonzero exit
// wraps ErrSubprocess. Read errors on the line stream are surfaced first.
func (p *Process) Wait() error {
	if err := p.scanner.Err(); err != nil {
		_ = p.reap()
		return fmt.Errorf("read %s output: %w", p.name, err)
	}
	if err := p.reap(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSubprocess, p.name, err)
	}
	return nil
}

// Close releases the handle. If the process has not been waited on yet it
// is killed first, so early returns never leak a subprocess.
func (p *Process) Close() error {
	if p == nil || p.waited {
		return nil
	}
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	return p.reap()
}

func (p *Process) reap() error {
	if p.waited {
		return p.waitErr
	}
	p.waited = true
	p.waitErr = p.cmd.Wait()
	return p.waitErr
}
