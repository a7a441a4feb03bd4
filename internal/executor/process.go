package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/dotnet-test/internal/models"
)

// ProcessRunner runs external runner commands and reports how they ended.
// Implementations never return a Go error: failures to start, non-zero
// exits and signal terminations are all carried by the InvocationResult.
type ProcessRunner interface {
	// RunSync runs cmd to completion with its output captured.
	RunSync(ctx context.Context, cmd models.Command) models.InvocationResult
	// RunInteractive runs cmd attached to the terminal.
	RunInteractive(ctx context.Context, cmd models.Command) models.InvocationResult
}

// ExecRunner runs commands with os/exec. Arguments are passed as a discrete
// argv; no shell is involved.
type ExecRunner struct {
	Dir string // Working directory for commands (empty = current dir)

	// Streams for interactive runs. Nil means the process's own stdio.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner that runs in workDir.
func NewExecRunner(workDir string) *ExecRunner {
	return &ExecRunner{Dir: workDir}
}

// RunSync runs cmd with stdout and stderr buffered and stdin detached.
func (r *ExecRunner) RunSync(ctx context.Context, cmd models.Command) models.InvocationResult {
	var stdout, stderr bytes.Buffer

	c := r.command(ctx, cmd)
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()

	result := classify(cmd, err)
	result.Duration = time.Since(start)
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()
	return result
}

// RunInteractive runs cmd with inherited stdio. Interrupts are ignored by
// this process while the child runs; the terminal delivers them to the
// child, and its resulting status is reported.
func (r *ExecRunner) RunInteractive(ctx context.Context, cmd models.Command) models.InvocationResult {
	c := r.command(ctx, cmd)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if r.Stdin != nil {
		c.Stdin = r.Stdin
	}
	if r.Stdout != nil {
		c.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		c.Stderr = r.Stderr
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)

	start := time.Now()
	err := c.Run()

	result := classify(cmd, err)
	result.Duration = time.Since(start)
	return result
}

func (r *ExecRunner) command(ctx context.Context, cmd models.Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Executable, cmd.Args...)
	if r.Dir != "" {
		c.Dir = r.Dir
	}
	return c
}

// classify turns the error from exec.Cmd.Run into an InvocationResult.
func classify(cmd models.Command, err error) models.InvocationResult {
	result := models.InvocationResult{Command: cmd}

	if err == nil {
		result.ExitCode = models.ExitCodeOf(0)
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			result.Signal = status.Signal()
			return result
		}
		if code := exitErr.ExitCode(); code >= 0 {
			result.ExitCode = models.ExitCodeOf(code)
			return result
		}
	}

	result.SpawnErr = err
	return result
}
