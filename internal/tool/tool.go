// Package tool invokes external programs and captures their results.
//
// The harness performs no work of its own while a tool runs: every
// invocation blocks the calling goroutine until the process exits, and its
// combined stdout/stderr, exit status, and wall-clock duration are returned
// as a value. Exit status is recorded, never interpreted here; callers
// decide what a failure means for their step.
package tool

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pressley/codecbench/internal/errors"
)

// Invocation is the record of one external tool run.
type Invocation struct {
	Command  string
	Args     []string
	Output   string // combined stdout and stderr, captured verbatim
	ExitCode int
	Duration time.Duration
	Err      error // set only when the process could not be started or waited on
}

// Failed reports whether the invocation either could not run or exited
// non-zero.
func (inv Invocation) Failed() bool {
	return inv.Err != nil || inv.ExitCode != 0
}

// CommandLine renders the invocation as a shell-style command line for
// logging and diagnostics.
func (inv Invocation) CommandLine() string {
	if len(inv.Args) == 0 {
		return inv.Command
	}
	return inv.Command + " " + strings.Join(inv.Args, " ")
}

// Runner executes external tools. The pipeline depends on this interface so
// tests can substitute a fake that fabricates outputs without spawning
// processes.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) Invocation
}

// ExecRunner runs tools via os/exec, optionally in a fixed working
// directory. All file arguments the harness builds are relative to that
// directory.
type ExecRunner struct {
	Dir string
}

// Run executes the command and blocks until it terminates. Context
// cancellation kills the process; no other timeout is enforced.
func (r ExecRunner) Run(ctx context.Context, command string, args ...string) Invocation {
	start := time.Now()
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.Dir

	out, err := cmd.CombinedOutput()
	inv := Invocation{
		Command:  command,
		Args:     args,
		Output:   string(out),
		Duration: time.Since(start),
	}

	if err != nil {
		coreErr := errors.WrapExecError(command, err, inv.Output)
		if cmdErr, ok := coreErr.Underlying.(*errors.CommandError); ok && cmdErr.Kind == errors.CommandFailed {
			// A non-zero exit is data, not an invocation error.
			inv.ExitCode = cmdErr.ExitCode
		} else {
			inv.Err = coreErr
		}
	}
	return inv
}
