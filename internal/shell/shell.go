// Package shell runs the per-row test command with an embedded POSIX shell
// interpreter, so matrix scripts behave the same on hosts without /bin/sh.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes shell commands with a fixed environment snapshot per call.
type Runner struct {
	// Stdin, Stdout, Stderr wire the command's standard streams. Nil writers
	// discard output.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is the working directory; empty means the process working directory.
	Dir string
}

// Run executes command under environ. The boolean is the command's pass/fail
// outcome; err reports problems other than a failing command (parse errors,
// interpreter setup).
func (r *Runner) Run(ctx context.Context, command string, environ []string) (bool, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "test-command")
	if err != nil {
		return false, fmt.Errorf("parsing test command: %w", err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(r.Stdin, r.Stdout, r.Stderr),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return false, err
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
