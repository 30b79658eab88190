// Package clacktest is the invocation harness for command-tree tests:
// it runs a command in embedded mode with captured output streams,
// injected environment, and canned stdin, and reports the mapped exit
// code alongside the raw error.
package clacktest

import (
	"bytes"
	"context"
	"strings"

	"github.com/dzonerzy/go-clack/clack"
	clackio "github.com/dzonerzy/go-clack/io"
)

// Result is the outcome of one harness invocation.
type Result struct {
	// ExitCode is the code the standalone driver would have exited
	// with, resolved through the invocation's exit-code manager.
	ExitCode int
	// Err is the raw error the embedded driver returned, nil on
	// success. ExitSignal from --help and --version lands here too.
	Err error

	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// Stdout returns everything the invocation wrote to its output stream.
func (r *Result) Stdout() string { return r.stdout.String() }

// Stderr returns everything the invocation wrote to its error stream.
func (r *Result) Stderr() string { return r.stderr.String() }

// Success reports whether the invocation finished with exit code 0.
func (r *Result) Success() bool { return r.ExitCode == 0 }

// Runner invokes one command tree repeatedly under controlled IO.
// The zero value is not usable; construct with NewRunner.
type Runner struct {
	cmd      *clack.Command
	env      map[string]string
	stdin    string
	defaults clack.DefaultMap
	prompter clackio.Prompter
	exit     *clack.ExitCodeManager
	obj      any
}

// NewRunner creates a harness around the given command tree.
func NewRunner(cmd *clack.Command) *Runner {
	return &Runner{
		cmd: cmd,
		env: make(map[string]string),
	}
}

// Setenv injects one environment variable for subsequent runs. Injected
// values shadow the process environment without mutating it.
func (r *Runner) Setenv(key, value string) *Runner {
	r.env[key] = value
	return r
}

// Stdin sets the input the invocation reads.
func (r *Runner) Stdin(input string) *Runner {
	r.stdin = input
	return r
}

// Defaults installs a default map for subsequent runs.
func (r *Runner) Defaults(m clack.DefaultMap) *Runner {
	r.defaults = m
	return r
}

// Prompter replaces the prompting collaborator, bypassing stdin.
func (r *Runner) Prompter(p clackio.Prompter) *Runner {
	r.prompter = p
	return r
}

// ExitCodes installs a custom exit-code manager.
func (r *Runner) ExitCodes(m *clack.ExitCodeManager) *Runner {
	r.exit = m
	return r
}

// Obj seeds the root Context's user payload.
func (r *Runner) Obj(obj any) *Runner {
	r.obj = obj
	return r
}

// Run invokes the command tree with the given arguments and captures
// the outcome: driver-style error messages land in the captured stderr,
// the mapped exit code and raw error in the Result. Each call gets
// fresh output buffers.
func (r *Runner) Run(args ...string) *Result {
	return r.RunContext(context.Background(), args...)
}

// RunContext is Run with an explicit context for cancellation.
func (r *Runner) RunContext(ctx context.Context, args ...string) *Result {
	res := &Result{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	streams := clackio.New().
		WithIn(strings.NewReader(r.stdin)).
		WithOut(res.stdout).
		WithErr(res.stderr)

	opts := []clack.RunOption{
		clack.WithStreams(streams),
		clack.WithEnv(r.env),
	}
	if r.defaults != nil {
		opts = append(opts, clack.WithDefaults(r.defaults))
	}
	if r.prompter != nil {
		opts = append(opts, clack.WithPrompter(r.prompter))
	}
	if r.exit != nil {
		opts = append(opts, clack.WithExitCodes(r.exit))
	}
	if r.obj != nil {
		opts = append(opts, clack.WithObj(r.obj))
	}

	res.ExitCode, res.Err = r.cmd.RunWithCode(ctx, args, opts...)
	return res
}
