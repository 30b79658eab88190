// Package clackio centralizes the streams a command tree reads and
// writes. Every message the library emits goes through a Streams value,
// so embedding applications and tests can redirect all of it without
// touching process globals.
package clackio

import (
	stdio "io"
	"os"

	"github.com/mattn/go-isatty"
)

// Streams bundles input, output, and error writers.
type Streams struct {
	in  stdio.Reader
	out stdio.Writer
	err stdio.Writer
}

// New returns streams bound to process stdio.
func New() *Streams {
	return &Streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// WithIn sets the input reader and returns the streams for chaining.
func (s *Streams) WithIn(r stdio.Reader) *Streams { s.in = r; return s }

// WithOut sets the standard output writer and returns the streams for chaining.
func (s *Streams) WithOut(w stdio.Writer) *Streams { s.out = w; return s }

// WithErr sets the standard error writer and returns the streams for chaining.
func (s *Streams) WithErr(w stdio.Writer) *Streams { s.err = w; return s }

// In returns the configured input reader.
func (s *Streams) In() stdio.Reader { return s.in }

// Out returns the configured standard output writer.
func (s *Streams) Out() stdio.Writer { return s.out }

// Err returns the configured standard error writer.
func (s *Streams) Err() stdio.Writer { return s.err }

// IsInTTY reports whether the input reader is a terminal.
func (s *Streams) IsInTTY() bool { return isTerminal(s.in) }

// IsOutTTY reports whether the output writer is a terminal.
func (s *Streams) IsOutTTY() bool { return isTerminal(s.out) }

// IsInteractive reports whether prompting a human makes sense: input is
// a terminal and we are not running under CI.
func (s *Streams) IsInteractive() bool {
	return s.IsInTTY() && os.Getenv("CI") == ""
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
