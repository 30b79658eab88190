package clack

import (
	"fmt"
	"strings"
)

// UsageErrorType classifies the ways a command line can be wrong.
// The category drives both the rendered message and the exit-code
// mapping (via ExitCodeManager).
type UsageErrorType string

const (
	UsageMissingParameter UsageErrorType = "missing_parameter"
	UsageBadParameter     UsageErrorType = "bad_parameter"
	UsageNoSuchOption     UsageErrorType = "no_such_option"
	UsageAmbiguousOption  UsageErrorType = "ambiguous_option"
	UsageBadOption        UsageErrorType = "bad_option_usage"
	UsageBadArgument      UsageErrorType = "bad_argument_usage"
	UsageMissingCommand   UsageErrorType = "missing_command"
	UsageExtraArguments   UsageErrorType = "extra_arguments"
	UsageNoSuchCommand    UsageErrorType = "no_such_command"
)

// UsageError is raised by the parser and the resolution pipeline when
// the command line itself is at fault. It carries the originating
// Context so a driver can render a usage line next to the message.
type UsageError struct {
	Type          UsageErrorType
	Message       string
	Ctx           *Context
	Param         *Param
	Spelling      string   // offending spelling as typed
	Possibilities []string // sorted candidates for ambiguous abbreviations
	Suggestion    string   // single close match for typos
}

// Error renders the message with any attached possibilities or
// suggestion. The usage line is the driver's job, not the error's.
func (e *UsageError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Possibilities) > 0 {
		b.WriteString(" (possible options: ")
		b.WriteString(strings.Join(e.Possibilities, ", "))
		b.WriteString(")")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\nDid you mean %q?", e.Suggestion)
	}
	return b.String()
}

// NewUsageError creates a UsageError with the given category and message.
func NewUsageError(typ UsageErrorType, message string) *UsageError {
	return &UsageError{Type: typ, Message: message}
}

// WithContext attaches the originating Context.
func (e *UsageError) WithContext(ctx *Context) *UsageError {
	e.Ctx = ctx
	return e
}

// WithParam attaches the Param the error is about.
func (e *UsageError) WithParam(p *Param) *UsageError {
	e.Param = p
	return e
}

// WithSpelling records the offending spelling exactly as typed.
func (e *UsageError) WithSpelling(spelling string) *UsageError {
	e.Spelling = spelling
	return e
}

// WithPossibilities records the candidate set for an ambiguous
// abbreviation. Callers pass it pre-sorted.
func (e *UsageError) WithPossibilities(possibilities []string) *UsageError {
	e.Possibilities = possibilities
	return e
}

// WithSuggestion records the single close-match suggestion.
func (e *UsageError) WithSuggestion(suggestion string) *UsageError {
	e.Suggestion = suggestion
	return e
}

// CLIError is an application-level failure raised by callback code.
// It maps to exit code 1 unless remapped.
type CLIError struct {
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a CLIError with the given message.
func NewCLIError(message string) *CLIError {
	return &CLIError{Message: message}
}

// WithCause attaches the underlying cause.
func (e *CLIError) WithCause(cause error) *CLIError {
	e.Cause = cause
	return e
}

// AbortError signals a user interrupt, typically ctrl-c or EOF during a
// prompt. The standalone driver prints "Aborted!" and exits 1.
type AbortError struct {
	Cause error
}

func (e *AbortError) Error() string {
	return "aborted"
}

func (e *AbortError) Unwrap() error {
	return e.Cause
}

// Abort returns an AbortError wrapping cause (which may be nil).
func Abort(cause error) *AbortError {
	return &AbortError{Cause: cause}
}

// ExitSignal requests termination with a specific code. Eager
// short-circuit parameters (--help, --version) return it with code 0;
// callbacks may return any code. The embedded driver hands it back to
// the caller; the standalone driver exits with the code silently.
type ExitSignal struct {
	Code int
}

func (e *ExitSignal) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// Exit returns an ExitSignal for the given code.
func Exit(code int) *ExitSignal {
	return &ExitSignal{Code: code}
}
