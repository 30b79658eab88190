package clackio

import (
	"bufio"
	"fmt"
	stdio "io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptRequest describes one value to collect from the user.
type PromptRequest struct {
	// Message is the prompt text, without suffix. A default, when
	// non-empty, is displayed in brackets and returned on empty input.
	Message string
	Default string

	// HideInput suppresses echo while typing (passwords). Only
	// effective when input is a terminal; otherwise input is read
	// plainly.
	HideInput bool

	// Confirmation asks for the value twice and retries until the two
	// entries match.
	Confirmation bool
}

// Prompter collects values interactively. The resolution engine calls
// it when an unset option is declared promptable; tests inject scripted
// implementations.
type Prompter interface {
	Prompt(req PromptRequest) (string, error)
}

// TerminalPrompter is the default Prompter. It writes prompt text to
// the output stream and reads lines from the input stream.
type TerminalPrompter struct {
	streams *Streams
	reader  *bufio.Reader
}

// NewTerminalPrompter returns a prompter bound to the given streams.
func NewTerminalPrompter(streams *Streams) *TerminalPrompter {
	return &TerminalPrompter{
		streams: streams,
		reader:  bufio.NewReader(streams.In()),
	}
}

// Prompt collects one value. Empty input falls back to the default when
// one is set, and re-prompts otherwise. An input error (including EOF
// when the user hits ctrl-d) is returned to the caller, which treats it
// as an abort.
func (p *TerminalPrompter) Prompt(req PromptRequest) (string, error) {
	for {
		value, err := p.ask(p.render(req), req.HideInput)
		if err != nil {
			return "", err
		}
		if value == "" {
			if req.Default != "" {
				value = req.Default
			} else {
				continue
			}
		}
		if !req.Confirmation {
			return value, nil
		}

		repeat, err := p.ask("Repeat for confirmation: ", req.HideInput)
		if err != nil {
			return "", err
		}
		if repeat == value {
			return value, nil
		}
		fmt.Fprintln(p.streams.Out(), "Error: the two entered values do not match.")
	}
}

func (p *TerminalPrompter) render(req PromptRequest) string {
	if req.Default != "" && !req.HideInput {
		return fmt.Sprintf("%s [%s]: ", req.Message, req.Default)
	}
	return req.Message + ": "
}

func (p *TerminalPrompter) ask(message string, hidden bool) (string, error) {
	if _, err := stdio.WriteString(p.streams.Out(), message); err != nil {
		return "", err
	}

	if hidden {
		if f, ok := p.streams.In().(*os.File); ok && isTerminal(f) {
			raw, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(p.streams.Out())
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
