package clack

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dzonerzy/go-clack/internal/pool"
	"github.com/dzonerzy/go-clack/internal/trace"
)

// Complete returns the completion candidates for a partial command
// line: args are the complete tokens already on the line, incomplete is
// the (possibly empty) token being typed. The walker replays parsing
// and dispatch in resilient mode, so lines that are wrong mid-edit
// still complete.
func (c *Command) Complete(args []string, incomplete string, opts ...RunOption) []string {
	cfg := newRunConfig(c, opts)
	cfg.resilient = true
	st := c.walk(context.Background(), nil, cfg, args)
	defer closeChain(st.ctx)
	return candidatesFor(st, incomplete)
}

// completionState is the innermost level the line currently addresses.
type completionState struct {
	ctx  *Context
	out  *parseOutcome
	args []string // this level's raw tokens
}

// walk replays one level and descends through dispatch. Callbacks never
// run and every parse or resolution error is swallowed at debug level.
func (c *Command) walk(goCtx context.Context, parent *Context, cfg *runConfig, args []string) completionState {
	ctx := newContext(parent, c, cfg, goCtx)
	tp := newTokenParser(c, true)
	out, err := tp.parse(args)
	if err != nil {
		// Resilient parsing collects instead of raising; a raised error
		// here would be a bug, not bad input.
		trace.Error("resilient parse raised", "err", err)
		out = &parseOutcome{values: make(map[string]*rawValue)}
	}
	if rerr := resolveAll(ctx, out, true); rerr != nil {
		trace.Debug("completion replay resolution error", "err", rerr)
	}
	ctx.leftover = out.leftover

	if c.isDispatcher() && len(out.leftover) > 0 {
		if !c.chain {
			if child, ok := c.subcommands[out.leftover[0]]; ok {
				return child.walk(goCtx, ctx, cfg, out.leftover[1:])
			}
			return completionState{ctx: ctx, out: out, args: args}
		}
		// Chain mode: skip completed segments, descend into the last
		// recognized one.
		rest := out.leftover
		for len(rest) > 0 {
			child, ok := c.subcommands[rest[0]]
			if !ok {
				break
			}
			end := len(rest)
			for i := 1; i < len(rest); i++ {
				if _, sub := c.subcommands[rest[i]]; sub {
					end = i
					break
				}
			}
			if end == len(rest) {
				return child.walk(goCtx, ctx, cfg, rest[1:])
			}
			rest = rest[end:]
		}
	}
	return completionState{ctx: ctx, out: out, args: args}
}

func closeChain(ctx *Context) {
	for cur := ctx; cur != nil; cur = cur.parent {
		_ = cur.Close()
	}
}

// candidatesFor generates candidates at the located level and filters
// them against the in-progress token. Accumulation goes through the
// pooled scratch slice; completion runs on every keystroke.
func candidatesFor(st completionState, incomplete string) []string {
	cmd := st.ctx.Command()
	tp := newTokenParser(cmd, true)
	buf := pool.GetStringSlice()
	defer pool.PutStringSlice(buf)

	// Option-shaped in-progress token: complete spellings, or the value
	// part of a "--name=val" in progress.
	if incomplete != "" && tp.isPrefix(incomplete[0]) {
		if eq := strings.IndexByte(incomplete, '='); eq >= 0 {
			if ref, ok := tp.long[incomplete[:eq]]; ok && ref.param.takesValue() {
				return filterPrefix(valueCandidates(st.ctx, ref.param, incomplete[eq+1:]), incomplete[eq+1:])
			}
		}
		appendOptionCandidates(buf, cmd, st.out)
		return filterPrefix(*buf, incomplete)
	}

	// A trailing value-taking option spelling is waiting for its value.
	if len(st.args) > 0 {
		last := st.args[len(st.args)-1]
		if ref := lookupSpelling(tp, last); ref != nil && ref.param.takesValue() {
			return filterPrefix(valueCandidates(st.ctx, ref.param, incomplete), incomplete)
		}
	}

	// An unfilled declared Argument offers its choices or callback.
	for _, p := range tp.args {
		if _, filled := st.out.values[p.Name]; filled {
			continue
		}
		if cands := valueCandidates(st.ctx, p, incomplete); len(cands) > 0 {
			return filterPrefix(cands, incomplete)
		}
		break
	}

	// Otherwise a dispatcher offers its visible subcommand names.
	for _, name := range cmd.subOrder {
		if cmd.subcommands[name].hidden {
			continue
		}
		*buf = append(*buf, name)
	}
	return filterPrefix(*buf, incomplete)
}

// appendOptionCandidates collects every visible option spelling not
// already consumed from the command line. Repeatable options stay
// offered.
func appendOptionCandidates(buf *[]string, cmd *Command, out *parseOutcome) {
	for _, p := range cmd.params {
		if p.IsArgument() || p.Hidden {
			continue
		}
		if _, consumed := out.values[p.Name]; consumed && !p.Multiple && !p.Count {
			continue
		}
		*buf = append(*buf, p.Opts...)
		*buf = append(*buf, p.SecondaryOpts...)
	}
}

func valueCandidates(ctx *Context, p *Param, incomplete string) []string {
	if p.CompleteFunc != nil {
		return p.CompleteFunc(ctx, incomplete)
	}
	return p.Choices
}

func lookupSpelling(tp *tokenParser, token string) *optionRef {
	if ref, ok := tp.long[token]; ok {
		return ref
	}
	if ref, ok := tp.short[token]; ok {
		return ref
	}
	return nil
}

// filterPrefix copies the matching candidates out; the input may be
// pooled memory.
func filterPrefix(candidates []string, incomplete string) []string {
	var out []string
	for _, cand := range candidates {
		if strings.HasPrefix(cand, incomplete) {
			out = append(out, cand)
		}
	}
	return out
}

// Shell integration. A <PROG>_COMPLETE environment variable set to
// <shell>_source makes the driver emit the activation script; set to
// <shell>_complete it serves candidates for the partial line the shell
// passes through COMP_WORDS and COMP_CWORD.

func completionEnvVar(progName string) string {
	return strings.ToUpper(strings.ReplaceAll(progName, "-", "_")) + "_COMPLETE"
}

// maybeShellComplete handles a completion request before any real
// parsing. It reports whether the request was served.
func (c *Command) maybeShellComplete(cfg *runConfig) (bool, int) {
	mode := os.Getenv(completionEnvVar(cfg.progName))
	if mode == "" {
		return false, 0
	}

	switch mode {
	case "bash_source", "zsh_source", "fish_source":
		shell := strings.TrimSuffix(mode, "_source")
		fmt.Fprint(cfg.streams.Out(), completionScript(shell, cfg.progName))
		return true, 0
	case "bash_complete", "zsh_complete", "fish_complete":
		// words[0] is the program name, words[cword] the token under
		// the cursor (absent when the cursor sits past the line).
		words := strings.Fields(os.Getenv("COMP_WORDS"))
		cword, err := strconv.Atoi(os.Getenv("COMP_CWORD"))
		if err != nil || cword < 1 || cword > len(words) {
			cword = len(words)
		}
		incomplete := ""
		if cword < len(words) {
			incomplete = words[cword]
		}
		var args []string
		if cword > 1 {
			args = words[1:cword]
		}
		for _, cand := range c.Complete(args, incomplete) {
			fmt.Fprintln(cfg.streams.Out(), cand)
		}
		return true, 0
	default:
		trace.Warn("unknown completion mode", "mode", mode)
		return false, 0
	}
}

func completionScript(shell, progName string) string {
	envVar := completionEnvVar(progName)
	switch shell {
	case "bash":
		return fmt.Sprintf(`_%[1]s_completion() {
    local IFS=$'\n'
    COMPREPLY=( $(COMP_WORDS="${COMP_WORDS[*]}" COMP_CWORD=$COMP_CWORD %[2]s=bash_complete %[1]s) )
    return 0
}
complete -o default -F _%[1]s_completion %[1]s
`, progName, envVar)
	case "zsh":
		return fmt.Sprintf(`#compdef %[1]s
_%[1]s_completion() {
    local -a completions
    completions=("${(@f)$(COMP_WORDS="${words[*]}" COMP_CWORD=$((CURRENT-1)) %[2]s=zsh_complete %[1]s)}")
    _describe 'values' completions
}
compdef _%[1]s_completion %[1]s
`, progName, envVar)
	case "fish":
		return fmt.Sprintf(`function _%[1]s_completion
    set -l words (commandline -opc) (commandline -ct)
    COMP_WORDS="$words" COMP_CWORD=(math (count $words) - 1) %[2]s=fish_complete %[1]s
end
complete -c %[1]s -a '(_%[1]s_completion)' -f
`, progName, envVar)
	}
	return ""
}
