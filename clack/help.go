package clack

import (
	"fmt"
	stdio "io"
	"strings"
)

// ParamRecord is the declared metadata a help renderer consumes: the
// canonical spelling string and the help text. Rendering itself
// (wrapping, width, styling) is the collaborator's business.
type ParamRecord struct {
	Spelling string
	Help     string
	Required bool
}

// Record returns the Param's help record. Options join their spellings
// and append the value placeholder; arguments render their metavar.
func (p *Param) Record() ParamRecord {
	if p.IsArgument() {
		return ParamRecord{Spelling: argMetavar(p), Help: p.Help, Required: p.Required}
	}
	spelling := strings.Join(p.Opts, ", ")
	if len(p.SecondaryOpts) > 0 {
		spelling += " / " + strings.Join(p.SecondaryOpts, ", ")
	}
	if p.takesValue() {
		spelling += " " + valueMetavar(p)
	}
	return ParamRecord{Spelling: spelling, Help: p.Help, Required: p.Required}
}

func valueMetavar(p *Param) string {
	if p.Metavar != "" {
		return p.Metavar
	}
	if p.Type == TypeChoice {
		return "[" + strings.Join(p.Choices, "|") + "]"
	}
	return strings.ToUpper(strings.ReplaceAll(p.Name, "-", "_"))
}

func argMetavar(p *Param) string {
	metavar := p.Metavar
	if metavar == "" {
		metavar = strings.ToUpper(strings.ReplaceAll(p.Name, "-", "_"))
	}
	switch {
	case p.Nargs == -1:
		return "[" + metavar + "]..."
	case p.Nargs > 1:
		return strings.TrimSuffix(strings.Repeat(metavar+" ", p.Nargs), " ")
	case !p.Required:
		return "[" + metavar + "]"
	default:
		return metavar
	}
}

// ParamRecords returns the visible parameter records in declaration
// order.
func (c *Command) ParamRecords() []ParamRecord {
	records := make([]ParamRecord, 0, len(c.params))
	for _, p := range c.params {
		if p.Hidden {
			continue
		}
		records = append(records, p.Record())
	}
	return records
}

// SubcommandHelp returns the visible subcommand names with their short
// descriptions, in registration order.
func (c *Command) SubcommandHelp() []ParamRecord {
	records := make([]ParamRecord, 0, len(c.subOrder))
	for _, name := range c.subOrder {
		sub := c.subcommands[name]
		if sub.hidden {
			continue
		}
		records = append(records, ParamRecord{Spelling: name, Help: sub.short})
	}
	return records
}

// HelpPrinter renders help for one command level. The default prints
// plain unwrapped text; embedding applications replace it for styled or
// wrapped output.
type HelpPrinter interface {
	PrintHelp(w stdio.Writer, ctx *Context) error
}

// PlainHelpPrinter writes unstyled, unwrapped help text.
type PlainHelpPrinter struct{}

// PrintHelp renders the usage line, descriptions, parameter table, and
// subcommand table without any width calculation.
func (PlainHelpPrinter) PrintHelp(w stdio.Writer, ctx *Context) error {
	cmd := ctx.Command()
	fmt.Fprintln(w, usageLine(ctx.cfg.progName, ctx))
	if cmd.short != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.short)
	}
	if cmd.long != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.long)
	}

	var args, opts []ParamRecord
	for _, p := range cmd.params {
		if p.Hidden {
			continue
		}
		if p.IsArgument() {
			args = append(args, p.Record())
		} else {
			opts = append(opts, p.Record())
		}
	}
	if len(args) > 0 {
		fmt.Fprintln(w, "\nArguments:")
		for _, rec := range args {
			printRecord(w, rec)
		}
	}
	if len(opts) > 0 {
		fmt.Fprintln(w, "\nOptions:")
		for _, rec := range opts {
			printRecord(w, rec)
		}
	}
	if subs := cmd.SubcommandHelp(); len(subs) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		for _, rec := range subs {
			printRecord(w, rec)
		}
	}
	return nil
}

func printRecord(w stdio.Writer, rec ParamRecord) {
	help := rec.Help
	if rec.Required {
		help = strings.TrimSpace(help + " [required]")
	}
	if help == "" {
		fmt.Fprintf(w, "  %s\n", rec.Spelling)
		return
	}
	fmt.Fprintf(w, "  %s  %s\n", rec.Spelling, help)
}

// helpParam is the built-in eager --help option. Its callback prints
// help for the current level and short-circuits the invocation, so a
// help request is never blocked by unrelated missing parameters.
func helpParam() *Param {
	return &Param{
		Kind:    KindOption,
		Name:    "help",
		Type:    TypeBool,
		Opts:    []string{"--help"},
		Nargs:   1,
		IsFlag:  true,
		Eager:   true,
		Default: false,
		Help:    "Show this message and exit.",
		Callback: func(ctx *Context, _ *Param, value any) (any, error) {
			if on, _ := value.(bool); !on {
				return value, nil
			}
			if err := ctx.cfg.help.PrintHelp(ctx.Stdout(), ctx); err != nil {
				return nil, err
			}
			return value, Exit(0)
		},
	}
}

// versionParam is the built-in eager --version option added at the root
// when a version is set.
func versionParam(version string) *Param {
	return &Param{
		Kind:    KindOption,
		Name:    "version",
		Type:    TypeBool,
		Opts:    []string{"--version"},
		Nargs:   1,
		IsFlag:  true,
		Eager:   true,
		Default: false,
		Help:    "Show the version and exit.",
		Callback: func(ctx *Context, _ *Param, value any) (any, error) {
			if on, _ := value.(bool); !on {
				return value, nil
			}
			fmt.Fprintf(ctx.Stdout(), "%s, version %s\n", ctx.cfg.progName, version)
			return value, Exit(0)
		},
	}
}
