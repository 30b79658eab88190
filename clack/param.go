package clack

import (
	"fmt"
	"strings"
	"time"
)

// ParamKind separates the two Param variants. The set is closed: every
// stage of the pipeline switches over these two cases.
type ParamKind int

const (
	// KindOption is a named parameter introduced by a prefixed spelling.
	KindOption ParamKind = iota
	// KindArgument is a positional parameter with no prefixed spelling.
	KindArgument
)

// ParamCallback runs after type conversion. It may replace the value,
// or short-circuit the whole invocation by returning an ExitSignal.
type ParamCallback func(ctx *Context, p *Param, value any) (any, error)

// CompleteFunc produces dynamic completion candidates for a Param.
type CompleteFunc func(ctx *Context, incomplete string) []string

// Param is one declared parameter of a Command, either an Option or an
// Argument. Commands own their Params; the token parser consumes raw
// tokens into them and the resolution pipeline turns those into typed
// values.
type Param struct {
	Kind ParamKind
	Name string // destination name in the resolved value map
	Type ValueType

	// Opts are the accepted spellings, prefix included ("--name", "-n").
	// SecondaryOpts are the negating spellings of boolean options
	// ("--no-color"); a match through one of them stores false.
	Opts          []string
	SecondaryOpts []string

	// Nargs is the number of raw tokens one occurrence consumes.
	// Fixed N >= 1, or -1 on an Argument meaning "all remaining".
	Nargs    int
	Multiple bool

	Required    bool
	Default     any
	DefaultFunc func() any
	EnvVars     []string
	Eager       bool
	Choices     []string

	Callback     ParamCallback
	CompleteFunc CompleteFunc

	// Option-only settings.
	IsFlag    bool // boolean presence toggle, never consumes a value
	Count     bool // occurrences are counted instead of valued
	FlagValue any  // implicit value for a valueless occurrence
	Hidden    bool
	Prompt        string // non-empty enables the prompting seam
	HideInput     bool
	ConfirmPrompt bool // ask twice and require the entries to match
	Help          string
	Metavar       string
}

// IsOption reports whether the Param is spelled with a prefix.
func (p *Param) IsOption() bool { return p.Kind == KindOption }

// IsArgument reports whether the Param is positional.
func (p *Param) IsArgument() bool { return p.Kind == KindArgument }

// takesValue reports whether an occurrence consumes tokens from the
// stream. Flags and counters never do.
func (p *Param) takesValue() bool {
	return !p.IsFlag && !p.Count
}

// DisplayName returns the canonical user-facing spelling, used in error
// messages: the first long option spelling when one exists, otherwise
// the first spelling, otherwise the destination name.
func (p *Param) DisplayName() string {
	if p.IsArgument() || len(p.Opts) == 0 {
		return p.Name
	}
	for _, opt := range p.Opts {
		if len(opt) > 2 && strings.HasPrefix(opt, "--") {
			return opt
		}
	}
	return p.Opts[0]
}

// envNames returns the environment variables consulted for this Param:
// the declared list in order, then the auto-prefix derived name when a
// prefix is active. Only options take the derived fallback.
func (p *Param) envNames(autoPrefix string) []string {
	names := make([]string, 0, len(p.EnvVars)+1)
	names = append(names, p.EnvVars...)
	if p.IsOption() && autoPrefix != "" {
		derived := autoPrefix + "_" + strings.ToUpper(strings.ReplaceAll(p.Name, "-", "_"))
		names = append(names, derived)
	}
	return names
}

// defaultValue produces the static default, invoking the producer when
// one is configured.
func (p *Param) defaultValue() any {
	if p.DefaultFunc != nil {
		return p.DefaultFunc()
	}
	return p.Default
}

// validate enforces declaration invariants at build time.
func (p *Param) validate() error {
	if p.Name == "" {
		return fmt.Errorf("param has no name")
	}
	if p.Nargs == 0 || p.Nargs < -1 {
		return fmt.Errorf("param %q: nargs must be >= 1 or -1", p.Name)
	}
	if p.Nargs == -1 && p.IsOption() {
		return fmt.Errorf("option %q: nargs=-1 is only valid on arguments", p.Name)
	}
	if p.IsOption() && len(p.Opts) == 0 {
		return fmt.Errorf("option %q declares no spellings", p.Name)
	}
	if p.IsArgument() && (len(p.Opts) > 0 || len(p.SecondaryOpts) > 0) {
		return fmt.Errorf("argument %q must not declare spellings", p.Name)
	}
	if (p.IsFlag || p.Count) && p.IsArgument() {
		return fmt.Errorf("argument %q cannot be a flag or counter", p.Name)
	}
	if p.IsFlag && p.Count {
		return fmt.Errorf("option %q cannot be both flag and counter", p.Name)
	}
	if p.Type == TypeChoice && len(p.Choices) == 0 {
		return fmt.Errorf("choice param %q declares no choices", p.Name)
	}
	if len(p.SecondaryOpts) > 0 && !p.IsFlag {
		return fmt.Errorf("option %q: negating spellings require a flag", p.Name)
	}
	return nil
}

// formatTokens renders a resolved value back into the raw tokens that
// would reproduce it, used by the round-trip serializer.
func formatTokens(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []bool:
		out := make([]string, len(v))
		for i, b := range v {
			out[i] = fmt.Sprintf("%v", b)
		}
		return out
	case []int:
		out := make([]string, len(v))
		for i, n := range v {
			out[i] = fmt.Sprintf("%d", n)
		}
		return out
	case []float64:
		out := make([]string, len(v))
		for i, f := range v {
			out[i] = fmt.Sprintf("%v", f)
		}
		return out
	case []time.Duration:
		out := make([]string, len(v))
		for i, d := range v {
			out[i] = d.String()
		}
		return out
	case time.Duration:
		return []string{v.String()}
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}
