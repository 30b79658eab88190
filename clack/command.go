package clack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dzonerzy/go-clack/internal/fuzzy"
	clackio "github.com/dzonerzy/go-clack/io"
)

// CommandAction is the callback invoked with a fully resolved Context.
type CommandAction func(*Context) error

// ResultAction receives the collected child results of a chain-mode
// dispatcher after every child has run.
type ResultAction func(*Context, []any) error

// Command is one node of the command tree: a leaf with a callback, or a
// dispatcher routing leftover tokens to subcommands.
type Command struct {
	name   string
	short  string
	long   string
	hidden bool

	params       []*Param
	action       CommandAction
	resultAction ResultAction

	subcommands map[string]*Command
	subOrder    []string

	chain                bool
	invokeWithoutCommand bool
	allowExtraArgs       bool
	ignoreUnknown        bool
	interspersed         *bool // nil derives from dispatcher-ness
	prefixes             string

	// Root-only settings.
	version       string
	autoEnvPrefix string
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Short returns the one-line description.
func (c *Command) Short() string { return c.short }

// Params returns the declared parameters in order.
func (c *Command) Params() []*Param { return c.params }

// Hidden reports whether the command is filtered from help and
// completion.
func (c *Command) Hidden() bool { return c.hidden }

// Subcommands returns the visible children in registration order.
func (c *Command) Subcommands() []*Command {
	out := make([]*Command, 0, len(c.subOrder))
	for _, name := range c.subOrder {
		out = append(out, c.subcommands[name])
	}
	return out
}

// Subcommand looks up a child by name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	sub, ok := c.subcommands[name]
	return sub, ok
}

func (c *Command) isDispatcher() bool { return len(c.subcommands) > 0 }

// interspersedArgs reports whether positionals may be interleaved with
// options. Leaves default to yes; dispatchers default to no, so that
// "cmd --flag sub --flag2" passes --flag2 through to sub.
func (c *Command) interspersedArgs() bool {
	if c.interspersed != nil {
		return *c.interspersed
	}
	return !c.isDispatcher()
}

// runConfig carries the injected collaborators of one invocation.
// Everything that used to be process-global state (streams, prompting,
// environment) is an explicit dependency here.
type runConfig struct {
	streams   *clackio.Streams
	prompter  clackio.Prompter
	defaults  DefaultMap
	env       *envChain
	exit      *ExitCodeManager
	help      HelpPrinter
	obj       any
	resilient bool
	progName  string
}

// RunOption configures one invocation.
type RunOption func(*runConfig)

// WithStreams redirects the invocation's input and output streams.
func WithStreams(s *clackio.Streams) RunOption {
	return func(cfg *runConfig) { cfg.streams = s; cfg.prompter = nil }
}

// WithPrompter injects the prompting collaborator.
func WithPrompter(p clackio.Prompter) RunOption {
	return func(cfg *runConfig) { cfg.prompter = p }
}

// WithDefaults installs the path-keyed default map.
func WithDefaults(m DefaultMap) RunOption {
	return func(cfg *runConfig) { cfg.defaults = m }
}

// WithEnv overlays explicit environment values ahead of dotenv files
// and the process environment. Test harnesses use it for isolation.
func WithEnv(values map[string]string) RunOption {
	return func(cfg *runConfig) { cfg.env.overrides = values }
}

// WithDotenv loads the given dotenv files into the environment chain,
// below explicit overrides and above the process environment.
func WithDotenv(files ...string) RunOption {
	return func(cfg *runConfig) { cfg.env.loadDotenv(files...) }
}

// WithExitCodes replaces the exit-code manager.
func WithExitCodes(m *ExitCodeManager) RunOption {
	return func(cfg *runConfig) { cfg.exit = m }
}

// WithHelpPrinter replaces the help rendering collaborator.
func WithHelpPrinter(h HelpPrinter) RunOption {
	return func(cfg *runConfig) { cfg.help = h }
}

// WithObj seeds the root Context's user payload.
func WithObj(obj any) RunOption {
	return func(cfg *runConfig) { cfg.obj = obj }
}

func newRunConfig(c *Command, opts []RunOption) *runConfig {
	cfg := &runConfig{
		env:      &envChain{},
		exit:     NewExitCodeManager(),
		help:     &PlainHelpPrinter{},
		progName: c.name,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.streams == nil {
		cfg.streams = clackio.New()
	}
	if cfg.prompter == nil {
		cfg.prompter = clackio.NewTerminalPrompter(cfg.streams)
	}
	return cfg
}

// Run executes the command tree in embedded mode: parse args, resolve
// values, invoke callbacks, dispatch. Errors come back unmodified for
// programmatic inspection; nothing is printed and the process keeps
// running.
func (c *Command) Run(goCtx context.Context, args []string, opts ...RunOption) error {
	cfg := newRunConfig(c, opts)
	_, err := c.execute(goCtx, nil, cfg, args)
	return err
}

// Main is the standalone driver: it runs against os.Args, prints
// user-facing error messages, and terminates the process with the
// mapped exit code. Shell completion requests (<PROG>_COMPLETE) are
// served before anything is parsed.
func (c *Command) Main(opts ...RunOption) {
	os.Exit(c.MainWithCode(context.Background(), os.Args[1:], opts...))
}

// MainWithCode is Main without the final os.Exit, returning the code
// instead.
func (c *Command) MainWithCode(goCtx context.Context, args []string, opts ...RunOption) int {
	code, _ := c.RunWithCode(goCtx, args, opts...)
	return code
}

// RunWithCode runs like the standalone driver, printing user-facing
// error messages to the error stream, but returns the mapped exit code
// and the raw error instead of terminating. Test harnesses build on it.
func (c *Command) RunWithCode(goCtx context.Context, args []string, opts ...RunOption) (int, error) {
	cfg := newRunConfig(c, opts)
	if cfg.progName == "" && len(os.Args) > 0 {
		cfg.progName = filepath.Base(os.Args[0])
	}

	if done, code := c.maybeShellComplete(cfg); done {
		return code, nil
	}

	_, err := c.execute(goCtx, nil, cfg, args)
	code := cfg.exit.Resolve(err)
	if err == nil {
		return code, nil
	}

	var sig *ExitSignal
	var abort *AbortError
	var usage *UsageError
	switch {
	case errors.As(err, &sig):
		// Explicit termination carries no message of its own.
	case errors.As(err, &abort):
		fmt.Fprintln(cfg.streams.Err(), "Aborted!")
	case errors.As(err, &usage):
		if usage.Ctx != nil {
			fmt.Fprintln(cfg.streams.Err(), usageLine(cfg.progName, usage.Ctx))
		}
		fmt.Fprintf(cfg.streams.Err(), "Error: %s\n", usage.Error())
	default:
		fmt.Fprintf(cfg.streams.Err(), "Error: %s\n", err.Error())
	}
	return code, err
}

// usageLine renders the one-line usage synopsis for a Context.
func usageLine(progName string, ctx *Context) string {
	path := ctx.Path()
	if len(path) > 0 {
		path[0] = progName
	}
	parts := []string{"Usage:"}
	parts = append(parts, path...)
	parts = append(parts, "[OPTIONS]")
	for _, p := range ctx.cmd.params {
		if p.IsArgument() {
			parts = append(parts, argMetavar(p))
		}
	}
	if ctx.cmd.isDispatcher() {
		parts = append(parts, "COMMAND [ARGS]...")
	}
	return strings.Join(parts, " ")
}

// execute drives one command level through its states: PARSING (token
// parser plus resolution), INVOKING (callback), then for dispatchers
// DISPATCH (route leftovers to children). The level's Context closes on
// the way out whatever happened, child levels before their parents.
func (c *Command) execute(goCtx context.Context, parent *Context, cfg *runConfig, args []string) (result any, err error) {
	ctx := newContext(parent, c, cfg, goCtx)
	defer func() {
		if closeErr := ctx.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// PARSING
	tp := newTokenParser(c, cfg.resilient)
	out, err := tp.parse(args)
	if err != nil {
		return nil, attachContextErr(err, ctx)
	}
	if err := resolveAll(ctx, out, cfg.resilient); err != nil {
		return nil, attachContextErr(err, ctx)
	}
	ctx.leftover = out.leftover

	// A dispatcher with nothing to dispatch is a usage error unless it
	// explicitly tolerates running bare. The check runs before the
	// callback so the callback never sees a doomed invocation.
	if c.isDispatcher() && len(ctx.leftover) == 0 && !c.invokeWithoutCommand {
		return nil, NewUsageError(UsageMissingCommand, "missing command").WithContext(ctx)
	}

	// INVOKING. The dispatcher's own callback runs once, before any
	// child, in chain mode too.
	if c.action != nil {
		if err := c.action(ctx); err != nil {
			return nil, err
		}
	}

	if !c.isDispatcher() {
		if len(ctx.leftover) > 0 && !c.allowExtraArgs {
			return nil, NewUsageError(UsageExtraArguments,
				fmt.Sprintf("got unexpected extra arguments (%s)",
					strings.Join(ctx.leftover, " "))).WithContext(ctx)
		}
		return ctx.result, nil
	}

	// DISPATCH
	if len(ctx.leftover) == 0 {
		return ctx.result, nil
	}
	if !c.chain {
		child, cerr := c.lookupChild(ctx, ctx.leftover[0])
		if cerr != nil {
			return nil, cerr
		}
		if _, err := child.execute(goCtx, ctx, cfg, ctx.leftover[1:]); err != nil {
			return nil, err
		}
		return ctx.result, nil
	}

	// Chain mode: slice the leftover stream at each recognized
	// subcommand name, invoking every matched child in order. Each
	// child Context closes right after its own invocation.
	var results []any
	rest := ctx.leftover
	for len(rest) > 0 {
		child, cerr := c.lookupChild(ctx, rest[0])
		if cerr != nil {
			return nil, cerr
		}
		end := len(rest)
		for i := 1; i < len(rest); i++ {
			if _, ok := c.subcommands[rest[i]]; ok {
				end = i
				break
			}
		}
		childResult, err := child.execute(goCtx, ctx, cfg, rest[1:end])
		if err != nil {
			return nil, err
		}
		results = append(results, childResult)
		rest = rest[end:]
	}
	if c.resultAction != nil {
		if err := c.resultAction(ctx, results); err != nil {
			return nil, err
		}
	}
	return ctx.result, nil
}

func (c *Command) lookupChild(ctx *Context, name string) (*Command, error) {
	if child, ok := c.subcommands[name]; ok {
		return child, nil
	}
	err := NewUsageError(UsageNoSuchCommand,
		fmt.Sprintf("no such command %q", name)).
		WithContext(ctx).WithSpelling(name)
	if hint, ok := fuzzy.SoleSuggestion(name, c.subOrder, 2); ok {
		err = err.WithSuggestion(hint)
	}
	return nil, err
}

func attachContextErr(err error, ctx *Context) error {
	var usage *UsageError
	if errors.As(err, &usage) && usage.Ctx == nil {
		usage.Ctx = ctx
	}
	return err
}

// CommandBuilder assembles a Command from an explicit list of parameter
// descriptors and a plain function reference.
type CommandBuilder struct {
	cmd    *Command
	noHelp bool
	errs   []error
}

// NewCommand starts building a command with the given name and
// one-line description.
func NewCommand(name, short string) *CommandBuilder {
	return &CommandBuilder{
		cmd: &Command{
			name:        name,
			short:       short,
			prefixes:    "-",
			subcommands: make(map[string]*Command),
		},
	}
}

// Long sets the extended description shown in full help.
func (b *CommandBuilder) Long(text string) *CommandBuilder {
	b.cmd.long = text
	return b
}

// Action sets the command callback.
func (b *CommandBuilder) Action(fn CommandAction) *CommandBuilder {
	b.cmd.action = fn
	return b
}

// Result sets the chain-mode result aggregation callback.
func (b *CommandBuilder) Result(fn ResultAction) *CommandBuilder {
	b.cmd.resultAction = fn
	return b
}

// Chain makes the dispatcher run a sequence of subcommands from one
// argument stream instead of exactly one.
func (b *CommandBuilder) Chain() *CommandBuilder {
	b.cmd.chain = true
	return b
}

// InvokeWithoutCommand lets a dispatcher run its own callback with zero
// leftover tokens instead of failing with a missing-command error.
func (b *CommandBuilder) InvokeWithoutCommand() *CommandBuilder {
	b.cmd.invokeWithoutCommand = true
	return b
}

// Hidden filters the command from help and completion.
func (b *CommandBuilder) Hidden() *CommandBuilder {
	b.cmd.hidden = true
	return b
}

// IgnoreUnknown re-emits unknown options as positionals instead of
// failing, for pass-through CLIs.
func (b *CommandBuilder) IgnoreUnknown() *CommandBuilder {
	b.cmd.ignoreUnknown = true
	return b
}

// AllowExtraArgs tolerates leftover tokens on a leaf command.
func (b *CommandBuilder) AllowExtraArgs() *CommandBuilder {
	b.cmd.allowExtraArgs = true
	return b
}

// Interspersed overrides whether positionals may interleave with
// options at this level.
func (b *CommandBuilder) Interspersed(allowed bool) *CommandBuilder {
	b.cmd.interspersed = &allowed
	return b
}

// Prefixes replaces the option prefix character set (default "-").
func (b *CommandBuilder) Prefixes(chars string) *CommandBuilder {
	b.cmd.prefixes = chars
	return b
}

// Version sets the version string and enables the eager --version
// option at this (root) level.
func (b *CommandBuilder) Version(version string) *CommandBuilder {
	b.cmd.version = version
	return b
}

// AutoEnv enables auto-derived environment variables below this root,
// accumulating PREFIX_SUBCOMMAND down the tree.
func (b *CommandBuilder) AutoEnv(prefix string) *CommandBuilder {
	b.cmd.autoEnvPrefix = strings.ToUpper(strings.ReplaceAll(prefix, "-", "_"))
	return b
}

// NoHelp suppresses the built-in --help option.
func (b *CommandBuilder) NoHelp() *CommandBuilder {
	b.noHelp = true
	return b
}

// Subcommand registers a built child command.
func (b *CommandBuilder) Subcommand(child *Command) *CommandBuilder {
	if _, dup := b.cmd.subcommands[child.name]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate subcommand %q", child.name))
		return b
	}
	b.cmd.subcommands[child.name] = child
	b.cmd.subOrder = append(b.cmd.subOrder, child.name)
	return b
}

// Param registers a fully specified parameter descriptor directly.
func (b *CommandBuilder) Param(p *Param) *CommandBuilder {
	b.cmd.params = append(b.cmd.params, p)
	return b
}

// Build validates the declaration invariants and returns the Command.
func (b *CommandBuilder) Build() (*Command, error) {
	if !b.noHelp {
		b.cmd.params = append(b.cmd.params, helpParam())
	}
	if b.cmd.version != "" {
		b.cmd.params = append(b.cmd.params, versionParam(b.cmd.version))
	}

	errs := b.errs
	wildcards := 0
	names := make(map[string]bool)
	spellings := make(map[string]bool)
	for _, p := range b.cmd.params {
		if err := p.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if names[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate param name %q", p.Name))
		}
		names[p.Name] = true
		for _, opt := range append(append([]string{}, p.Opts...), p.SecondaryOpts...) {
			if spellings[opt] {
				errs = append(errs, fmt.Errorf("duplicate spelling %q", opt))
			}
			spellings[opt] = true
		}
		if p.IsArgument() && p.Nargs == -1 {
			wildcards++
			if b.cmd.isDispatcher() {
				errs = append(errs, fmt.Errorf(
					"command %q: dispatchers cannot declare a wildcard argument", b.cmd.name))
			}
		}
	}
	if wildcards > 1 {
		errs = append(errs, fmt.Errorf(
			"command %q: at most one argument may declare nargs=-1", b.cmd.name))
	}
	if b.cmd.chain && !b.cmd.isDispatcher() {
		errs = append(errs, fmt.Errorf("command %q: chain mode requires subcommands", b.cmd.name))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b.cmd, nil
}

// MustBuild is Build for static command trees assembled at program
// start; declaration mistakes panic.
func (b *CommandBuilder) MustBuild() *Command {
	cmd, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cmd
}

// Option builders. Each constructor derives the primary long spelling
// from the destination name; further spellings attach fluently.

// OptionBuilder configures one Option with type safety over its default
// and flag value.
type OptionBuilder[T any] struct {
	param  *Param
	parent *CommandBuilder
}

func (b *CommandBuilder) newOption(name, help string, typ ValueType) *Param {
	p := &Param{
		Kind:  KindOption,
		Name:  name,
		Type:  typ,
		Opts:  []string{"--" + name},
		Nargs: 1,
		Help:  help,
	}
	b.cmd.params = append(b.cmd.params, p)
	return p
}

// StringOption adds a string option spelled --name.
func (b *CommandBuilder) StringOption(name, help string) *OptionBuilder[string] {
	return &OptionBuilder[string]{param: b.newOption(name, help, TypeString), parent: b}
}

// IntOption adds an integer option.
func (b *CommandBuilder) IntOption(name, help string) *OptionBuilder[int] {
	return &OptionBuilder[int]{param: b.newOption(name, help, TypeInt), parent: b}
}

// FloatOption adds a float64 option.
func (b *CommandBuilder) FloatOption(name, help string) *OptionBuilder[float64] {
	return &OptionBuilder[float64]{param: b.newOption(name, help, TypeFloat), parent: b}
}

// DurationOption adds a time.Duration option.
func (b *CommandBuilder) DurationOption(name, help string) *OptionBuilder[time.Duration] {
	return &OptionBuilder[time.Duration]{param: b.newOption(name, help, TypeDuration), parent: b}
}

// ChoiceOption adds an option restricted to a fixed candidate set. The
// choices also feed completion.
func (b *CommandBuilder) ChoiceOption(name, help string, choices ...string) *OptionBuilder[string] {
	p := b.newOption(name, help, TypeChoice)
	p.Choices = choices
	return &OptionBuilder[string]{param: p, parent: b}
}

// BoolFlag adds a boolean presence flag; it never consumes a value.
func (b *CommandBuilder) BoolFlag(name, help string) *OptionBuilder[bool] {
	p := b.newOption(name, help, TypeBool)
	p.IsFlag = true
	p.Default = false
	return &OptionBuilder[bool]{param: p, parent: b}
}

// CountOption adds a counting option (-v, -vv, -vvv).
func (b *CommandBuilder) CountOption(name, help string) *OptionBuilder[int] {
	p := b.newOption(name, help, TypeInt)
	p.Count = true
	p.Default = 0
	return &OptionBuilder[int]{param: p, parent: b}
}

// Spelling replaces the derived spellings with an explicit set.
func (o *OptionBuilder[T]) Spelling(opts ...string) *OptionBuilder[T] {
	o.param.Opts = opts
	return o
}

// Short adds a one-character spelling (-c).
func (o *OptionBuilder[T]) Short(c rune) *OptionBuilder[T] {
	o.param.Opts = append(o.param.Opts, "-"+string(c))
	return o
}

// Default sets the static default.
func (o *OptionBuilder[T]) Default(value T) *OptionBuilder[T] {
	o.param.Default = value
	return o
}

// DefaultFunc sets a zero-argument default producer.
func (o *OptionBuilder[T]) DefaultFunc(fn func() any) *OptionBuilder[T] {
	o.param.DefaultFunc = fn
	return o
}

// Required marks the option required.
func (o *OptionBuilder[T]) Required() *OptionBuilder[T] {
	o.param.Required = true
	return o
}

// Multiple lets the option repeat; each occurrence contributes one
// arity-sized value to the sequence.
func (o *OptionBuilder[T]) Multiple() *OptionBuilder[T] {
	o.param.Multiple = true
	return o
}

// Nargs sets a fixed arity greater than one; the occurrence consumes
// exactly that many tokens as a tuple.
func (o *OptionBuilder[T]) Nargs(n int) *OptionBuilder[T] {
	o.param.Nargs = n
	return o
}

// FromEnv binds the option to environment variables, checked in order.
func (o *OptionBuilder[T]) FromEnv(vars ...string) *OptionBuilder[T] {
	o.param.EnvVars = vars
	return o
}

// Eager resolves this option before all non-eager params.
func (o *OptionBuilder[T]) Eager() *OptionBuilder[T] {
	o.param.Eager = true
	return o
}

// Hidden filters the option from help and completion.
func (o *OptionBuilder[T]) Hidden() *OptionBuilder[T] {
	o.param.Hidden = true
	return o
}

// FlagValue configures the implicit value bound when the option appears
// without a value token.
func (o *OptionBuilder[T]) FlagValue(value T) *OptionBuilder[T] {
	o.param.FlagValue = value
	return o
}

// Negatable adds negating spellings; with none given, --no-<name>.
func (o *OptionBuilder[T]) Negatable(spellings ...string) *OptionBuilder[T] {
	if len(spellings) == 0 {
		spellings = []string{"--no-" + o.param.Name}
	}
	o.param.SecondaryOpts = append(o.param.SecondaryOpts, spellings...)
	return o
}

// Prompt enables the prompting seam with the given prompt text.
func (o *OptionBuilder[T]) Prompt(text string) *OptionBuilder[T] {
	o.param.Prompt = text
	return o
}

// HideInput suppresses echo while prompting (passwords).
func (o *OptionBuilder[T]) HideInput() *OptionBuilder[T] {
	o.param.HideInput = true
	return o
}

// ConfirmPrompt makes the prompt ask for the value twice and retry
// until both entries match. Typically combined with HideInput.
func (o *OptionBuilder[T]) ConfirmPrompt() *OptionBuilder[T] {
	o.param.ConfirmPrompt = true
	return o
}

// Callback runs after conversion; it may replace the value or
// short-circuit via ExitSignal.
func (o *OptionBuilder[T]) Callback(fn ParamCallback) *OptionBuilder[T] {
	o.param.Callback = fn
	return o
}

// Complete sets the dynamic completion callback.
func (o *OptionBuilder[T]) Complete(fn CompleteFunc) *OptionBuilder[T] {
	o.param.CompleteFunc = fn
	return o
}

// Metavar sets the value placeholder shown in help.
func (o *OptionBuilder[T]) Metavar(metavar string) *OptionBuilder[T] {
	o.param.Metavar = metavar
	return o
}

// Done returns to the command builder.
func (o *OptionBuilder[T]) Done() *CommandBuilder {
	return o.parent
}

// Argument builders.

// ArgumentBuilder configures one positional Argument.
type ArgumentBuilder[T any] struct {
	param  *Param
	parent *CommandBuilder
}

func (b *CommandBuilder) newArgument(name string, typ ValueType) *Param {
	p := &Param{
		Kind:  KindArgument,
		Name:  name,
		Type:  typ,
		Nargs: 1,
	}
	b.cmd.params = append(b.cmd.params, p)
	return p
}

// StringArgument adds a positional string argument.
func (b *CommandBuilder) StringArgument(name string) *ArgumentBuilder[string] {
	return &ArgumentBuilder[string]{param: b.newArgument(name, TypeString), parent: b}
}

// IntArgument adds a positional integer argument.
func (b *CommandBuilder) IntArgument(name string) *ArgumentBuilder[int] {
	return &ArgumentBuilder[int]{param: b.newArgument(name, TypeInt), parent: b}
}

// FloatArgument adds a positional float64 argument.
func (b *CommandBuilder) FloatArgument(name string) *ArgumentBuilder[float64] {
	return &ArgumentBuilder[float64]{param: b.newArgument(name, TypeFloat), parent: b}
}

// Nargs sets the argument's arity: a fixed N > 1 consumes a tuple, -1
// makes it the wildcard absorbing all remaining tokens.
func (a *ArgumentBuilder[T]) Nargs(n int) *ArgumentBuilder[T] {
	a.param.Nargs = n
	return a
}

// Required marks the argument required.
func (a *ArgumentBuilder[T]) Required() *ArgumentBuilder[T] {
	a.param.Required = true
	return a
}

// Default sets the static default.
func (a *ArgumentBuilder[T]) Default(value T) *ArgumentBuilder[T] {
	a.param.Default = value
	return a
}

// FromEnv binds the argument to environment variables.
func (a *ArgumentBuilder[T]) FromEnv(vars ...string) *ArgumentBuilder[T] {
	a.param.EnvVars = vars
	return a
}

// Choices restricts the argument to a candidate set and switches its
// type to choice.
func (a *ArgumentBuilder[T]) Choices(choices ...string) *ArgumentBuilder[T] {
	a.param.Type = TypeChoice
	a.param.Choices = choices
	return a
}

// Callback runs after conversion.
func (a *ArgumentBuilder[T]) Callback(fn ParamCallback) *ArgumentBuilder[T] {
	a.param.Callback = fn
	return a
}

// Complete sets the dynamic completion callback.
func (a *ArgumentBuilder[T]) Complete(fn CompleteFunc) *ArgumentBuilder[T] {
	a.param.CompleteFunc = fn
	return a
}

// Done returns to the command builder.
func (a *ArgumentBuilder[T]) Done() *CommandBuilder {
	return a.parent
}
