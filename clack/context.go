package clack

import (
	"context"
	stdio "io"
	"strings"
	"time"

	"github.com/dzonerzy/go-clack/internal/trace"
)

// ValueSource records which layer of the resolution pipeline produced a
// parameter's value.
type ValueSource int

const (
	SourceNone ValueSource = iota
	SourceCommandLine
	SourceEnvironment
	SourceDefaultMap
	SourceDefault
	SourcePrompt
)

func (s ValueSource) String() string {
	switch s {
	case SourceCommandLine:
		return "commandline"
	case SourceEnvironment:
		return "environment"
	case SourceDefaultMap:
		return "defaultmap"
	case SourceDefault:
		return "default"
	case SourcePrompt:
		return "prompt"
	default:
		return "none"
	}
}

// Context is the mutable state of one command level during an
// invocation. Contexts form a rooted tree mirroring the command path;
// each dispatcher level links its child to itself.
type Context struct {
	goCtx  context.Context
	cmd    *Command
	parent *Context
	cfg    *runConfig

	infoName      string
	autoEnvPrefix string

	values   map[string]any
	sources  map[string]ValueSource
	leftover []string

	// obj is the user payload threaded down the chain; meta is one map
	// shared by the whole tree.
	obj  any
	meta map[string]any

	closers []func() error
	closed  bool

	result any
}

func newContext(parent *Context, cmd *Command, cfg *runConfig, goCtx context.Context) *Context {
	c := &Context{
		goCtx:    goCtx,
		cmd:      cmd,
		parent:   parent,
		cfg:      cfg,
		infoName: cmd.name,
		values:   make(map[string]any),
		sources:  make(map[string]ValueSource),
	}
	if parent == nil {
		c.meta = make(map[string]any)
		c.autoEnvPrefix = cmd.autoEnvPrefix
		c.obj = cfg.obj
		return c
	}
	c.meta = parent.meta
	c.obj = parent.obj
	if parent.autoEnvPrefix != "" {
		c.autoEnvPrefix = parent.autoEnvPrefix + "_" +
			strings.ToUpper(strings.ReplaceAll(cmd.name, "-", "_"))
	}
	return c
}

// Command returns the Command this level belongs to.
func (c *Context) Command() *Command { return c.cmd }

// Parent returns the invoking level's Context, nil at the root.
func (c *Context) Parent() *Context { return c.parent }

// Root returns the top of the Context chain.
func (c *Context) Root() *Context {
	cur := c
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Path returns the command names from the root down to this level.
func (c *Context) Path() []string {
	var rev []string
	for cur := c; cur != nil; cur = cur.parent {
		rev = append(rev, cur.infoName)
	}
	path := make([]string, len(rev))
	for i, name := range rev {
		path[len(rev)-1-i] = name
	}
	return path
}

// Context returns the caller's context.Context for use inside callbacks.
// The engine itself defines no cancellation semantics.
func (c *Context) Context() context.Context { return c.goCtx }

// Args returns the leftover tokens this level did not consume.
func (c *Context) Args() []string { return c.leftover }

// Meta returns the metadata map shared across the whole Context tree.
func (c *Context) Meta() map[string]any { return c.meta }

// Obj returns the user payload for this level, inherited from the
// parent unless overridden with SetObj.
func (c *Context) Obj() any { return c.obj }

// SetObj overrides the user payload at this level and below.
func (c *Context) SetObj(obj any) { c.obj = obj }

// SetResult records this level's result; chain dispatchers collect it.
func (c *Context) SetResult(result any) { c.result = result }

// Stream accessors.

func (c *Context) Stdout() stdio.Writer { return c.cfg.streams.Out() }
func (c *Context) Stderr() stdio.Writer { return c.cfg.streams.Err() }
func (c *Context) Stdin() stdio.Reader  { return c.cfg.streams.In() }

// setValue stores one resolved parameter value and its source.
func (c *Context) setValue(name string, value any, source ValueSource) {
	c.values[name] = value
	c.sources[name] = source
}

// Value returns the resolved value for a destination name.
func (c *Context) Value(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Source reports which resolution layer produced a value.
func (c *Context) Source(name string) ValueSource {
	return c.sources[name]
}

// Typed value accessors. The boolean reports both presence and type
// agreement.

func (c *Context) String(name string) (string, bool) {
	v, ok := c.values[name].(string)
	return v, ok
}

func (c *Context) Bool(name string) (bool, bool) {
	v, ok := c.values[name].(bool)
	return v, ok
}

func (c *Context) Int(name string) (int, bool) {
	v, ok := c.values[name].(int)
	return v, ok
}

func (c *Context) Float(name string) (float64, bool) {
	v, ok := c.values[name].(float64)
	return v, ok
}

func (c *Context) Duration(name string) (time.Duration, bool) {
	v, ok := c.values[name].(time.Duration)
	return v, ok
}

func (c *Context) Strings(name string) ([]string, bool) {
	v, ok := c.values[name].([]string)
	return v, ok
}

// Occurrences returns the per-occurrence values of a Multiple param.
func (c *Context) Occurrences(name string) ([]any, bool) {
	v, ok := c.values[name].([]any)
	return v, ok
}

// MustString returns the value or the given fallback.
func (c *Context) MustString(name, fallback string) string {
	if v, ok := c.String(name); ok {
		return v
	}
	return fallback
}

// MustBool returns the value or the given fallback.
func (c *Context) MustBool(name string, fallback bool) bool {
	if v, ok := c.Bool(name); ok {
		return v
	}
	return fallback
}

// MustInt returns the value or the given fallback.
func (c *Context) MustInt(name string, fallback int) int {
	if v, ok := c.Int(name); ok {
		return v
	}
	return fallback
}

// OnClose registers a cleanup action. Actions run in reverse
// registration order when the Context closes.
func (c *Context) OnClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

// Close runs every registered cleanup action exactly once, in reverse
// order, whether the invocation completed or failed. The first failure
// propagates; later failures still run but are only logged. A panicking
// action does not stop the remaining actions; the panic is re-raised
// once they have all run.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var first error
	var panicked any
	for i := len(c.closers) - 1; i >= 0; i-- {
		fn := c.closers[i]
		func() {
			defer func() {
				if r := recover(); r != nil {
					if panicked == nil {
						panicked = r
					} else {
						trace.Error("secondary cleanup panic dropped", "panic", r)
					}
				}
			}()
			if err := fn(); err != nil {
				if first == nil {
					first = err
				} else {
					trace.Warn("secondary cleanup failure dropped", "err", err)
				}
			}
		}()
	}
	if panicked != nil {
		panic(panicked)
	}
	return first
}

// FindObject walks the parent chain for a user payload of type T.
func FindObject[T any](c *Context) (T, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.obj.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// EnsureObject returns the nearest payload of type T, creating one at
// this level when the chain has none.
func EnsureObject[T any](c *Context, factory func() T) T {
	if v, ok := FindObject[T](c); ok {
		return v
	}
	v := factory()
	c.obj = v
	return v
}

// Invoke calls another command's callback with the given parameter
// values, filling every undeclared name from that command's defaults.
// The child Context closes before Invoke returns.
func (c *Context) Invoke(cmd *Command, params map[string]any) error {
	child := newContext(c, cmd, c.cfg, c.goCtx)
	err := child.fillAndCall(cmd, params)
	if closeErr := child.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Forward re-invokes another command reusing this level's resolved
// values wherever the destination names match.
func (c *Context) Forward(cmd *Command) error {
	params := make(map[string]any)
	for _, p := range cmd.params {
		if v, ok := c.values[p.Name]; ok {
			params[p.Name] = v
		}
	}
	return c.Invoke(cmd, params)
}

func (c *Context) fillAndCall(cmd *Command, params map[string]any) error {
	for _, p := range cmd.params {
		if v, ok := params[p.Name]; ok {
			c.setValue(p.Name, v, SourceCommandLine)
			continue
		}
		if d := p.defaultValue(); d != nil {
			converted, err := convertRaw(p, d)
			if err != nil {
				return err
			}
			c.setValue(p.Name, converted, SourceDefault)
		}
	}
	if cmd.action == nil {
		return nil
	}
	return cmd.action(c)
}

// CommandLine re-serializes this level's resolved values into canonical
// "--name value" form. Re-parsing the result yields the same values.
func (c *Context) CommandLine() []string {
	var argv []string
	var positional []string
	for _, p := range c.cmd.params {
		v, ok := c.values[p.Name]
		if !ok || v == nil {
			continue
		}
		if p.IsArgument() {
			positional = append(positional, formatTokens(v)...)
			continue
		}
		spelling := p.DisplayName()
		switch {
		case p.Count:
			for i, n := 0, v.(int); i < n; i++ {
				argv = append(argv, spelling)
			}
		case p.IsFlag:
			if on, _ := v.(bool); on {
				argv = append(argv, spelling)
			} else if len(p.SecondaryOpts) > 0 {
				argv = append(argv, p.SecondaryOpts[0])
			}
		case p.Multiple:
			for _, occ := range v.([]any) {
				argv = append(argv, spelling)
				argv = append(argv, formatTokens(occ)...)
			}
		default:
			argv = append(argv, spelling)
			argv = append(argv, formatTokens(v)...)
		}
	}
	return append(argv, positional...)
}
