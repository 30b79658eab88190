package clack

import (
	"fmt"

	clackio "github.com/dzonerzy/go-clack/io"
	"github.com/dzonerzy/go-clack/internal/trace"
)

// resolveAll runs the resolution pipeline for every declared Param of
// one command level, in two passes: eager Params first, then the rest.
// Within each pass, Params the token parser saw go in first-consumption
// order; unseen Params follow in declaration order. Eager ordering is
// what lets short-circuit actions (--help) run before an unrelated
// missing-required error is raised.
func resolveAll(ctx *Context, out *parseOutcome, resilient bool) error {
	for _, eager := range []bool{true, false} {
		for _, p := range orderedParams(ctx.cmd.params, out.order, eager) {
			if err := resolveOne(ctx, p, out, resilient); err != nil {
				return err
			}
		}
	}
	return nil
}

func orderedParams(declared, consumed []*Param, eager bool) []*Param {
	seen := make(map[*Param]bool, len(consumed))
	var ordered []*Param
	for _, p := range consumed {
		if p.Eager == eager {
			ordered = append(ordered, p)
		}
		seen[p] = true
	}
	for _, p := range declared {
		if !seen[p] && p.Eager == eager {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// resolveOne computes a Param's typed value by trying each source in
// precedence order: command line, environment, default map, static
// default, and finally the prompting seam. In resilient mode the
// pipeline keeps partial state: conversion failures and missing
// requireds are logged instead of raised, and neither prompts nor
// callbacks run.
func resolveOne(ctx *Context, p *Param, out *parseOutcome, resilient bool) error {
	var value any
	source := SourceNone

	if rv, ok := out.values[p.Name]; ok {
		v, err := convertConsumed(ctx, p, rv, resilient)
		if err != nil {
			if !resilient {
				return attachContext(err, ctx, p)
			}
			trace.Debug("resilient resolve swallowed conversion error", "param", p.Name, "err", err)
		} else if v != nil {
			value, source = v, SourceCommandLine
		}
	}

	if source == SourceNone {
		envName, envVal, ok := lookupEnv(ctx, p)
		if ok {
			v, err := convertEnv(p, envVal)
			if err != nil {
				if !resilient {
					return attachContext(err, ctx, p)
				}
				trace.Debug("resilient resolve swallowed env error", "param", p.Name, "err", err)
			} else {
				value, source = v, SourceEnvironment
				trace.Debug("resolved from environment", "param", p.Name, "var", envName)
			}
		}
	}

	if source == SourceNone && ctx.cfg.defaults != nil {
		if raw, ok := ctx.cfg.defaults.Lookup(ctx.Path()[1:], p.Name); ok {
			v, err := convertRaw(p, raw)
			if err != nil {
				if !resilient {
					return attachContext(err, ctx, p)
				}
				trace.Debug("resilient resolve swallowed default-map error", "param", p.Name, "err", err)
			} else {
				value, source = v, SourceDefaultMap
			}
		}
	}

	if source == SourceNone {
		if d := p.defaultValue(); d != nil {
			v, err := convertRaw(p, d)
			if err != nil {
				return attachContext(err, ctx, p)
			}
			value, source = v, SourceDefault
		}
	}

	if value == nil && p.Prompt != "" && !resilient && ctx.cfg.prompter != nil {
		v, err := promptForValue(ctx, p)
		if err != nil {
			return err
		}
		value, source = v, SourcePrompt
	}

	if value == nil && p.Required {
		if resilient {
			trace.Debug("resilient resolve ignored missing required", "param", p.Name)
			return nil
		}
		return missingParameter(ctx, p)
	}

	if value == nil {
		return nil
	}

	if p.Callback != nil && !resilient {
		v, err := p.Callback(ctx, p, value)
		if err != nil {
			return err
		}
		value = v
	}

	ctx.setValue(p.Name, value, source)
	return nil
}

func missingParameter(ctx *Context, p *Param) error {
	kind := "argument"
	if p.IsOption() {
		kind = "option"
	}
	return NewUsageError(UsageMissingParameter,
		fmt.Sprintf("missing %s %q", kind, p.DisplayName())).
		WithContext(ctx).WithParam(p)
}

func attachContext(err error, ctx *Context, p *Param) error {
	if ue, ok := err.(*UsageError); ok {
		if ue.Ctx == nil {
			ue.Ctx = ctx
		}
		if ue.Param == nil {
			ue.Param = p
		}
	}
	return err
}

// convertConsumed turns the parser's raw accumulation into the Param's
// typed value.
func convertConsumed(ctx *Context, p *Param, rv *rawValue, resilient bool) (any, error) {
	if p.Count {
		return rv.count, nil
	}
	if len(rv.occurrences) == 0 {
		return nil, nil
	}
	if p.Multiple {
		values := make([]any, 0, len(rv.occurrences))
		for _, occ := range rv.occurrences {
			v, err := convertOccurrence(ctx, p, occ, resilient)
			if err != nil {
				return nil, err
			}
			if v != nil {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil, nil
		}
		return values, nil
	}
	// Non-repeatable params take the last occurrence.
	return convertOccurrence(ctx, p, rv.occurrences[len(rv.occurrences)-1], resilient)
}

// convertOccurrence converts the tokens of one sighting. A nil
// occurrence is the valueless sentinel: it prompts when the Param is
// promptable, otherwise it binds the configured FlagValue. An explicit
// inline value always wins over the sentinel because the parser only
// emits the sentinel when no value token was available.
func convertOccurrence(ctx *Context, p *Param, occ []string, resilient bool) (any, error) {
	if occ == nil {
		if p.Prompt != "" && ctx.cfg.prompter != nil && !resilient {
			return promptForValue(ctx, p)
		}
		if p.FlagValue == nil {
			return nil, nil
		}
		return convertRaw(p, p.FlagValue)
	}
	if len(occ) == 1 && p.Nargs == 1 {
		return convertScalar(p, occ[0])
	}
	return convertTuple(p, occ)
}

// convertEnv converts an environment value, splitting multi-token
// shapes on whitespace and batching Multiple values into arity-sized
// tuples.
func convertEnv(p *Param, value string) (any, error) {
	tokens := splitEnvValue(p, value)
	if len(tokens) == 0 {
		return nil, nil
	}

	if p.Multiple {
		arity := p.Nargs
		if arity < 1 {
			arity = 1
		}
		if len(tokens)%arity != 0 {
			return nil, badValueEnv(p, value, arity)
		}
		values := make([]any, 0, len(tokens)/arity)
		for i := 0; i < len(tokens); i += arity {
			var v any
			var err error
			if arity == 1 {
				v, err = convertScalar(p, tokens[i])
			} else {
				v, err = convertTuple(p, tokens[i:i+arity])
			}
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}

	if p.Nargs == 1 {
		return convertScalar(p, tokens[0])
	}
	if p.Nargs > 1 && len(tokens) != p.Nargs {
		return nil, badValueEnv(p, value, p.Nargs)
	}
	return convertTuple(p, tokens)
}

func badValueEnv(p *Param, value string, arity int) *UsageError {
	return NewUsageError(UsageBadParameter,
		fmt.Sprintf("invalid value for %s: %q does not split into groups of %d",
			p.DisplayName(), value, arity)).
		WithParam(p)
}

// convertRaw is the idempotent entry point for values that did not come
// from the token stream: static defaults, default-map entries, and
// programmatic Invoke parameters. Strings are parsed; already-typed
// values pass through unchanged.
func convertRaw(p *Param, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if p.Count {
		if n, ok := raw.(int); ok {
			return n, nil
		}
		return convertScalar(&Param{Name: p.Name, Type: TypeInt}, raw)
	}
	if p.Multiple {
		switch v := raw.(type) {
		case []any:
			values := make([]any, len(v))
			for i, el := range v {
				converted, err := convertRawSingle(p, el)
				if err != nil {
					return nil, err
				}
				values[i] = converted
			}
			return values, nil
		case []string:
			if p.Nargs == 1 {
				values := make([]any, len(v))
				for i, el := range v {
					converted, err := convertScalar(p, el)
					if err != nil {
						return nil, err
					}
					values[i] = converted
				}
				return values, nil
			}
		}
		v, err := convertRawSingle(p, raw)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}
	return convertRawSingle(p, raw)
}

func convertRawSingle(p *Param, raw any) (any, error) {
	if p.Nargs == 1 {
		return convertScalar(p, raw)
	}
	if alreadyTuple(raw) {
		if tokens, ok := raw.([]string); ok && p.Type != TypeString && p.Type != TypeChoice {
			return convertTuple(p, tokens)
		}
		return raw, nil
	}
	if v, ok := raw.([]any); ok {
		tokens := make([]string, len(v))
		for i, el := range v {
			tokens[i] = fmt.Sprintf("%v", el)
		}
		return convertTuple(p, tokens)
	}
	return nil, badValue(p, fmt.Sprintf("%v", raw), "has an unexpected shape")
}

// lookupEnv consults the Param's declared environment variables in
// order, then the auto-prefix derived name. Empty values count as
// unset.
func lookupEnv(ctx *Context, p *Param) (name, value string, ok bool) {
	for _, envName := range p.envNames(ctx.autoEnvPrefix) {
		v, found := ctx.cfg.env.lookup(envName)
		if found && v != "" {
			return envName, v, true
		}
	}
	return "", "", false
}

// promptForValue hands control to the configured Prompter, re-asking
// until the entered value converts cleanly. EOF or an interrupted read
// becomes an abort.
func promptForValue(ctx *Context, p *Param) (any, error) {
	var fallback string
	if d := p.defaultValue(); d != nil {
		fallback = fmt.Sprintf("%v", d)
	}
	req := clackio.PromptRequest{
		Message:      p.Prompt,
		Default:      fallback,
		HideInput:    p.HideInput,
		Confirmation: p.ConfirmPrompt,
	}
	for {
		raw, err := ctx.cfg.prompter.Prompt(req)
		if err != nil {
			return nil, Abort(err)
		}
		value, convErr := convertScalar(p, raw)
		if convErr == nil {
			return value, nil
		}
		fmt.Fprintf(ctx.Stderr(), "Error: %v\n", convErr)
	}
}
