package clack

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueType is the closed set of value kinds a Param can produce.
type ValueType string

const (
	TypeString   ValueType = "string"
	TypeBool     ValueType = "bool"
	TypeInt      ValueType = "int"
	TypeFloat    ValueType = "float64"
	TypeDuration ValueType = "duration"
	TypeChoice   ValueType = "choice"
)

// convertScalar converts one raw value to the Param's value type.
// Conversion is idempotent: a value that already has the target type is
// returned unchanged, so defaults declared as typed literals and
// replayed resolved values pass through untouched.
func convertScalar(p *Param, raw any) (any, error) {
	switch p.Type {
	case TypeString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", raw), nil

	case TypeBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		s, err := rawString(p, raw)
		if err != nil {
			return nil, err
		}
		return parseBool(p, s)

	case TypeInt:
		if n, ok := raw.(int); ok {
			return n, nil
		}
		s, err := rawString(p, raw)
		if err != nil {
			return nil, err
		}
		n, perr := strconv.Atoi(strings.TrimSpace(s))
		if perr != nil {
			return nil, badValue(p, s, "is not a valid integer")
		}
		return n, nil

	case TypeFloat:
		if f, ok := raw.(float64); ok {
			return f, nil
		}
		s, err := rawString(p, raw)
		if err != nil {
			return nil, err
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return nil, badValue(p, s, "is not a valid float")
		}
		return f, nil

	case TypeDuration:
		if d, ok := raw.(time.Duration); ok {
			return d, nil
		}
		s, err := rawString(p, raw)
		if err != nil {
			return nil, err
		}
		d, perr := time.ParseDuration(strings.TrimSpace(s))
		if perr != nil {
			return nil, badValue(p, s, "is not a valid duration")
		}
		return d, nil

	case TypeChoice:
		s, err := rawString(p, raw)
		if err != nil {
			return nil, err
		}
		for _, choice := range p.Choices {
			if s == choice {
				return s, nil
			}
		}
		return nil, badValue(p, s,
			fmt.Sprintf("is not one of %s", strings.Join(p.Choices, ", ")))

	default:
		return nil, fmt.Errorf("unknown value type %q", p.Type)
	}
}

// convertTuple converts the tokens of one occurrence with Nargs != 1
// into a typed slice.
func convertTuple(p *Param, tokens []string) (any, error) {
	switch p.Type {
	case TypeString, TypeChoice:
		out := make([]string, len(tokens))
		for i, tok := range tokens {
			v, err := convertScalar(p, tok)
			if err != nil {
				return nil, err
			}
			out[i] = v.(string)
		}
		return out, nil
	case TypeBool:
		out := make([]bool, len(tokens))
		for i, tok := range tokens {
			v, err := convertScalar(p, tok)
			if err != nil {
				return nil, err
			}
			out[i] = v.(bool)
		}
		return out, nil
	case TypeInt:
		out := make([]int, len(tokens))
		for i, tok := range tokens {
			v, err := convertScalar(p, tok)
			if err != nil {
				return nil, err
			}
			out[i] = v.(int)
		}
		return out, nil
	case TypeFloat:
		out := make([]float64, len(tokens))
		for i, tok := range tokens {
			v, err := convertScalar(p, tok)
			if err != nil {
				return nil, err
			}
			out[i] = v.(float64)
		}
		return out, nil
	case TypeDuration:
		out := make([]time.Duration, len(tokens))
		for i, tok := range tokens {
			v, err := convertScalar(p, tok)
			if err != nil {
				return nil, err
			}
			out[i] = v.(time.Duration)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown value type %q", p.Type)
	}
}

// alreadyTuple reports whether a value is one of the typed slices
// convertTuple produces, making tuple conversion idempotent too.
func alreadyTuple(raw any) bool {
	switch raw.(type) {
	case []string, []bool, []int, []float64, []time.Duration:
		return true
	}
	return false
}

// parseBool accepts the usual command-line truth spellings.
func parseBool(p *Param, s string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return nil, badValue(p, s, "is not a valid boolean")
}

func rawString(p *Param, raw any) (string, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return "", badValue(p, fmt.Sprintf("%v", raw), "has an unexpected shape")
}

func badValue(p *Param, value, reason string) *UsageError {
	return NewUsageError(UsageBadParameter,
		fmt.Sprintf("invalid value for %s: %q %s", p.DisplayName(), value, reason)).
		WithParam(p)
}

// splitEnvValue breaks an environment value into the tokens one
// occurrence would have consumed from the command line. Values for
// multi-token params split on whitespace; single-token params keep the
// value verbatim, spaces included.
func splitEnvValue(p *Param, value string) []string {
	if p.Nargs == 1 && !p.Multiple {
		return []string{value}
	}
	return strings.Fields(value)
}
