package clack

import (
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, cmd *Command, args []string) *parseOutcome {
	t.Helper()
	tp := newTokenParser(cmd, false)
	out, err := tp.parse(args)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return out
}

func occurrences(t *testing.T, out *parseOutcome, name string) [][]string {
	t.Helper()
	rv, ok := out.values[name]
	if !ok {
		t.Fatalf("expected %q to be consumed", name)
	}
	return rv.occurrences
}

// TestLongOptionForms checks the separate-token and inline value forms
// of a long option.
func TestLongOptionForms(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		StringOption("name", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--name", "alice"})
	if got := occurrences(t, out, "name"); !reflect.DeepEqual(got, [][]string{{"alice"}}) {
		t.Errorf("separate form: got %v", got)
	}

	out = mustParse(t, cmd, []string{"--name=bob"})
	if got := occurrences(t, out, "name"); !reflect.DeepEqual(got, [][]string{{"bob"}}) {
		t.Errorf("inline form: got %v", got)
	}

	// Only the first "=" separates spelling from value.
	out = mustParse(t, cmd, []string{"--name=a=b"})
	if got := occurrences(t, out, "name"); !reflect.DeepEqual(got, [][]string{{"a=b"}}) {
		t.Errorf("inline with embedded '=': got %v", got)
	}
}

// TestShortOptionCluster checks that "-vcf value" behaves exactly like
// "-v -c -f value": flags accumulate and the first value-taking option
// ends the cluster.
func TestShortOptionCluster(t *testing.T) {
	build := func() *Command {
		return NewCommand("test", "").NoHelp().
			CountOption("verbose", "").Short('v').Done().
			BoolFlag("color", "").Short('c').Done().
			StringOption("file", "").Short('f').Done().
			MustBuild()
	}

	clustered := mustParse(t, build(), []string{"-vcf", "value"})
	separate := mustParse(t, build(), []string{"-v", "-c", "-f", "value"})

	for _, out := range []*parseOutcome{clustered, separate} {
		if rv := out.values["verbose"]; rv == nil || rv.count != 1 {
			t.Errorf("expected verbose count 1, got %+v", rv)
		}
		if got := occurrences(t, out, "color"); !reflect.DeepEqual(got, [][]string{{"true"}}) {
			t.Errorf("color: got %v", got)
		}
		if got := occurrences(t, out, "file"); !reflect.DeepEqual(got, [][]string{{"value"}}) {
			t.Errorf("file: got %v", got)
		}
	}
}

// TestShortOptionInlineValue checks that the cluster remainder becomes
// the value of the first value-taking short option.
func TestShortOptionInlineValue(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		StringOption("file", "").Short('f').Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"-fvalue"})
	if got := occurrences(t, out, "file"); !reflect.DeepEqual(got, [][]string{{"value"}}) {
		t.Errorf("got %v", got)
	}
}

// TestCountRepetition checks counting across repeated and clustered
// occurrences.
func TestCountRepetition(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		CountOption("verbose", "").Short('v').Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"-vvv", "-v", "--verbose"})
	if rv := out.values["verbose"]; rv == nil || rv.count != 5 {
		t.Errorf("expected count 5, got %+v", rv)
	}
}

// TestTerminator checks that the first bare "--" is consumed exactly
// once and everything after it stays positional, including later "--"
// tokens and option-shaped tokens.
func TestTerminator(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("flag", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"a", "--", "--flag", "--", "b"})
	want := []string{"a", "--flag", "--", "b"}
	if !reflect.DeepEqual(out.leftover, want) {
		t.Errorf("leftover: got %v, want %v", out.leftover, want)
	}
	if _, consumed := out.values["flag"]; consumed {
		t.Error("--flag after -- must stay positional")
	}
}

// TestAbbreviationUnique checks that an unambiguous prefix of a long
// spelling matches it.
func TestAbbreviationUnique(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("verbose", "").Done().
		StringOption("name", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--verb"})
	if got := occurrences(t, out, "verbose"); !reflect.DeepEqual(got, [][]string{{"true"}}) {
		t.Errorf("got %v", got)
	}

	// Abbreviation works with an inline value too.
	out = mustParse(t, cmd, []string{"--na=x"})
	if got := occurrences(t, out, "name"); !reflect.DeepEqual(got, [][]string{{"x"}}) {
		t.Errorf("got %v", got)
	}
}

// TestAbbreviationAmbiguous checks that a prefix matching two long
// spellings fails with the sorted candidate set.
func TestAbbreviationAmbiguous(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("verbose", "").Done().
		BoolFlag("version", "").Done().
		MustBuild()

	tp := newTokenParser(cmd, false)
	_, err := tp.parse([]string{"--ver"})
	var usage *UsageError
	if !errors.As(err, &usage) || usage.Type != UsageAmbiguousOption {
		t.Fatalf("expected ambiguous-option error, got %v", err)
	}
	want := []string{"--verbose", "--version"}
	if !reflect.DeepEqual(usage.Possibilities, want) {
		t.Errorf("possibilities: got %v, want %v", usage.Possibilities, want)
	}
}

// TestExactMatchBeatsAbbreviation checks that a spelling that exactly
// matches one option never counts as an abbreviation of another.
func TestExactMatchBeatsAbbreviation(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("ver", "").Done().
		BoolFlag("verbose", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--ver"})
	if _, ok := out.values["ver"]; !ok {
		t.Error("exact spelling --ver must match the ver flag")
	}
	if _, ok := out.values["verbose"]; ok {
		t.Error("--ver must not touch verbose")
	}
}

// TestNoSuchOptionSuggestion checks the typo suggestion on unknown
// options: offered only when exactly one spelling is close.
func TestNoSuchOptionSuggestion(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		StringOption("path", "").Done().
		MustBuild()

	tp := newTokenParser(cmd, false)
	_, err := tp.parse([]string{"--paht"})
	var usage *UsageError
	if !errors.As(err, &usage) || usage.Type != UsageNoSuchOption {
		t.Fatalf("expected no-such-option error, got %v", err)
	}
	if usage.Suggestion != "--path" {
		t.Errorf("suggestion: got %q, want %q", usage.Suggestion, "--path")
	}
}

// TestIgnoreUnknown checks that pass-through commands re-emit unknown
// options as positionals instead of failing.
func TestIgnoreUnknown(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().IgnoreUnknown().
		BoolFlag("known", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--known", "--mystery", "arg"})
	if _, ok := out.values["known"]; !ok {
		t.Error("known option must still be consumed")
	}
	want := []string{"--mystery", "arg"}
	if !reflect.DeepEqual(out.leftover, want) {
		t.Errorf("leftover: got %v, want %v", out.leftover, want)
	}
}

// TestNegativeNumberValue checks that a plain option consumes the next
// token as its value even when it is option-shaped.
func TestNegativeNumberValue(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		IntOption("offset", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--offset", "-5"})
	if got := occurrences(t, out, "offset"); !reflect.DeepEqual(got, [][]string{{"-5"}}) {
		t.Errorf("got %v", got)
	}
}

// TestFlagValueSentinel checks that an option with a configured
// implicit value records the valueless sentinel instead of stealing an
// option-shaped token, while an inline value still wins.
func TestFlagValueSentinel(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		StringOption("level", "").FlagValue("debug").Done().
		BoolFlag("other", "").Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--level", "--other"})
	if got := occurrences(t, out, "level"); len(got) != 1 || got[0] != nil {
		t.Errorf("expected one sentinel occurrence, got %v", got)
	}
	if _, ok := out.values["other"]; !ok {
		t.Error("--other must be consumed as its own option")
	}

	out = mustParse(t, cmd, []string{"--level=info"})
	if got := occurrences(t, out, "level"); !reflect.DeepEqual(got, [][]string{{"info"}}) {
		t.Errorf("inline value must win over sentinel, got %v", got)
	}

	// At end of line the sentinel applies too.
	out = mustParse(t, cmd, []string{"--level"})
	if got := occurrences(t, out, "level"); len(got) != 1 || got[0] != nil {
		t.Errorf("expected sentinel at end of line, got %v", got)
	}
}

// TestOptionArityUnderflow checks both underflow messages.
func TestOptionArityUnderflow(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		StringOption("name", "").Done().
		StringOption("pair", "").Nargs(2).Done().
		MustBuild()

	tp := newTokenParser(cmd, false)
	_, err := tp.parse([]string{"--name"})
	var usage *UsageError
	if !errors.As(err, &usage) || usage.Type != UsageBadOption {
		t.Fatalf("expected bad-option error, got %v", err)
	}
	if usage.Error() != "option --name requires an argument" {
		t.Errorf("message: got %q", usage.Error())
	}

	tp = newTokenParser(cmd, false)
	_, err = tp.parse([]string{"--pair", "only-one"})
	if !errors.As(err, &usage) || usage.Error() != "option --pair requires 2 arguments" {
		t.Errorf("tuple underflow: got %v", err)
	}
}

// TestNegatableFlag checks that negating spellings store false.
func TestNegatableFlag(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("color", "").Negatable().Done().
		MustBuild()

	out := mustParse(t, cmd, []string{"--no-color"})
	if got := occurrences(t, out, "color"); !reflect.DeepEqual(got, [][]string{{"false"}}) {
		t.Errorf("got %v", got)
	}

	// Last occurrence wins at resolution; the parser records both.
	out = mustParse(t, cmd, []string{"--color", "--no-color"})
	want := [][]string{{"true"}, {"false"}}
	if got := occurrences(t, out, "color"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestFlagRejectsInlineValue checks that flags refuse "=value".
func TestFlagRejectsInlineValue(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("color", "").Done().
		MustBuild()

	tp := newTokenParser(cmd, false)
	_, err := tp.parse([]string{"--color=yes"})
	var usage *UsageError
	if !errors.As(err, &usage) || usage.Type != UsageBadOption {
		t.Fatalf("expected bad-option error, got %v", err)
	}
}

// TestNonInterspersedDispatcher checks that a dispatcher stops option
// scanning at the first positional, so child options pass through.
func TestNonInterspersedDispatcher(t *testing.T) {
	child := NewCommand("sub", "").NoHelp().
		BoolFlag("flag", "").Done().
		MustBuild()
	cmd := NewCommand("test", "").NoHelp().
		BoolFlag("flag", "").Done().
		Subcommand(child).
		MustBuild()

	out := mustParse(t, cmd, []string{"--flag", "sub", "--flag"})
	if got := occurrences(t, out, "flag"); !reflect.DeepEqual(got, [][]string{{"true"}}) {
		t.Errorf("parent flag: got %v", got)
	}
	want := []string{"sub", "--flag"}
	if !reflect.DeepEqual(out.leftover, want) {
		t.Errorf("leftover: got %v, want %v", out.leftover, want)
	}
}

// TestResilientCollectsErrors checks that resilient mode swallows
// parse errors and keeps the partial outcome.
func TestResilientCollectsErrors(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		StringOption("name", "").Done().
		MustBuild()

	tp := newTokenParser(cmd, true)
	out, err := tp.parse([]string{"--bogus", "--name", "alice", "--name"})
	if err != nil {
		t.Fatalf("resilient parse must not fail: %v", err)
	}
	if len(out.errs) != 2 {
		t.Errorf("expected 2 collected errors, got %d", len(out.errs))
	}
	if got := occurrences(t, out, "name"); len(got) == 0 || !reflect.DeepEqual(got[0], []string{"alice"}) {
		t.Errorf("partial state lost: got %v", got)
	}
}

// TestUnpackArgsDistribution exercises the wildcard distribution
// directly: fixed slots before the wildcard claim from the front, fixed
// slots after it from the back, the wildcard absorbs the middle.
func TestUnpackArgsDistribution(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e", "f"}

	claims, rest, err := unpackArgs(tokens, []int{1, 2, 1, -1})
	if err != nil {
		t.Fatalf("unpackArgs failed: %v", err)
	}
	want := [][]string{{"a"}, {"b", "c"}, {"d"}, {"e", "f"}}
	if !reflect.DeepEqual(claims, want) {
		t.Errorf("trailing wildcard: got %v, want %v", claims, want)
	}
	if len(rest) != 0 {
		t.Errorf("rest: got %v", rest)
	}

	claims, _, err = unpackArgs([]string{"a", "b", "c"}, []int{-1, 1})
	if err != nil {
		t.Fatalf("unpackArgs failed: %v", err)
	}
	want = [][]string{{"a", "b"}, {"c"}}
	if !reflect.DeepEqual(claims, want) {
		t.Errorf("leading wildcard: got %v, want %v", claims, want)
	}

	claims, _, err = unpackArgs([]string{"a", "b", "c", "d"}, []int{1, -1, 2})
	if err != nil {
		t.Fatalf("unpackArgs failed: %v", err)
	}
	want = [][]string{{"a"}, {"b"}, {"c", "d"}}
	if !reflect.DeepEqual(claims, want) {
		t.Errorf("middle wildcard: got %v, want %v", claims, want)
	}

	// An exhausted wildcard comes back empty, not nil.
	claims, _, err = unpackArgs([]string{"a"}, []int{1, -1})
	if err != nil {
		t.Fatalf("unpackArgs failed: %v", err)
	}
	if claims[0] == nil || len(claims[1]) != 0 {
		t.Errorf("exhausted wildcard: got %v", claims)
	}

	// Missing fixed slots come back nil so resolution can try other
	// sources.
	claims, _, err = unpackArgs(nil, []int{1, 1})
	if err != nil {
		t.Fatalf("unpackArgs failed: %v", err)
	}
	if claims[0] != nil || claims[1] != nil {
		t.Errorf("missing slots must be nil, got %v", claims)
	}

	_, _, err = unpackArgs(nil, []int{-1, -1})
	if err == nil {
		t.Error("two wildcards must fail")
	}
}

// TestPartialTupleArgument checks the fixed-arity argument underflow
// message.
func TestPartialTupleArgument(t *testing.T) {
	cmd := NewCommand("test", "").NoHelp().
		Param(&Param{Kind: KindArgument, Name: "pair", Type: TypeString, Nargs: 2}).
		MustBuild()

	tp := newTokenParser(cmd, false)
	_, err := tp.parse([]string{"only-one"})
	var usage *UsageError
	if !errors.As(err, &usage) || usage.Type != UsageBadArgument {
		t.Fatalf("expected bad-argument error, got %v", err)
	}
	if usage.Error() != "argument pair takes 2 values" {
		t.Errorf("message: got %q", usage.Error())
	}
}
