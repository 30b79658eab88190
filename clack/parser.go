package clack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dzonerzy/go-clack/internal/fuzzy"
	"github.com/dzonerzy/go-clack/internal/intern"
	"github.com/dzonerzy/go-clack/internal/pool"
	"github.com/dzonerzy/go-clack/internal/trace"
)

// parseState drives the token scanner. Option scanning stops once a
// bare "--" is seen or, with interspersing off, at the first positional.
type parseState int

const (
	stateOptions parseState = iota
	statePositionalOnly
)

// optionRef binds one registered spelling to its Param. Secondary
// (negating) spellings carry negated=true so a match stores false.
type optionRef struct {
	param    *Param
	spelling string
	negated  bool
}

// rawValue accumulates what the scanner consumed for one destination.
// Each occurrence holds the tokens of one sighting; a nil occurrence is
// the "present but valueless" sentinel resolved later against the
// Param's FlagValue or prompt.
type rawValue struct {
	occurrences [][]string
	count       int
}

// parseOutcome is the token parser's product for one command level.
type parseOutcome struct {
	values   map[string]*rawValue
	order    []*Param // first-consumption order
	leftover []string
	errs     []error // populated only in resilient mode
}

func (o *parseOutcome) record(p *Param) *rawValue {
	rv, ok := o.values[p.Name]
	if !ok {
		rv = &rawValue{}
		o.values[p.Name] = rv
		o.order = append(o.order, p)
	}
	return rv
}

// tokenParser scans the raw token sequence of one command level against
// that level's declared Params.
type tokenParser struct {
	cmd          *Command
	prefixes     string // set of prefix characters
	interspersed bool
	ignoreUnknown bool

	// resilient mode swallows errors and keeps partial state; the
	// completion walker replays lines that are wrong mid-edit.
	resilient bool

	long  map[string]*optionRef
	short map[string]*optionRef
	args  []*Param
}

func newTokenParser(cmd *Command, resilient bool) *tokenParser {
	tp := &tokenParser{
		cmd:           cmd,
		prefixes:      cmd.prefixes,
		interspersed:  cmd.interspersedArgs(),
		ignoreUnknown: cmd.ignoreUnknown,
		resilient:     resilient,
		long:          make(map[string]*optionRef),
		short:         make(map[string]*optionRef),
	}
	for _, p := range cmd.params {
		if p.IsArgument() {
			tp.args = append(tp.args, p)
			continue
		}
		for _, opt := range p.Opts {
			tp.addSpelling(p, opt, false)
		}
		for _, opt := range p.SecondaryOpts {
			tp.addSpelling(p, opt, true)
		}
	}
	return tp
}

// addSpelling registers one spelling. A spelling of exactly one prefix
// character plus one more character is a short option; everything else
// is long.
func (tp *tokenParser) addSpelling(p *Param, opt string, negated bool) {
	ref := &optionRef{param: p, spelling: opt, negated: negated}
	if len(opt) == 2 && tp.isPrefix(opt[0]) {
		tp.short[intern.Intern(opt)] = ref
		return
	}
	tp.long[intern.Intern(opt)] = ref
}

func (tp *tokenParser) isPrefix(c byte) bool {
	return strings.IndexByte(tp.prefixes, c) >= 0
}

// splitOpt inspects the leading characters of a token. It returns the
// prefix run (at most two characters, per the classic two-dash shape)
// and the remainder. A token with no registered prefix character, or
// nothing after the prefix, is positional.
func (tp *tokenParser) splitOpt(token string) (prefix, rest string) {
	if len(token) < 2 || !tp.isPrefix(token[0]) {
		return "", token
	}
	if tp.isPrefix(token[1]) {
		return token[:2], token[2:]
	}
	return token[:1], token[1:]
}

// fail reports an error according to mode: raised immediately when
// strict, collected and logged when resilient.
func (tp *tokenParser) fail(out *parseOutcome, err error) error {
	if !tp.resilient {
		return err
	}
	trace.Debug("resilient parse swallowed error", "err", err)
	out.errs = append(out.errs, err)
	return nil
}

// parse runs the scanner over args and then distributes the positional
// residue across the declared Arguments.
func (tp *tokenParser) parse(args []string) (*parseOutcome, error) {
	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)
	scratch.Queue = append(scratch.Queue, args...)

	out := &parseOutcome{values: make(map[string]*rawValue)}
	state := stateOptions

	for len(scratch.Queue) > 0 {
		token := scratch.Queue[0]
		scratch.Queue = scratch.Queue[1:]

		if state == statePositionalOnly {
			scratch.Leftover = append(scratch.Leftover, token)
			continue
		}

		// A bare "--" (two identical prefix characters) ends option
		// scanning and is consumed exactly once, unless it is itself a
		// declared spelling. Later literal "--" tokens stay positional.
		if len(token) == 2 && tp.isPrefix(token[0]) && token[0] == token[1] {
			if _, declared := tp.long[token]; !declared {
				state = statePositionalOnly
				continue
			}
		}

		prefix, rest := tp.splitOpt(token)
		if prefix == "" || rest == "" {
			scratch.Leftover = append(scratch.Leftover, token)
			if !tp.interspersed {
				state = statePositionalOnly
			}
			continue
		}

		if err := tp.parseOptToken(token, prefix, scratch, out); err != nil {
			return nil, err
		}
	}

	leftover := append([]string(nil), scratch.Leftover...)
	return out, tp.distribute(leftover, out)
}

// parseOptToken matches one option-shaped token: exact long spelling
// first, then unambiguous abbreviation, then short-option clustering.
func (tp *tokenParser) parseOptToken(token, prefix string, scratch *pool.Scratch, out *parseOutcome) error {
	spelling, inline, hasInline := token, "", false
	if eq := strings.IndexByte(token, '='); eq >= 0 {
		spelling, inline, hasInline = token[:eq], token[eq+1:], true
	}

	if ref, ok := tp.long[spelling]; ok {
		return tp.matchLong(ref, spelling, inline, hasInline, scratch, out)
	}

	// Unambiguous-prefix abbreviation against declared long spellings.
	// Short spellings never participate.
	matches := tp.abbreviationMatches(spelling)
	switch {
	case len(matches) == 1:
		return tp.matchLong(tp.long[matches[0]], spelling, inline, hasInline, scratch, out)
	case len(matches) > 1:
		sort.Strings(matches)
		return tp.fail(out, NewUsageError(UsageAmbiguousOption,
			fmt.Sprintf("option %s is ambiguous", spelling)).
			WithSpelling(spelling).
			WithPossibilities(matches))
	}

	if len(prefix) == 1 {
		return tp.parseShortCluster(token, prefix, scratch, out)
	}
	return tp.unknownOption(token, spelling, scratch, out)
}

// abbreviationMatches returns every declared long spelling the typed
// spelling is a strict prefix of.
func (tp *tokenParser) abbreviationMatches(spelling string) []string {
	var matches []string
	for opt := range tp.long {
		if len(spelling) < len(opt) && strings.HasPrefix(opt, spelling) {
			matches = append(matches, opt)
		}
	}
	return matches
}

func (tp *tokenParser) unknownOption(token, spelling string, scratch *pool.Scratch, out *parseOutcome) error {
	if tp.ignoreUnknown {
		// Pass-through commands re-emit unknown options as positionals.
		scratch.Leftover = append(scratch.Leftover, token)
		return nil
	}
	err := NewUsageError(UsageNoSuchOption,
		fmt.Sprintf("no such option: %s", spelling)).
		WithSpelling(spelling)
	if hint, ok := fuzzy.SoleSuggestion(spelling, tp.allSpellings(), 2); ok {
		err = err.WithSuggestion(hint)
	}
	return tp.fail(out, err)
}

func (tp *tokenParser) allSpellings() []string {
	all := make([]string, 0, len(tp.long)+len(tp.short))
	for opt := range tp.long {
		all = append(all, opt)
	}
	for opt := range tp.short {
		all = append(all, opt)
	}
	sort.Strings(all)
	return all
}

// matchLong consumes the value(s) of a matched long option.
func (tp *tokenParser) matchLong(ref *optionRef, spelling, inline string, hasInline bool, scratch *pool.Scratch, out *parseOutcome) error {
	p := ref.param
	rv := out.record(p)

	if !p.takesValue() {
		if hasInline {
			return tp.fail(out, NewUsageError(UsageBadOption,
				fmt.Sprintf("option %s does not take a value", ref.spelling)).
				WithParam(p).WithSpelling(spelling))
		}
		tp.storeToggle(p, rv, ref.negated)
		return nil
	}

	var tokens []string
	if hasInline {
		tokens = append(tokens, inline)
	}
	return tp.consumeValue(p, ref.spelling, tokens, rv, scratch, out)
}

// parseShortCluster resolves each character of a single-prefix token
// independently. The first value-taking option ends the cluster; the
// remainder of the token, if any, becomes its inline value.
func (tp *tokenParser) parseShortCluster(token, prefix string, scratch *pool.Scratch, out *parseOutcome) error {
	rest := token[1:]
	for i := 0; i < len(rest); i++ {
		spelling := intern.Intern(prefix + string(rest[i]))
		ref, ok := tp.short[spelling]
		if !ok {
			return tp.unknownOption(prefix+rest[i:], spelling, scratch, out)
		}
		p := ref.param
		rv := out.record(p)

		if !p.takesValue() {
			tp.storeToggle(p, rv, ref.negated)
			continue
		}

		var tokens []string
		if i+1 < len(rest) {
			tokens = append(tokens, rest[i+1:])
		}
		return tp.consumeValue(p, spelling, tokens, rv, scratch, out)
	}
	return nil
}

// storeToggle records a valueless occurrence for a flag or counter.
func (tp *tokenParser) storeToggle(p *Param, rv *rawValue, negated bool) {
	if p.Count {
		rv.count++
		return
	}
	if negated {
		rv.occurrences = append(rv.occurrences, []string{"false"})
		return
	}
	rv.occurrences = append(rv.occurrences, []string{"true"})
}

// consumeValue gathers the Nargs tokens of one occurrence. Tokens may
// already hold an inline value; the rest come from the queue. An option
// with a configured FlagValue takes the valueless sentinel instead of
// erroring when no plain token is available.
func (tp *tokenParser) consumeValue(p *Param, spelling string, tokens []string, rv *rawValue, scratch *pool.Scratch, out *parseOutcome) error {
	for len(tokens) < p.Nargs {
		if len(scratch.Queue) == 0 {
			break
		}
		// Optional-value options never steal an option-shaped token;
		// plain options consume the next token whatever it looks like,
		// so negative numbers remain usable as values.
		if p.FlagValue != nil && tp.looksLikeOption(scratch.Queue[0]) {
			break
		}
		tokens = append(tokens, scratch.Queue[0])
		scratch.Queue = scratch.Queue[1:]
	}

	if len(tokens) < p.Nargs {
		if len(tokens) == 0 && p.FlagValue != nil {
			rv.occurrences = append(rv.occurrences, nil)
			return nil
		}
		if p.Nargs == 1 {
			return tp.fail(out, NewUsageError(UsageBadOption,
				fmt.Sprintf("option %s requires an argument", spelling)).
				WithParam(p).WithSpelling(spelling))
		}
		return tp.fail(out, NewUsageError(UsageBadOption,
			fmt.Sprintf("option %s requires %d arguments", spelling, p.Nargs)).
			WithParam(p).WithSpelling(spelling))
	}

	rv.occurrences = append(rv.occurrences, tokens)
	return nil
}

// looksLikeOption reports whether a queued token would itself be
// scanned as an option, in which case it is not a value candidate.
func (tp *tokenParser) looksLikeOption(token string) bool {
	if token == "--" {
		return true
	}
	prefix, rest := tp.splitOpt(token)
	return prefix != "" && rest != ""
}

// distribute hands the positional residue to the declared Arguments and
// stores each claimed tuple as that Argument's occurrence.
func (tp *tokenParser) distribute(leftover []string, out *parseOutcome) error {
	if len(tp.args) == 0 {
		out.leftover = leftover
		return nil
	}

	arities := make([]int, len(tp.args))
	for i, a := range tp.args {
		arities[i] = a.Nargs
	}
	claims, rest, err := unpackArgs(leftover, arities)
	if err != nil {
		return tp.fail(out, err)
	}

	for i, claim := range claims {
		p := tp.args[i]
		switch {
		case claim == nil:
			// Not found here; resolution tries env and defaults first.
		case len(claim) == 0:
			// An empty wildcard capture resolves as absent so a
			// declared env var can still supply it.
		case p.Nargs > 1 && len(claim) < p.Nargs:
			return tp.fail(out, NewUsageError(UsageBadArgument,
				fmt.Sprintf("argument %s takes %d values", p.Name, p.Nargs)).
				WithParam(p))
		default:
			rv := out.record(p)
			rv.occurrences = append(rv.occurrences, claim)
		}
	}
	out.leftover = rest
	return nil
}

// unpackArgs distributes a flat token list across a list of arities
// with at most one wildcard (-1). Fixed slots before the wildcard claim
// from the front; once the wildcard is seen, the remaining slots are
// processed from the back (with per-tuple reversal) so the wildcard
// absorbs exactly the middle. Missing fixed slots come back nil.
func unpackArgs(tokens []string, arities []int) ([][]string, []string, error) {
	rv := make([][]string, 0, len(arities))
	spos := -1
	front, back := 0, len(tokens)
	ai, aj := 0, len(arities)

	fetchTok := func() (string, bool) {
		if front >= back {
			return "", false
		}
		if spos < 0 {
			v := tokens[front]
			front++
			return v, true
		}
		back--
		return tokens[back], true
	}
	fetchArity := func() int {
		if spos < 0 {
			a := arities[ai]
			ai++
			return a
		}
		aj--
		return arities[aj]
	}

	for ai < aj {
		nargs := fetchArity()
		switch {
		case nargs == 1:
			v, ok := fetchTok()
			if !ok {
				rv = append(rv, nil)
				continue
			}
			rv = append(rv, []string{v})

		case nargs > 1:
			claim := make([]string, 0, nargs)
			for i := 0; i < nargs; i++ {
				v, ok := fetchTok()
				if !ok {
					break
				}
				claim = append(claim, v)
			}
			if len(claim) == 0 {
				rv = append(rv, nil)
				continue
			}
			if spos >= 0 {
				for i, j := 0, len(claim)-1; i < j; i, j = i+1, j-1 {
					claim[i], claim[j] = claim[j], claim[i]
				}
			}
			rv = append(rv, claim)

		default:
			if spos >= 0 {
				return nil, nil, NewUsageError(UsageBadArgument,
					"only one wildcard argument is allowed")
			}
			spos = len(rv)
			rv = append(rv, nil)
		}
	}

	if spos < 0 {
		return rv, tokens[front:back], nil
	}

	rv[spos] = append([]string{}, tokens[front:back]...)
	for i, j := spos+1, len(rv)-1; i < j; i, j = i+1, j-1 {
		rv[i], rv[j] = rv[j], rv[i]
	}
	return rv, nil, nil
}
