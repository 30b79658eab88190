// Package intern deduplicates the strings a parse pass keeps deriving:
// option spellings split out of --opt=value tokens, short names cut from
// clusters, and environment variable names assembled from the command
// path. Completion replays the same line over and over, so canonical
// copies keep those derivations allocation-free after the first pass.
package intern

import "sync"

// StringInterner provides thread-safe string interning.
type StringInterner struct {
	strings map[string]string
	mutex   sync.RWMutex
}

// NewStringInterner creates an interner with optional pre-allocated
// capacity.
func NewStringInterner(capacity int) *StringInterner {
	if capacity <= 0 {
		capacity = 64
	}
	return &StringInterner{
		strings: make(map[string]string, capacity),
	}
}

// Intern returns the canonical copy of s, storing it on first sight.
func (si *StringInterner) Intern(s string) string {
	// Fast path: read lock for the common hit.
	si.mutex.RLock()
	if interned, exists := si.strings[s]; exists {
		si.mutex.RUnlock()
		return interned
	}
	si.mutex.RUnlock()

	si.mutex.Lock()
	defer si.mutex.Unlock()

	// Double-check after acquiring the write lock.
	if interned, exists := si.strings[s]; exists {
		return interned
	}

	si.strings[s] = s
	return s
}

// InternByte returns the canonical one-character string for b. Short
// option clusters split into single characters, so these hit a
// pre-allocated table.
func (si *StringInterner) InternByte(b byte) string {
	if b >= 'a' && b <= 'z' {
		return singleCharStrings[b-'a']
	}
	if b >= 'A' && b <= 'Z' {
		return singleCharStrings[26+b-'A']
	}
	if b >= '0' && b <= '9' {
		return singleCharStrings[52+b-'0']
	}
	return si.Intern(string(rune(b)))
}

// PreIntern seeds the interner with strings known ahead of parsing.
func (si *StringInterner) PreIntern(strings []string) {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	for _, s := range strings {
		si.strings[s] = s
	}
}

// Stats returns the number of interned strings for monitoring.
func (si *StringInterner) Stats() int {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	return len(si.strings)
}

// Clear removes all interned strings (useful for testing).
func (si *StringInterner) Clear() {
	si.mutex.Lock()
	defer si.mutex.Unlock()
	clear(si.strings)
}

// Pre-allocated single character strings for short option names.
// a-z (0-25), A-Z (26-51), 0-9 (52-61).
var singleCharStrings = [62]string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
}

// CommonSpellings holds option spellings seen in almost every CLI, kept
// pre-interned so the first parse never allocates for them.
var CommonSpellings = []string{
	"--help", "-h", "--version", "-V",
	"--verbose", "-v", "--quiet", "-q",
	"--config", "-c", "--output", "-o",
	"--force", "-f", "--debug", "-d",
	"--dry-run", "--all", "--yes", "-y",
}

// GlobalInterner is the process-wide interner used by the parser and
// the completion walker.
var GlobalInterner *StringInterner

//nolint:gochecknoinits // global interner requires init for pre-interning
func init() {
	GlobalInterner = NewStringInterner(128)
	GlobalInterner.PreIntern(CommonSpellings)
}

// Intern interns a string using the global interner.
func Intern(s string) string {
	return GlobalInterner.Intern(s)
}

// InternByte interns a single byte using the global interner.
//
//nolint:revive // keep name for public API symmetry with Intern
func InternByte(b byte) string {
	return GlobalInterner.InternByte(b)
}
