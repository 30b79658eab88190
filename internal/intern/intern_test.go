package intern

import (
	"strings"
	"sync"
	"testing"
)

func TestStringInterner_Intern(t *testing.T) {
	si := NewStringInterner(16)

	// Build two distinct string values with equal content so the test
	// does not depend on compiler constant folding.
	a := strings.Repeat("--verbose", 1)
	b := strings.Repeat("--ver", 1) + "bose"

	first := si.Intern(a)
	second := si.Intern(b)

	if first != "--verbose" || second != "--verbose" {
		t.Fatalf("Intern returned %q, %q, want --verbose twice", first, second)
	}
	if si.Stats() != 1 {
		t.Errorf("Stats() = %d, want 1", si.Stats())
	}
}

func TestStringInterner_InternByte(t *testing.T) {
	si := NewStringInterner(16)

	tests := []struct {
		b        byte
		expected string
	}{
		{'a', "a"},
		{'z', "z"},
		{'A', "A"},
		{'Z', "Z"},
		{'0', "0"},
		{'9', "9"},
		{'-', "-"},
		{'_', "_"},
	}

	for _, tt := range tests {
		if result := si.InternByte(tt.b); result != tt.expected {
			t.Errorf("InternByte(%q) = %q, want %q", tt.b, result, tt.expected)
		}
	}

	// Alphanumerics hit the static table; only the two punctuation
	// characters should have reached the map.
	if si.Stats() != 2 {
		t.Errorf("Stats() = %d, want 2", si.Stats())
	}
}

func TestStringInterner_PreIntern(t *testing.T) {
	si := NewStringInterner(16)
	si.PreIntern([]string{"--help", "-h", "--version"})

	if si.Stats() != 3 {
		t.Errorf("Stats() = %d after PreIntern, want 3", si.Stats())
	}

	// A pre-interned lookup must not grow the table.
	si.Intern("--help")
	if si.Stats() != 3 {
		t.Errorf("Stats() = %d after repeat Intern, want 3", si.Stats())
	}
}

func TestStringInterner_Clear(t *testing.T) {
	si := NewStringInterner(16)
	si.PreIntern([]string{"--one", "--two"})
	si.Clear()

	if si.Stats() != 0 {
		t.Errorf("Stats() = %d after Clear, want 0", si.Stats())
	}
}

func TestStringInterner_Concurrent(t *testing.T) {
	si := NewStringInterner(64)

	const numGoroutines = 20
	const numOperations = 500

	spellings := []string{"--verbose", "--quiet", "--config", "--output", "-v", "-q"}

	var wg sync.WaitGroup
	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < numOperations; i++ {
				s := si.Intern(spellings[i%len(spellings)])
				if s == "" {
					t.Error("Intern returned empty string")
					return
				}
			}
		}()
	}
	wg.Wait()

	if si.Stats() != len(spellings) {
		t.Errorf("Stats() = %d, want %d", si.Stats(), len(spellings))
	}
}

func TestGlobalInterner(t *testing.T) {
	if GlobalInterner == nil {
		t.Fatal("GlobalInterner not initialized")
	}

	// Common spellings are seeded at init.
	before := GlobalInterner.Stats()
	Intern("--help")
	Intern("-h")
	if after := GlobalInterner.Stats(); after != before {
		t.Errorf("Stats grew from %d to %d on pre-interned spellings", before, after)
	}

	if s := InternByte('v'); s != "v" {
		t.Errorf("InternByte('v') = %q, want v", s)
	}
}

func TestCommonSpellings(t *testing.T) {
	for _, spelling := range CommonSpellings {
		if spelling == "" {
			t.Error("CommonSpellings contains an empty string")
		}
		if spelling[0] != '-' {
			t.Errorf("CommonSpellings entry %q does not start with a dash", spelling)
		}
	}
}
