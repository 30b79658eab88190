package benchmark_test

import (
	"testing"

	fuzzy "github.com/dzonerzy/go-clack/internal/fuzzy"
)

// Category: fuzzy (exported paths only)

func BenchmarkMatcher_Best(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	candidates := []string{
		"help", "version", "verbose", "config", "output", "input",
		"force", "debug", "port", "host", "timeout", "retry",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Best("hep", candidates)
	}
}

func BenchmarkMatcher_Rank(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	candidates := []string{
		"help", "version", "verbose", "config", "output", "input",
		"force", "debug", "port", "host", "timeout", "retry",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Rank("ver", candidates)
	}
}

func BenchmarkMatcher_Sole(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	candidates := []string{
		"help", "version", "verbose", "config", "output", "input",
		"force", "debug", "port", "host", "timeout", "retry",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Sole("hep", candidates)
	}
}

func BenchmarkConvenienceFunctions(b *testing.B) {
	spellings := []string{
		"help", "version", "verbose", "config", "output", "input",
		"force", "debug", "port", "host", "timeout", "retry",
	}
	b.Run("SoleSuggestion", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.SoleSuggestion("hep", spellings, 2)
		}
	})
	b.Run("Suggestions", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.Suggestions("ver", spellings, 2, 3)
		}
	})
}
