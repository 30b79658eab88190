package benchmark_test

import (
	"testing"

	intern "github.com/dzonerzy/go-clack/internal/intern"
)

// Category: intern

func BenchmarkStringInterner_Intern(b *testing.B) {
	interner := intern.NewStringInterner(0)
	testStrings := []string{"flag1", "flag2", "help", "version", "config"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.Intern(testStrings[i%len(testStrings)])
	}
}

func BenchmarkStringInterner_InternByte(b *testing.B) {
	interner := intern.NewStringInterner(0)
	testBytes := []byte{'a', 'h', 'v', 'c', 'p', 'd'}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.InternByte(testBytes[i%len(testBytes)])
	}
}

func BenchmarkStringInterner_PreInterned(b *testing.B) {
	interner := intern.NewStringInterner(16)
	spellings := []string{"--help", "--version", "--verbose", "--config", "--port"}
	interner.PreIntern(spellings)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.Intern(spellings[i%len(spellings)])
	}
}

func BenchmarkGlobalIntern(b *testing.B) {
	testStrings := []string{"flag1", "flag2", "help", "version", "config"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		intern.Intern(testStrings[i%len(testStrings)])
	}
}
