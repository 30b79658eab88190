package clack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDefaultMapLookup checks path descent and the subtree-is-scope
// rule.
func TestDefaultMapLookup(t *testing.T) {
	m := DefaultMap{
		"debug": true,
		"serve": map[string]any{
			"port": 9000,
			"tls": map[string]any{
				"cert": "/etc/cert.pem",
			},
		},
	}

	if v, ok := m.Lookup(nil, "debug"); !ok || v != true {
		t.Errorf("root lookup: got %v, %v", v, ok)
	}
	if v, ok := m.Lookup([]string{"serve"}, "port"); !ok || v != 9000 {
		t.Errorf("scoped lookup: got %v, %v", v, ok)
	}
	if v, ok := m.Lookup([]string{"serve", "tls"}, "cert"); !ok || v != "/etc/cert.pem" {
		t.Errorf("nested lookup: got %v, %v", v, ok)
	}
	if _, ok := m.Lookup(nil, "serve"); ok {
		t.Error("a subtree must not resolve as a value")
	}
	if _, ok := m.Lookup([]string{"missing"}, "port"); ok {
		t.Error("a missing scope must not resolve")
	}
	if _, ok := m.Lookup([]string{"debug"}, "port"); ok {
		t.Error("descending through a scalar must not resolve")
	}
}

// TestDefaultMapMerge checks that overlaying descends into scopes
// instead of clobbering them.
func TestDefaultMapMerge(t *testing.T) {
	base := DefaultMap{
		"debug": false,
		"serve": map[string]any{"port": 9000, "host": "localhost"},
	}
	overlay := DefaultMap{
		"debug": true,
		"serve": map[string]any{"port": 8080},
	}
	base.Merge(overlay)

	want := DefaultMap{
		"debug": true,
		"serve": map[string]any{"port": 8080, "host": "localhost"},
	}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Errorf("merged map mismatch (-want +got):\n%s", diff)
	}
}

// TestDecodeDefaultMap checks the YAML loader feeding the resolution
// pipeline end to end.
func TestDecodeDefaultMap(t *testing.T) {
	doc := `
debug: true
serve:
  port: 9000
`
	m, err := DecodeDefaultMap(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	var port int
	serve := NewCommand("serve", "").NoHelp().
		IntOption("port", "").Default(80).Done().
		Action(func(ctx *Context) error {
			port, _ = ctx.Int("port")
			return nil
		}).
		MustBuild()
	root := NewCommand("app", "").NoHelp().Subcommand(serve).MustBuild()

	err = root.Run(context.Background(), []string{"serve"},
		WithDefaults(m), WithEnv(map[string]string{}))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if port != 9000 {
		t.Errorf("got port %d, want the mapped default", port)
	}
}

// TestLoadDefaultMapFile checks the file loader.
func TestLoadDefaultMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: fancy\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDefaultMap(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v, ok := m.Lookup(nil, "mode"); !ok || v != "fancy" {
		t.Errorf("got %v, %v", v, ok)
	}

	if _, err := LoadDefaultMap(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must fail")
	}
}

// TestEnvChainPrecedence checks overrides > dotenv > process env, with
// empty overrides still masking nothing.
func TestEnvChainPrecedence(t *testing.T) {
	dir := t.TempDir()
	dotfile := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotfile, []byte("CLACK_CHAIN_A=dotenv\nCLACK_CHAIN_B=dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	chain := &envChain{overrides: map[string]string{"CLACK_CHAIN_A": "override"}}
	chain.loadDotenv(dotfile)

	if v, _ := chain.lookup("CLACK_CHAIN_A"); v != "override" {
		t.Errorf("override: got %q", v)
	}
	if v, _ := chain.lookup("CLACK_CHAIN_B"); v != "dotenv" {
		t.Errorf("dotenv: got %q", v)
	}

	t.Setenv("CLACK_CHAIN_C", "process")
	if v, _ := chain.lookup("CLACK_CHAIN_C"); v != "process" {
		t.Errorf("process: got %q", v)
	}
	if _, ok := chain.lookup("CLACK_CHAIN_MISSING"); ok {
		t.Error("unset name must miss")
	}
}

// TestDotenvFirstFileWins checks that earlier dotenv files shadow later
// ones and unreadable files are skipped.
func TestDotenvFirstFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	if err := os.WriteFile(first, []byte("CLACK_DOTENV_X=one\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("CLACK_DOTENV_X=two\nCLACK_DOTENV_Y=extra\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	chain := &envChain{}
	chain.loadDotenv(first, filepath.Join(dir, "missing.env"), second)

	if v, _ := chain.lookup("CLACK_DOTENV_X"); v != "one" {
		t.Errorf("first file must win: got %q", v)
	}
	if v, _ := chain.lookup("CLACK_DOTENV_Y"); v != "extra" {
		t.Errorf("later file still contributes new names: got %q", v)
	}
}

// TestWithDotenvOption checks the run-option wiring end to end.
func TestWithDotenvOption(t *testing.T) {
	dotfile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(dotfile, []byte("CLACK_DOTENV_MODE=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var got string
	cmd := NewCommand("app", "").NoHelp().
		StringOption("mode", "").FromEnv("CLACK_DOTENV_MODE").Done().
		Action(func(ctx *Context) error {
			got, _ = ctx.String("mode")
			return nil
		}).
		MustBuild()

	if err := cmd.Run(context.Background(), nil, WithDotenv(dotfile)); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != "loaded" {
		t.Errorf("got %q", got)
	}
	if os.Getenv("CLACK_DOTENV_MODE") != "" {
		t.Error("dotenv loading must not mutate the process environment")
	}
}
