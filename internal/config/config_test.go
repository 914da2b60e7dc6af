package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`arguments_file: args.json`), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ArgumentsFile != "args.json" {
		t.Fatalf("expected arguments_file to round-trip, got %q", cfg.ArgumentsFile)
	}
	if cfg.DebugSymbols != DebugSymbolsSummary {
		t.Fatalf("expected default debug_symbols to be summary, got %q", cfg.DebugSymbols)
	}
}

func TestParseConfigRejectsBadDebugSymbols(t *testing.T) {
	_, err := ParseConfig([]byte(`debug_symbols: verbose`), "test.yaml")
	if err == nil {
		t.Fatalf("expected an error for an unrecognized debug_symbols value")
	}
}

func TestFindConfigWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfgPath := filepath.Join(root, ".simplicityhl.yaml")
	if err := os.WriteFile(cfgPath, []byte("debug_symbols: full\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Fatalf("expected %s, got %s", cfgPath, found)
	}
}

func TestFindConfigReturnsEmptyWhenAbsent(t *testing.T) {
	found, err := FindConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Fatalf("expected no config to be found, got %s", found)
	}
}
