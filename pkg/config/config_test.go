package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-view/pkg/config"
	"github.com/goliatone/go-view/pkg/escape"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Suffix != config.DefaultSuffix {
		t.Fatalf("expected default suffix %q, got %q", config.DefaultSuffix, cfg.Suffix)
	}
	if got := cfg.Chain().Escape("<b>"); got != "&lt;b&gt;" {
		t.Fatalf("expected html escaping by default, got %v", got)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	base := config.Default()
	clone := base.Clone()
	clone.Escapers = append(clone.Escapers, escape.Upper())
	clone.Escapers[0] = escape.Trim()
	clone.Path = "/elsewhere"

	if len(base.Escapers) != 1 {
		t.Fatalf("expected base escapers untouched, got %d", len(base.Escapers))
	}
	if got := base.Chain().Escape("<b>"); got != "&lt;b&gt;" {
		t.Fatalf("expected base chain untouched, got %v", got)
	}
	if base.Path != "" {
		t.Fatalf("expected base path untouched, got %q", base.Path)
	}
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte("path: /srv/views/\nsuffix: .html\nescape: [trim, upper]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Path != "/srv/views/" || cfg.Suffix != ".html" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if got := cfg.Chain().Escape("  ab "); got != "AB" {
		t.Fatalf("expected trim+upper chain, got %v", got)
	}
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("path: views\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Suffix != config.DefaultSuffix {
		t.Fatalf("expected default suffix, got %q", cfg.Suffix)
	}
	if len(cfg.Escapers) != 1 {
		t.Fatalf("expected default escaper, got %d", len(cfg.Escapers))
	}

	cfg, err = config.Parse([]byte("escape: []\nsuffix: \"\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Escapers) != 0 || cfg.Suffix != "" {
		t.Fatalf("expected explicit empties to win, got %+v", cfg)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := config.Parse([]byte("escape: [nope]\n")); err == nil {
		t.Fatalf("expected unknown escaper error")
	}
	if _, err := config.Parse([]byte("path: [unterminated\n")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	if err := os.WriteFile(path, []byte("suffix: .txt\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Suffix != ".txt" {
		t.Fatalf("expected .txt, got %q", cfg.Suffix)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
