package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/config"
)

func parseFlags(t *testing.T, args ...string) (*pflag.FlagSet, config.Config) {
	t.Helper()
	cfg := config.Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindConfigFlags(fs, &cfg)
	fs.StringVar(&cfg.Output, "output", "", "")
	fs.StringVar(&cfg.DB, "db", "", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return fs, cfg
}

func TestResolveConfigFlagsOnly(t *testing.T) {
	fs, flagCfg := parseFlags(t, "--input", "news.tsv", "--workers", "3", "--chunk-size", "7")

	cfg, err := resolveConfig(fs, flagCfg)
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}
	if cfg.Input != "news.tsv" {
		t.Errorf("Expected input news.tsv, got %q", cfg.Input)
	}
	if cfg.Workers != 3 || cfg.ChunkSize != 7 {
		t.Errorf("Expected workers=3 chunk=7, got workers=%d chunk=%d", cfg.Workers, cfg.ChunkSize)
	}
	if cfg.BatchSize != config.Default().BatchSize {
		t.Errorf("Expected default batch size, got %d", cfg.BatchSize)
	}
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lemmaflow.yaml")
	yaml := "input: from-file.tsv\nworkers: 2\nchunk_size: 10\nbatch_size: 4\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, flagCfg := parseFlags(t, "--config", path, "--workers", "6")

	cfg, err := resolveConfig(fs, flagCfg)
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}
	if cfg.Workers != 6 {
		t.Errorf("Expected flag to win (workers=6), got %d", cfg.Workers)
	}
	if cfg.ChunkSize != 10 || cfg.BatchSize != 4 {
		t.Errorf("Expected file values chunk=10 batch=4, got chunk=%d batch=%d", cfg.ChunkSize, cfg.BatchSize)
	}
	if cfg.Input != "from-file.tsv" {
		t.Errorf("Expected input from file, got %q", cfg.Input)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level from file, got %q", cfg.Log.Level)
	}
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	fs, flagCfg := parseFlags(t, "--workers", "0")

	if _, err := resolveConfig(fs, flagCfg); err == nil {
		t.Error("Expected error for zero workers")
	}
}

func TestResolveConfigMissingFile(t *testing.T) {
	fs, flagCfg := parseFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := resolveConfig(fs, flagCfg); err == nil {
		t.Error("Expected error for missing config file")
	}
}
