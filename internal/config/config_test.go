package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Gemini.Model != defaultGeminiModel {
		t.Fatalf("model = %q, want default", cfg.Gemini.Model)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Fatalf("api key = %q, want env override", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.TimeoutSeconds != defaultGeminiTimeoutSeconds {
		t.Fatalf("timeout = %d, want %d", cfg.Gemini.TimeoutSeconds, defaultGeminiTimeoutSeconds)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[gemini]
api_key = "file-key"
base_url = "https://example.test/v1beta/"
model = "  gemini-2.5-flash  "

[transcript]
script_path = "~/scripts/get_transcript.py"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Gemini.BaseURL != "https://example.test/v1beta" {
		t.Fatalf("base url not trimmed: %q", cfg.Gemini.BaseURL)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("model not trimmed: %q", cfg.Gemini.Model)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not lowercased: %+v", cfg.Logging)
	}
	if strings.HasPrefix(cfg.Transcript.ScriptPath, "~") {
		t.Fatalf("script path not expanded: %q", cfg.Transcript.ScriptPath)
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for bad log format")
	}
}

func TestValidateRejectsMissingScript(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Transcript.ScriptPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing script path")
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := os.WriteFile(path, []byte(SampleConfig()), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}
