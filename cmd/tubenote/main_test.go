package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a minimal config file pointing every path at the
// test's temp directory and the Gemini base URL at the supplied server.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[gemini]
api_key = "test-key"
base_url = %q
model = "gemini-2.5-flash"
timeout_seconds = 5

[transcript]
script_path = %q
timeout_seconds = 5
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), baseURL, filepath.Join(base, "get_transcript.py"))

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestCategorizeCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": `{"categories": {"1": "funny", "2": "relatable"}}`},
				}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	configPath := writeTestConfig(t, server.URL)
	stdin := `[{"id": "c1", "text": "lol this is great"}, {"id": "c2", "text": "so true"}]`

	out, err := runCLI(t, []string{
		"--config", configPath, "--json",
		"categorize", "--comments", "-", "--title", "Test Video",
	}, stdin)
	if err != nil {
		t.Fatalf("categorize: %v\noutput: %s", err, out)
	}

	var payload struct {
		Comments []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"comments"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse output: %v\noutput: %s", err, out)
	}
	if len(payload.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(payload.Comments))
	}
	if payload.Comments[0].Category != "funny" || payload.Comments[1].Category != "relatable" {
		t.Fatalf("unexpected categories: %+v", payload.Comments)
	}
}

func TestCategorizeStoresArtifactForVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": `{"categories": {"1": "informative"}}`},
				}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	configPath := writeTestConfig(t, server.URL)
	stdin := `[{"id": "c1", "text": "here is some background"}]`

	out, err := runCLI(t, []string{
		"--config", configPath,
		"categorize", "--comments", "-", "--video", "vid42",
	}, stdin)
	if err != nil {
		t.Fatalf("categorize: %v\noutput: %s", err, out)
	}

	out, err = runCLI(t, []string{
		"--config", configPath, "--json",
		"artifacts", "list", "--video", "vid42",
	}, "")
	if err != nil {
		t.Fatalf("artifacts list: %v\noutput: %s", err, out)
	}
	requireContains(t, out, "comment_categorization")
}
