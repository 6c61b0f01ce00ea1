package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tubenote/internal/services"
)

func TestGenerateReturnsEnvelopeText(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("key query param = %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		payload := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": "generated text"}},
					},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", Model: "demo-model"}, WithBaseURL(server.URL))
	envelope, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if envelope.Text() != "generated text" {
		t.Fatalf("Text() = %q", envelope.Text())
	}
	if gotPath != "/models/demo-model:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "hello" {
		t.Fatalf("unexpected request body %+v", gotBody)
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	client := NewClient(Config{Model: "demo"})
	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, services.ErrUnconfigured) {
		t.Fatalf("expected unconfigured error, got %v", err)
	}
}

func TestGenerateBlankPrompt(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	_, err := client.Generate(context.Background(), "   ")
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestGeneratePassesThroughErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "429 quota exceeded",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k"}, WithBaseURL(server.URL))
	envelope, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("error envelopes must pass through, got %v", err)
	}
	if envelope.Error == nil || !strings.Contains(envelope.Error.Message, "quota") {
		t.Fatalf("expected vendor error in envelope, got %+v", envelope)
	}
}

func TestGenerateUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k"}, WithBaseURL(server.URL))
	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := NewClient(Config{APIKey: "k"},
		WithBaseURL(server.URL),
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestEnvelopeTextEmptyPaths(t *testing.T) {
	if (Envelope{}).Text() != "" {
		t.Fatal("empty envelope should yield empty text")
	}
	env := Envelope{Candidates: []Candidate{{}}}
	if env.Text() != "" {
		t.Fatal("candidate without parts should yield empty text")
	}
}
