package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCleanResponsePlain(t *testing.T) {
	if got := CleanResponse("  hello there \n"); got != "hello there" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}

func TestCleanResponseWithCodeFence(t *testing.T) {
	text := "```markdown\n## Report\nBody\n```"
	if got := CleanResponse(text); got != "## Report\nBody" {
		t.Errorf("expected fence stripped, got %q", got)
	}
}

func TestCleanResponseUnterminatedFence(t *testing.T) {
	text := "```\nline one\nline two"
	if got := CleanResponse(text); got != "line one\nline two" {
		t.Errorf("expected body kept, got %q", got)
	}
}

func TestCleanResponseEmpty(t *testing.T) {
	if got := CleanResponse("   "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestRequestMessages(t *testing.T) {
	msgs := Request{System: "be brief", Prompt: "hi"}.messages()
	if len(msgs) != 2 || msgs[0]["role"] != "system" || msgs[1]["content"] != "hi" {
		t.Errorf("unexpected messages %v", msgs)
	}
	if len(Request{Prompt: "hi"}.messages()) != 1 {
		t.Error("expected system message to be omitted when empty")
	}
	if (Request{}).temperature() != 0.7 {
		t.Error("expected default temperature")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"choices":[{"message":{"content":"  great reel  "}}]}`))
	}))
	defer srv.Close()

	p := &OpenAIProvider{Model: "gpt-4o-mini", APIKey: "sk-test", BaseURL: srv.URL, client: srv.Client()}
	text, err := p.Generate(context.Background(), Request{Prompt: "score it", MaxTokens: 400, Temperature: 0.5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "great reel" {
		t.Errorf("expected trimmed reply, got %q", text)
	}
	if got["model"] != "gpt-4o-mini" || got["max_tokens"] != float64(400) || got["temperature"] != 0.5 {
		t.Errorf("unexpected request body %v", got)
	}
}

func TestOpenAIGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := &OpenAIProvider{Model: "m", APIKey: "k", BaseURL: srv.URL, client: srv.Client()}
	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestOpenAIWithoutKey(t *testing.T) {
	p := NewOpenAIProvider("m", "REELIQ_TEST_KEY_THAT_IS_UNSET")
	if p.IsConfigured() {
		t.Fatal("expected provider to be unconfigured")
	}
	if _, err := p.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Error("expected error without key")
	}
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.Write([]byte(`{"models":[{"name":"llama3.2:latest"}]}`))
		case "/api/chat":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["stream"] != false {
				t.Errorf("expected non-streaming request")
			}
			w.Write([]byte(`{"message":{"content":"hello"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewOllamaProvider("llama3.2", srv.URL)
	if !p.IsConfigured() {
		t.Fatal("expected model to be found")
	}
	text, err := p.Generate(context.Background(), Request{Prompt: "hi", MaxTokens: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "hello" {
		t.Errorf("expected hello, got %q", text)
	}
}

type recordingProvider struct {
	got Request
}

func (r *recordingProvider) Generate(_ context.Context, req Request) (string, error) {
	r.got = req
	return "ok", nil
}

func (r *recordingProvider) IsConfigured() bool { return true }

func TestWithTokenCap(t *testing.T) {
	inner := &recordingProvider{}
	p := WithTokenCap(inner, 500)

	p.Generate(context.Background(), Request{MaxTokens: 900})
	if inner.got.MaxTokens != 500 {
		t.Errorf("expected cap 500, got %d", inner.got.MaxTokens)
	}
	p.Generate(context.Background(), Request{MaxTokens: 400})
	if inner.got.MaxTokens != 400 {
		t.Errorf("expected 400 kept, got %d", inner.got.MaxTokens)
	}
	p.Generate(context.Background(), Request{})
	if inner.got.MaxTokens != 500 {
		t.Errorf("expected unset tokens to take the cap, got %d", inner.got.MaxTokens)
	}

	if WithTokenCap(nil, 500) != nil {
		t.Error("expected nil provider to stay nil")
	}
	if WithTokenCap(inner, 0) != Provider(inner) {
		t.Error("expected zero cap to return the provider unchanged")
	}
}
