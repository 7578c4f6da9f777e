package assistant

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"google.golang.org/genai"
)

const groundedResponse = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "Rates average $4/hr"}]},
    "groundingMetadata": {
      "groundingChunks": [
        {"web": {"uri": "https://example.com", "title": "CityGov"}},
        {"retrievedContext": {"uri": "gs://bucket/doc"}},
        {"web": {"uri": "https://parking.example.org"}}
      ]
    }
  }]
}`

type recordingServer struct {
	mu     sync.Mutex
	bodies []string
}

func (r *recordingServer) lastBody() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.bodies) == 0 {
		return ""
	}
	return r.bodies[len(r.bodies)-1]
}

func newFakeGemini(t *testing.T, status int, payload string) (*Gemini, *recordingServer) {
	t.Helper()
	rec := &recordingServer{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.bodies = append(rec.bodies, string(body))
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)

	g := NewGemini(context.Background(), Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	})
	if g.initErr != nil {
		t.Fatalf("client init failed: %v", g.initErr)
	}
	return g, rec
}

func TestFetchInsightsExtractsTextAndSources(t *testing.T) {
	g, rec := newFakeGemini(t, http.StatusOK, groundedResponse)

	result := g.FetchInsights(context.Background(), "Downtown")
	if result.Text != "Rates average $4/hr" {
		t.Fatalf("expected model text, got %q", result.Text)
	}
	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 web sources, got %d: %+v", len(result.Sources), result.Sources)
	}
	if result.Sources[0].Title != "CityGov" || result.Sources[0].URI != "https://example.com" {
		t.Fatalf("unexpected first source %+v", result.Sources[0])
	}
	if result.Sources[1].Title != "Source" {
		t.Fatalf("expected default title Source, got %q", result.Sources[1].Title)
	}

	body := rec.lastBody()
	if !strings.Contains(body, "best parking areas in Downtown?") {
		t.Fatalf("expected query embedded in prompt, got %s", body)
	}
	if !strings.Contains(body, "googleSearch") {
		t.Fatalf("expected search tool enabled, got %s", body)
	}
}

func TestFetchInsightsProviderErrorFallsBack(t *testing.T) {
	g, _ := newFakeGemini(t, http.StatusBadRequest, `{"error": {"code": 400, "message": "bad request", "status": "INVALID_ARGUMENT"}}`)

	result := g.FetchInsights(context.Background(), "Downtown")
	if result.Text != InsightFailureText {
		t.Fatalf("expected failure text, got %q", result.Text)
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Fatalf("expected empty non-nil sources, got %#v", result.Sources)
	}
}

func TestMissingAPIKeyFallsBack(t *testing.T) {
	g := NewGemini(context.Background(), Options{})
	if g.Model() != DefaultModel {
		t.Fatalf("expected default model, got %s", g.Model())
	}

	result := g.FetchInsights(context.Background(), "Downtown")
	if result.Text != InsightFailureText || len(result.Sources) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if reply := g.SendMessage(context.Background(), "hi", "[]"); reply != ChatFailureText {
		t.Fatalf("expected chat failure text, got %q", reply)
	}
}

func TestMissingAPIKeyLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	NewGemini(context.Background(), Options{APIKey: "  "})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "gemini disabled") {
		t.Fatalf("expected a single gemini disabled line, got %q", buf.String())
	}
}

func TestSendMessageGroundsOnCatalog(t *testing.T) {
	g, rec := newFakeGemini(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Try spot 1."}]}}]}`)

	reply := g.SendMessage(context.Background(), "Where can I charge my EV?", `[{"location":"Downtown, Los Angeles"}]`)
	if reply != "Try spot 1." {
		t.Fatalf("expected model reply, got %q", reply)
	}

	body := rec.lastBody()
	if !strings.Contains(body, "You are ParkShare AI") {
		t.Fatalf("expected system instruction in request, got %s", body)
	}
	if !strings.Contains(body, "Downtown, Los Angeles") {
		t.Fatalf("expected catalog snapshot in request, got %s", body)
	}
	if !strings.Contains(body, "Where can I charge my EV?") {
		t.Fatalf("expected user message in request, got %s", body)
	}
}

func TestSendMessageEmptyReply(t *testing.T) {
	g, _ := newFakeGemini(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[]}}]}`)

	if reply := g.SendMessage(context.Background(), "hello", "[]"); reply != ChatNoTextReply {
		t.Fatalf("expected no-text fallback, got %q", reply)
	}
}

func TestSendMessageProviderErrorFallsBack(t *testing.T) {
	g, _ := newFakeGemini(t, http.StatusForbidden, `{"error": {"code": 403, "message": "denied", "status": "PERMISSION_DENIED"}}`)

	if reply := g.SendMessage(context.Background(), "hello", "[]"); reply != ChatFailureText {
		t.Fatalf("expected failure text, got %q", reply)
	}
}

func TestInsightFromResponseEmpty(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"no parts":      {Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	} {
		result := insightFromResponse(resp)
		if result.Text != NoInsightsText {
			t.Fatalf("%s: expected %q, got %q", name, NoInsightsText, result.Text)
		}
		if len(result.Sources) != 0 {
			t.Fatalf("%s: expected no sources, got %+v", name, result.Sources)
		}
	}
}

func TestResponseTextSkipsThoughts(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{
			{Text: "thinking...", Thought: true},
			{Text: "Rates "},
			{Text: "vary."},
		}},
	}}}
	if got := responseText(resp); got != "Rates vary." {
		t.Fatalf("expected %q, got %q", "Rates vary.", got)
	}
}
