package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBackendURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBackendURL)
	}

	u, err = parseBaseURL("localhost:9000/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:9000" {
		t.Fatalf("url = %q, want http://localhost:9000", u.String())
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_ExplainSendsDocumentedBody(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotContentType, gotUserAgent string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ExplainResponse{
			Topic:             "Photosynthesis",
			Difficulty:        "beginner",
			SimpleExplanation: "Plants turn light into food.",
			Steps:             []string{"Absorb light", "Split water", "Make glucose"},
			Analogy:           "A solar-powered kitchen.",
			KeyPoints:         []string{"Needs light", "Releases oxygen"},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.Explain(ctx, ExplainRequest{Topic: "Photosynthesis", Difficulty: "beginner", Model: DefaultModel})
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/explain" {
		t.Fatalf("request = %s %s, want POST /explain", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	want := map[string]any{"topic": "Photosynthesis", "difficulty": "beginner", "model": "phi3:mini"}
	if !reflect.DeepEqual(gotBody, want) {
		t.Fatalf("body = %#v, want %#v", gotBody, want)
	}
	if len(resp.Steps) != 3 || len(resp.KeyPoints) != 2 || resp.Analogy == "" || resp.SimpleExplanation == "" {
		t.Fatalf("response = %#v, want all four sections", resp)
	}
}

func TestClient_GenerationEndpoints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/summarize":
			var req SummarizeRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(SummaryResponse{
				Length:      req.Length,
				Summary:     "short version",
				Definitions: []Definition{{Term: "ATP", Definition: "energy carrier"}},
			})
		case "/quiz":
			var req QuizRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(QuizResponse{
				Difficulty: req.Difficulty,
				Type:       req.Type,
				Questions: []QuizQuestion{{
					Question: "Q?", Type: QuestionMCQ, Options: []string{"A", "B"}, Answer: "A",
				}},
			})
		case "/flashcards":
			var req FlashcardsRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			cards := make([]Flashcard, req.Count)
			for i := range cards {
				cards[i] = Flashcard{Question: "q", Answer: "a"}
			}
			_ = json.NewEncoder(w).Encode(FlashcardsResponse{Flashcards: cards})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	summary, err := c.Summarize(ctx, SummarizeRequest{Notes: "notes", Length: "short", Model: DefaultModel})
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if summary.Length != "short" || len(summary.Definitions) != 1 || len(summary.KeyPoints) != 0 {
		t.Fatalf("Summarize = %#v", summary)
	}

	quiz, err := c.Quiz(ctx, QuizRequest{Content: "c", Type: "mcq", Difficulty: "easy", Count: 1, Model: DefaultModel})
	if err != nil {
		t.Fatalf("Quiz returned error: %v", err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].Options[1] != "B" {
		t.Fatalf("Quiz = %#v", quiz)
	}

	deck, err := c.Flashcards(ctx, FlashcardsRequest{Content: "c", Count: 4, Model: DefaultModel})
	if err != nil {
		t.Fatalf("Flashcards returned error: %v", err)
	}
	if len(deck.Flashcards) != 4 {
		t.Fatalf("Flashcards len = %d, want 4", len(deck.Flashcards))
	}
}

func TestClient_EmptyQuizIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"questions": [], "difficulty": "easy"}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	resp, err := c.Quiz(context.Background(), QuizRequest{Content: "c"})
	if err != nil {
		t.Fatalf("Quiz returned error: %v", err)
	}
	if len(resp.Questions) != 0 || resp.Difficulty != "easy" {
		t.Fatalf("Quiz = %#v, want empty questions", resp)
	}
}

func TestClient_StatusErrorCarriesDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "model not loaded"}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	_, err := c.Explain(context.Background(), ExplainRequest{Topic: "x"})
	if err == nil {
		t.Fatalf("Explain returned nil error, want status error")
	}
	var status *StatusError
	if !errors.As(err, &status) {
		t.Fatalf("error = %T, want *StatusError", err)
	}
	if status.Code != http.StatusInternalServerError || status.Path != "/explain" || status.Detail != "model not loaded" {
		t.Fatalf("status error = %#v", status)
	}
	if got, want := err.Error(), "api /explain returned status 500: model not loaded"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if IsUnreachable(err) {
		t.Fatalf("IsUnreachable(status error) = true, want false")
	}
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary": `))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	_, err := c.Summarize(context.Background(), SummarizeRequest{Notes: "n"})
	if err == nil {
		t.Fatalf("Summarize returned nil error, want decode error")
	}
	if IsUnreachable(err) {
		t.Fatalf("IsUnreachable(decode error) = true, want false")
	}
}

func TestClient_HealthAndInference(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", Service: "concepta", OllamaConnected: true, Model: "phi3:mini"})
	}))
	t.Cleanup(backend.Close)

	var tagsHits atomic.Int32
	inference := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		tagsHits.Add(1)
		_, _ = w.Write([]byte(`{"models": [{"name": "phi3:mini"}]}`))
	}))
	t.Cleanup(inference.Close)

	c, _ := NewClient(backend.URL)
	health, err := c.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth returned error: %v", err)
	}
	if health.Status != "healthy" || !health.OllamaConnected {
		t.Fatalf("CheckHealth = %#v", health)
	}

	if err := c.CheckInference(context.Background(), inference.URL); err != nil {
		t.Fatalf("CheckInference returned error: %v", err)
	}
	if tagsHits.Load() != 1 {
		t.Fatalf("tags hits = %d, want 1", tagsHits.Load())
	}
}

func TestClient_HealthFailures(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(failing.Close)

	c, _ := NewClient(failing.URL)
	if _, err := c.CheckHealth(context.Background()); err == nil {
		t.Fatalf("CheckHealth returned nil error for 503")
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()

	c, _ = NewClient(addr)
	_, err := c.CheckHealth(context.Background())
	if err == nil {
		t.Fatalf("CheckHealth returned nil error for closed server")
	}
	if !IsUnreachable(err) {
		t.Fatalf("IsUnreachable(%v) = false, want true", err)
	}
}

func TestClient_ModelsCachesAndFallsBack(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"models": ["phi3:mini", "llama3.2:3b"]}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	for i := 0; i < 3; i++ {
		models, err := c.Models(context.Background())
		if err != nil {
			t.Fatalf("Models returned error: %v", err)
		}
		if len(models) != 2 {
			t.Fatalf("Models = %v, want 2 entries", models)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want 1 (cached)", hits.Load())
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	c, _ = NewClient(broken.URL)
	models, err := c.Models(context.Background())
	if err == nil {
		t.Fatalf("Models returned nil error for 500")
	}
	if !reflect.DeepEqual(models, FallbackModels) {
		t.Fatalf("Models = %v, want fallback %v", models, FallbackModels)
	}
}

func TestClient_ModelInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model-info" || r.Method != http.MethodGet {
			t.Errorf("request = %s %s, want GET /model-info", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"current_model": "phi3:mini",
			"available_models": ["phi3:mini", "mistral:7b"],
			"optimized_for": "phi3:mini",
			"specs": {"phi3:mini": "3.8B parameters, ~4GB RAM", "mistral:7b": "7B parameters, ~7GB RAM"},
			"ollama_running": true
		}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	info, err := c.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("ModelInfo returned error: %v", err)
	}
	if info.CurrentModel != "phi3:mini" || !info.OllamaRunning {
		t.Fatalf("info = %+v", info)
	}
	if got := info.Specs["mistral:7b"]; got != "7B parameters, ~7GB RAM" {
		t.Fatalf("Specs[mistral:7b] = %q", got)
	}
	if len(info.AvailableModels) != 2 {
		t.Fatalf("AvailableModels = %v, want 2 entries", info.AvailableModels)
	}
}
