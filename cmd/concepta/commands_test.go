package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/concepta/internal/backend"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(backend.HealthResponse{Status: "healthy", Model: "phi3:mini"})
	})
	mux.HandleFunc("/explain", func(w http.ResponseWriter, r *http.Request) {
		var req backend.ExplainRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(backend.ExplainResponse{
			Topic:             req.Topic,
			Difficulty:        req.Difficulty,
			SimpleExplanation: "Explained " + req.Topic + " at " + req.Difficulty,
			Steps:             []string{"one"},
			Analogy:           "like a kitchen",
			KeyPoints:         []string{"point"},
		})
	})
	mux.HandleFunc("/models", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(backend.ModelsResponse{Models: []string{"phi3:mini", "mistral:7b"}})
	})
	mux.HandleFunc("/model-info", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(backend.ModelInfo{
			CurrentModel: "phi3:mini",
			Specs:        map[string]string{"mistral:7b": "7B parameters, ~7GB RAM"},
		})
	})
	mux.HandleFunc("/flashcards", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(backend.FlashcardsResponse{Flashcards: []backend.Flashcard{
			{Question: "What is ATP?", Answer: "Energy currency"},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the root command with a throwaway config and data dir.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"CONCEPTA_BACKEND_URL", "CONCEPTA_API_URL", "CONCEPTA_MODEL", "CONCEPTA_DATA_DIR"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := "data_dir = \"" + filepath.Join(dir, "data") + "\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--config", cfg}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExplainCommand(t *testing.T) {
	srv := newBackend(t)
	out, _, err := execute(t, "", "--backend", srv.URL, "explain", "--difficulty", "advanced", "black", "holes")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	for _, want := range []string{"Explanation", "Explained black holes at advanced", "Analogy", "Key Points"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExplainCommand_RejectsBadDifficulty(t *testing.T) {
	_, _, err := execute(t, "", "explain", "--difficulty", "expert", "gravity")
	if err == nil || !strings.Contains(err.Error(), "invalid --difficulty") {
		t.Fatalf("err = %v, want invalid --difficulty", err)
	}
}

func TestSummarizeCommand_EmptyInput(t *testing.T) {
	_, _, err := execute(t, "   \n", "summarize")
	if err == nil || !strings.Contains(err.Error(), backend.ErrEmptyInput.Error()) {
		t.Fatalf("err = %v, want empty input error", err)
	}
}

func TestFlashcardsSaveAndExport(t *testing.T) {
	srv := newBackend(t)

	t.Setenv("CONCEPTA_DATA_DIR", "")
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("data_dir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) string {
		t.Helper()
		var stdout bytes.Buffer
		root := newRootCmd()
		root.SetArgs(append([]string{"--config", cfg, "--backend", srv.URL}, args...))
		root.SetIn(strings.NewReader("ATP stores energy in cells."))
		root.SetOut(&stdout)
		root.SetErr(&bytes.Buffer{})
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return stdout.String()
	}

	if out := run("flashcards", "--save"); !strings.Contains(out, "Q: What is ATP?") {
		t.Fatalf("flashcards output = %q", out)
	}
	out := run("deck", "export", "--format", "yaml")
	if !strings.Contains(out, "question: What is ATP?") || !strings.Contains(out, "answer: Energy currency") {
		t.Fatalf("yaml export = %q", out)
	}
}

func TestHealthCommand(t *testing.T) {
	srv := newBackend(t)
	out, _, err := execute(t, "", "--backend", srv.URL, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "backend "+srv.URL+": healthy") {
		t.Fatalf("health output = %q", out)
	}

	srv.Close()
	if _, _, err := execute(t, "", "--backend", srv.URL, "health"); err == nil {
		t.Fatal("expected error with backend down")
	}
}

func TestDeckExport_NothingSaved(t *testing.T) {
	if _, _, err := execute(t, "", "deck", "export"); err == nil {
		t.Fatal("expected error with no saved deck")
	}
}

func TestModelsCommand(t *testing.T) {
	srv := newBackend(t)
	out, _, err := execute(t, "", "--backend", srv.URL, "--model", "mistral:7b", "models")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	if !strings.Contains(out, "* mistral:7b  7B parameters, ~7GB RAM") {
		t.Fatalf("output missing current model with spec:\n%s", out)
	}
	if !strings.Contains(out, "  phi3:mini\n") {
		t.Fatalf("output missing phi3:mini:\n%s", out)
	}
}

func TestModelsCommand_FallsBackToBuiltInList(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	out, stderr, err := execute(t, "", "--backend", srv.URL, "models")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	if !strings.Contains(stderr, "built-in list") {
		t.Fatalf("stderr = %q, want fallback warning", stderr)
	}
	for _, name := range backend.FallbackModels {
		if !strings.Contains(out, name) {
			t.Errorf("output missing %q:\n%s", name, out)
		}
	}
}
