// Package backend provides an HTTP client for the Concepta study backend.
//
// # Overview
//
// The backend turns topics, notes and raw content into structured study
// material. This package is the only place that talks to it: one method per
// generation task, plus health probes for the backend itself and for the
// inference engine it relies on.
//
// # Architecture
//
//   - client.go: HTTP client, request encoding and error mapping
//   - types.go: request and response shapes mirroring the backend API
//   - limits.go: per-task input limits and selector domains
//
// # Client Usage
//
//	client, err := backend.NewClient("http://localhost:8000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	if _, err := client.CheckHealth(ctx); err != nil {
//		log.Printf("backend unavailable: %v", err)
//	}
//
//	topic, truncated, err := backend.PrepareInput(raw, backend.TopicLimit)
//	resp, err := client.Explain(ctx, backend.ExplainRequest{
//		Topic:      topic,
//		Difficulty: "beginner",
//		Model:      backend.DefaultModel,
//	})
//
// # API Endpoints
//
//   - GET /health: backend status and inference connectivity
//   - GET /models: models the backend can use (cached for five minutes)
//   - POST /explain, /summarize, /quiz, /flashcards: generation tasks
//   - GET {api_url}/api/tags: inference engine probe
//
// # Request Handling
//
// All requests set Accept: application/json and User-Agent: concepta/0.1.
// Health probes are bounded by HealthTimeout. Generation calls are bounded
// only by the caller's context; the client never retries.
//
// # Error Handling
//
// Non-2xx responses return *StatusError carrying the path, the status code
// and the FastAPI "detail" message when the body has one. Everything else is
// wrapped with fmt.Errorf:
//   - "execute request: dial tcp: connection refused"
//   - "api /explain returned status 500: model not found"
//   - "decode response: unexpected EOF"
//
// # Input Limits
//
// PrepareInput trims text, rejects blank input with ErrEmptyInput and cuts
// anything longer than the task's limit to exactly that many runes. Cutting
// an already cut string changes nothing.
package backend
