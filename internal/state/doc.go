// Package state holds the Concepta application state.
//
// # Overview
//
// A single Store owns the active tab, the explanation difficulty, the theme,
// the model and URLs, the flashcard deck with its cursor, and the backend
// connection status. Nothing outside the Store writes these fields: callers
// use its mutation methods and read copies via Snapshot.
//
// # Regions
//
// Every mutation returns the Region it invalidated so the UI re-renders
// exactly that part of the screen. A no-op (navigating an empty deck, say)
// returns RegionNone.
//
// # Deck Invariants
//
//   - CardIndex is 0 for an empty deck and always < len(Flashcards) otherwise
//   - Replacing, shuffling or navigating the deck clears Flipped
//   - Navigation wraps: moving forward len(deck) times returns to the start
//
// # Request Sequencing
//
// Generation requests can overlap. BeginRequest hands out a per-task
// sequence number and IsLatest tells a completed request whether it is still
// the newest one for its output region; older results are discarded so a
// slow response never overwrites a fresher one.
//
// # Concurrency Model
//
// The Store uses a sync.RWMutex. The Bubble Tea update loop is the main
// writer, but one-shot commands and tests share the same Store, and
// Snapshot clones the deck so readers never see a torn update.
//
// # Testing Considerations
//
// Pass a seeded *rand.Rand to New for deterministic shuffles:
//
//	store := state.New(state.Defaults{Model: "phi3:mini"}, rand.New(rand.NewPCG(1, 2)))
package state
