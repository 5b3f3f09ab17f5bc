// Package ui provides the terminal user interface for Concepta.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model owns a bound set of controls
// (elements) created once at startup, and reads and mutates application
// state only through state.Store. Every store mutation reports the Region
// it touched and Model.invalidate refreshes just the views depending on it.
//
// # Package Structure
//
//   - app.go: Model, Update/View plumbing and Run
//   - startup.go: backend and inference checks behind the loading overlay
//   - events.go: key resolution into named Events and the handler table
//   - focus.go: form field focus and in-field key handling
//   - tasks.go: generation requests and response handling
//   - flashcards.go: deck actions and the card view
//   - settings.go: settings dialog and theme toggle
//   - render.go, toasts.go, help.go: rendering
//
// # Event Flow
//
//  1. Init starts the backend health check; the loading overlay stays up
//     until it succeeds, then the inference engine is checked
//  2. One second after both checks the overlay is removed and a toast
//     reports whether the inference engine answered
//  3. Keys resolve to an Event only when no field has focus; inside a field
//     only navigation, submit and quit apply
//  4. Generation requests carry a per-tab sequence number and responses of
//     superseded requests are dropped
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Gateway: client,
//		Store:   store,
//		Prefs:   prefsStore,
//		Logger:  logger,
//	})
package ui
