// Package app provides the orchestration layer for the Concepta client.
//
// # Overview
//
// This package wires together configuration, logging, local storage, the
// backend client and the state store. It is the composition root shared
// by the TUI and the one-shot subcommands.
//
// # Startup
//
//  1. Load ~/.config/concepta/config.toml, then .env and CONCEPTA_*
//     overrides, then command-line flags
//  2. Open the rotated JSON log under the data directory
//  3. Open the SQLite key/value store, falling back to memory
//  4. Build the state store from the config and apply saved settings;
//     the separately saved theme wins over the one inside the settings
//  5. Start the TUI, which performs the backend and inference checks
//
// # Error Handling
//
// Fatal errors (returned from Open and Run):
//   - Config file present but unreadable or invalid
//   - Backend URL that cannot be parsed
//
// Recoverable (logged, startup continues):
//   - Log file cannot be created
//   - Database cannot be opened
//   - Saved settings or theme malformed
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{ConfigPath: ""}); err != nil {
//		log.Fatal(err)
//	}
package app
