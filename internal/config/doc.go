// Package config loads the Concepta client configuration.
//
// # Resolution Order
//
// Load builds a Config in layers, later layers winning:
//
//  1. Built-in defaults
//  2. ~/.config/concepta/config.toml (or the explicit path passed to Load)
//  3. A .env file in the working directory, if present
//  4. CONCEPTA_* environment variables
//
// Command-line flags are applied on top by the caller.
//
// # Default Values
//
//   - Backend URL: http://localhost:8000
//   - Inference engine URL: http://localhost:11434
//   - Model: phi3:mini
//   - Data directory: ~/.local/share/concepta
//   - Log file: <data_dir>/concepta.log
//   - Key/value database: <data_dir>/concepta.db
//
// # TOML Format
//
//	backend_url = "http://localhost:8000"
//	api_url = "http://localhost:11434"
//	model = "phi3:mini"
//	data_dir = "~/.local/share/concepta"
//	log_file = "~/.local/share/concepta/concepta.log"
//
// Every field is optional and blank values fall back to the default.
// Tilde expansion is performed for data_dir and log_file.
//
// # Error Handling
//
// A missing config file is not an error. Load fails only when the file
// exists but cannot be read or parsed, or when the home directory cannot
// be resolved.
//
// The settings a user saves from inside the UI (theme, model, inference
// URL) live in the key/value store, not here; see package prefs.
package config
