// Package cli renders backend responses for the one-shot subcommands.
//
// Output is plain text coloured with fatih/color. Colour is disabled when
// the writer is not a terminal or NO_COLOR is set, so piped output stays
// clean. Decks export as JSON or YAML.
package cli
