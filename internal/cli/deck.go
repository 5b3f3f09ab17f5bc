package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/concepta/internal/backend"
)

// Deck export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportDeck writes cards to w in the given format.
func ExportDeck(w io.Writer, cards []backend.Flashcard, format string) error {
	if cards == nil {
		cards = []backend.Flashcard{}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		data, err = json.MarshalIndent(cards, "", "  ")
		data = append(data, '\n')
	case FormatYAML, "yml":
		data, err = yaml.Marshal(cards)
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

// ReadInput returns the text named by args: a file path, "-" for stdin, or
// stdin when no argument is given.
func ReadInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
