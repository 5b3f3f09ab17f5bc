package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/concepta/internal/app"
	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/cli"
	"github.com/five82/concepta/internal/logtail"
	"github.com/five82/concepta/internal/state"
)

var version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	model      string
	backendURL string
	apiURL     string
	debug      bool
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		Model:      g.model,
		BackendURL: g.backendURL,
		APIURL:     g.apiURL,
		Debug:      g.debug,
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "concepta",
		Short: "Concepta - AI study aid for the terminal",
		Long: `Concepta explains topics, summarizes notes, builds quizzes and
flashcards using a local Concepta backend.

Run without arguments to start the interactive TUI, or use a subcommand
for one-shot output.

Examples:
  concepta                                  # Start interactive TUI
  concepta explain photosynthesis           # Explain a topic
  concepta summarize notes.txt --length short
  cat chapter.md | concepta quiz --count 5 --answers
  concepta flashcards notes.txt --save      # Generate and save a deck
  concepta deck export --format yaml        # Print the saved deck
  concepta models                           # List models and their specs`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), g.options())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default ~/.config/concepta/config.toml)")
	pf.StringVar(&g.model, "model", "", "Model to use, overriding config and saved settings")
	pf.StringVar(&g.backendURL, "backend", "", "Backend URL (default http://localhost:8000)")
	pf.StringVar(&g.apiURL, "api-url", "", "Inference engine URL, overriding config and saved settings")
	pf.BoolVar(&g.debug, "debug", false, "Write debug entries to the log")

	root.AddCommand(
		newExplainCmd(g),
		newSummarizeCmd(g),
		newQuizCmd(g),
		newFlashcardsCmd(g),
		newHealthCmd(g),
		newModelsCmd(g),
		newDeckCmd(g),
		newLogsCmd(g),
	)
	return root
}

func newPrinter(cmd *cobra.Command) *cli.Printer {
	return cli.NewPrinter(cmd.OutOrStdout(), !color.NoColor)
}

// prepare trims input and enforces its limit, warning on stderr when the
// input was cut.
func prepare(cmd *cobra.Command, raw string, limit int, what string) (string, error) {
	text, truncated, err := backend.PrepareInput(raw, limit)
	if err != nil {
		return "", fmt.Errorf("%s: %w", what, err)
	}
	if truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s trimmed to %d characters\n", what, limit)
	}
	return text, nil
}

func oneOf(flag, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid --%s %q (want one of %s)", flag, value, strings.Join(allowed, ", "))
}

func newExplainCmd(g *globalFlags) *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "explain <topic>",
		Short: "Explain a topic at a chosen level",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := make([]string, 0, len(state.Difficulties))
			for _, d := range state.Difficulties {
				levels = append(levels, string(d))
			}
			if err := oneOf("difficulty", difficulty, levels); err != nil {
				return err
			}
			topic, err := prepare(cmd, strings.Join(args, " "), backend.TopicLimit, "topic")
			if err != nil {
				return err
			}

			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			resp, err := env.Client.Explain(cmd.Context(), backend.ExplainRequest{
				Topic:      topic,
				Difficulty: difficulty,
				Model:      env.Store.Snapshot().Model,
			})
			if err != nil {
				return fmt.Errorf("generate explanation: %w", err)
			}
			newPrinter(cmd).Explanation(resp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(state.Beginner), "beginner, intermediate or advanced")
	return cmd
}

func newSummarizeCmd(g *globalFlags) *cobra.Command {
	var length string

	cmd := &cobra.Command{
		Use:   "summarize [file|-]",
		Short: "Summarize notes from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oneOf("length", length, backend.SummaryLengths); err != nil {
				return err
			}
			raw, err := cli.ReadInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			notes, err := prepare(cmd, raw, backend.NotesLimit, "notes")
			if err != nil {
				return err
			}

			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			resp, err := env.Client.Summarize(cmd.Context(), backend.SummarizeRequest{
				Notes:  notes,
				Length: length,
				Model:  env.Store.Snapshot().Model,
			})
			if err != nil {
				return fmt.Errorf("generate summary: %w", err)
			}
			newPrinter(cmd).Summary(resp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&length, "length", "l", backend.DefaultSummaryLength, "short, medium or long")
	return cmd
}

func newQuizCmd(g *globalFlags) *cobra.Command {
	var (
		quizType   string
		difficulty string
		count      int
		answers    bool
	)

	cmd := &cobra.Command{
		Use:   "quiz [file|-]",
		Short: "Generate a quiz from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oneOf("type", quizType, backend.QuizTypes); err != nil {
				return err
			}
			if err := oneOf("difficulty", difficulty, backend.QuizDifficulties); err != nil {
				return err
			}
			raw, err := cli.ReadInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			content, err := prepare(cmd, raw, backend.QuizContentLimit, "content")
			if err != nil {
				return err
			}

			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			resp, err := env.Client.Quiz(cmd.Context(), backend.QuizRequest{
				Content:    content,
				Type:       quizType,
				Difficulty: difficulty,
				Count:      backend.ClampCount(count, backend.DefaultQuizCount, backend.MaxQuizCount),
				Model:      env.Store.Snapshot().Model,
			})
			if err != nil {
				return fmt.Errorf("generate quiz: %w", err)
			}
			newPrinter(cmd).Quiz(resp, answers)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&quizType, "type", "t", backend.DefaultQuizType, strings.Join(backend.QuizTypes, ", "))
	f.StringVarP(&difficulty, "difficulty", "d", backend.DefaultQuizDifficulty, strings.Join(backend.QuizDifficulties, ", "))
	f.IntVarP(&count, "count", "n", backend.DefaultQuizCount, fmt.Sprintf("Number of questions (1-%d)", backend.MaxQuizCount))
	f.BoolVarP(&answers, "answers", "a", false, "Show answers")
	return cmd
}

func newFlashcardsCmd(g *globalFlags) *cobra.Command {
	var (
		count int
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "flashcards [file|-]",
		Short: "Generate flashcards from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cli.ReadInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			content, err := prepare(cmd, raw, backend.FlashcardContentLimit, "content")
			if err != nil {
				return err
			}

			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			resp, err := env.Client.Flashcards(cmd.Context(), backend.FlashcardsRequest{
				Content: content,
				Count:   backend.ClampCount(count, backend.DefaultFlashcardCount, backend.MaxFlashcardCount),
				Model:   env.Store.Snapshot().Model,
			})
			if err != nil {
				return fmt.Errorf("generate flashcards: %w", err)
			}
			newPrinter(cmd).Flashcards(resp.Flashcards)

			if save && len(resp.Flashcards) > 0 {
				if err := env.Prefs.SaveFlashcards(resp.Flashcards); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved %d flashcards\n", len(resp.Flashcards))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", backend.DefaultFlashcardCount, fmt.Sprintf("Number of cards (1-%d)", backend.MaxFlashcardCount))
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Save the deck for the TUI")
	return cmd
}

func newHealthCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend and inference engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			snap := env.Store.Snapshot()
			health, healthErr := env.Client.CheckHealth(cmd.Context())
			var inferenceErr error
			if healthErr == nil {
				inferenceErr = env.Client.CheckInference(cmd.Context(), snap.APIURL)
			}
			newPrinter(cmd).Health(snap.BackendURL, health, healthErr, snap.APIURL, inferenceErr)
			if healthErr != nil {
				return fmt.Errorf("backend unavailable")
			}
			return nil
		},
	}
}

func newModelsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models the backend can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			models, err := env.Client.Models(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: model list unavailable (%v), showing built-in list\n", err)
			}
			// Specs are optional; older backends have no /model-info.
			info, err := env.Client.ModelInfo(cmd.Context())
			if err != nil {
				env.Logger.Debug("model info unavailable", zap.Error(err))
			}
			newPrinter(cmd).Models(models, env.Store.Snapshot().Model, info.Specs)
			return nil
		},
	}
}

func newDeckCmd(g *globalFlags) *cobra.Command {
	deck := &cobra.Command{
		Use:   "deck",
		Short: "Work with the saved flashcard deck",
	}

	var format string
	export := &cobra.Command{
		Use:   "export",
		Short: "Print the saved deck as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			defer env.Close()

			res := env.Prefs.LoadFlashcards()
			if !res.OK() {
				if res.Err != nil {
					return fmt.Errorf("no saved flashcards: %w", res.Err)
				}
				return fmt.Errorf("no saved flashcards")
			}
			return cli.ExportDeck(cmd.OutOrStdout(), res.Value, format)
		},
	}
	export.Flags().StringVarP(&format, "format", "f", cli.FormatJSON, "json or yaml")

	deck.AddCommand(export)
	return deck
}

func newLogsCmd(g *globalFlags) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the client log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(g.options())
			if err != nil {
				return err
			}
			// Read after closing so buffered entries are flushed.
			path := env.Config.LogFile
			env.Close()

			entries, err := logtail.ReadEntries(path, lines)
			if err != nil {
				return err
			}
			newPrinter(cmd).Logs(entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines (0 for all)")
	return cmd
}
