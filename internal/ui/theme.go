package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/state"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and form panels
	SurfaceAlt string // Output panel
	FocusBg    string // Focused field

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		FocusPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		kindColors: map[notify.Kind]string{
			notify.Success: t.Success,
			notify.Error:   t.Danger,
			notify.Warning: t.Warning,
			notify.Info:    t.Info,
		},
		connColors: map[state.ConnectionStatus]string{
			state.Connecting:   t.Warning,
			state.Connected:    t.Success,
			state.Disconnected: t.Danger,
		},
		muted: t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style
	Heading     lipgloss.Style

	Header     lipgloss.Style
	Footer     lipgloss.Style
	Logo       lipgloss.Style
	Selected   lipgloss.Style
	Panel      lipgloss.Style
	FocusPanel lipgloss.Style

	kindColors map[notify.Kind]string
	connColors map[state.ConnectionStatus]string
	muted      string
}

// KindStyle returns the toast style for a notification kind.
func (s Styles) KindStyle(kind notify.Kind) lipgloss.Style {
	color := s.kindColors[kind]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(color)).
		Foreground(lipgloss.Color(color)).
		PaddingLeft(1)
}

// ConnectionStyle colors the connection indicator.
func (s Styles) ConnectionStyle(status state.ConnectionStatus) lipgloss.Style {
	color := s.connColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[state.Theme]Theme{
	state.ThemeDark:  nightfoxTheme(),
	state.ThemeLight: dawnfoxTheme(),
}

// GetTheme returns the palette for a theme, defaulting to dark.
func GetTheme(name state.Theme) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "dark",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderMuted: "#212e3f", // bg2
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func dawnfoxTheme() Theme {
	// Dawnfox palette, the light variant of Nightfox.
	return Theme{
		Name: "light",

		Background: "#ebe5df", // bg0
		Surface:    "#faf4ed", // bg1
		SurfaceAlt: "#ebe0df", // bg2
		FocusBg:    "#ebdfe4", // bg3

		SelectionBg:   "#d0d8d8", // sel0
		SelectionText: "#575279", // fg1

		Border:      "#bdbfc9", // bg4
		BorderMuted: "#ebe0df", // bg2
		BorderFocus: "#286983", // blue

		Text:    "#575279", // fg1
		Muted:   "#9893a5", // comment
		Faint:   "#6e6a86", // fg3
		Accent:  "#286983", // blue
		Success: "#618774", // green
		Warning: "#ea9d34", // yellow
		Danger:  "#b4637a", // red
		Info:    "#56949f", // cyan
	}
}
