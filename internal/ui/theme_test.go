package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/concepta/internal/notify"
	"github.com/five82/concepta/internal/state"
)

func TestGetTheme(t *testing.T) {
	if got := GetTheme(state.ThemeDark).Name; got != "dark" {
		t.Fatalf("GetTheme(dark).Name = %q, want dark", got)
	}
	if got := GetTheme(state.ThemeLight).Name; got != "light" {
		t.Fatalf("GetTheme(light).Name = %q, want light", got)
	}
	if got := GetTheme("sepia").Name; got != "dark" {
		t.Fatalf("GetTheme(unknown).Name = %q, want dark", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for name, th := range themes {
		colors := map[string]string{
			"Background":  th.Background,
			"Surface":     th.Surface,
			"Border":      th.Border,
			"BorderFocus": th.BorderFocus,
			"Text":        th.Text,
			"Muted":       th.Muted,
			"Accent":      th.Accent,
			"Success":     th.Success,
			"Warning":     th.Warning,
			"Danger":      th.Danger,
			"Info":        th.Info,
		}
		for field, value := range colors {
			if value == "" {
				t.Errorf("theme %s: %s is empty", name, field)
			}
		}
	}
}

func TestKindStyleUsesThemeColors(t *testing.T) {
	th := GetTheme(state.ThemeDark)
	styles := th.Styles()

	cases := map[notify.Kind]string{
		notify.Success: th.Success,
		notify.Error:   th.Danger,
		notify.Warning: th.Warning,
		notify.Info:    th.Info,
	}
	for kind, want := range cases {
		got := styles.KindStyle(kind).GetForeground()
		if got != lipgloss.Color(want) {
			t.Fatalf("KindStyle(%s) foreground = %v, want %v", kind, got, want)
		}
	}
	if got := styles.KindStyle("other").GetForeground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("KindStyle(other) foreground = %v, want %v", got, th.Muted)
	}
}

func TestConnectionStyle(t *testing.T) {
	th := GetTheme(state.ThemeLight)
	styles := th.Styles()
	if got := styles.ConnectionStyle(state.Disconnected).GetForeground(); got != lipgloss.Color(th.Danger) {
		t.Fatalf("ConnectionStyle(disconnected) = %v, want %v", got, th.Danger)
	}
	if got := styles.ConnectionStyle(state.Connected).GetForeground(); got != lipgloss.Color(th.Success) {
		t.Fatalf("ConnectionStyle(connected) = %v, want %v", got, th.Success)
	}
}
