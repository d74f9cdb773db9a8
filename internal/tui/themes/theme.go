// Package themes holds the color schemes of the history browser.
package themes

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Section     lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	Balance     lipgloss.Style
	Card        lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
	Prompt      lipgloss.Style
}

type palette struct {
	primary    lipgloss.Color
	foreground lipgloss.Color
	background lipgloss.Color
	muted      lipgloss.Color
	border     lipgloss.Color
	success    lipgloss.Color
	danger     lipgloss.Color
	info       lipgloss.Color
}

func newTheme(p palette) Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.muted).
			MarginTop(1),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.background).
			Bold(true),
		Income: lipgloss.NewStyle().
			Foreground(p.success),
		Expense: lipgloss.NewStyle().
			Foreground(p.danger),
		Balance: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 2),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info),
		StatusError: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    lipgloss.Color("#2d9cdb"),
	foreground: lipgloss.Color("#fafafa"),
	background: lipgloss.Color("#1a1a1a"),
	muted:      lipgloss.Color("#737373"),
	border:     lipgloss.Color("#404040"),
	success:    lipgloss.Color("#10b981"),
	danger:     lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    lipgloss.Color("#cba6f7"),
	foreground: lipgloss.Color("#cdd6f4"),
	background: lipgloss.Color("#1e1e2e"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	success:    lipgloss.Color("#a6e3a1"),
	danger:     lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
})

var registry = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// ByName looks a theme up by its configured name, ignoring case.
func ByName(name string) (Theme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, true
	}
	theme, ok := registry[name]
	return theme, ok
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
