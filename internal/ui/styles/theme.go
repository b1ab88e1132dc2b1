// Package styles provides the lipgloss styles shared by branchwipe's UI.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // titles, borders
	Accent  color.Color // selected row
	Success color.Color // deleted confirmation
	Error   color.Color // refused deletes, failed refresh
	Muted   color.Color // help, counters
	Normal  color.Color // branch names
}

var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
	}

	// DraculaTheme is based on the Dracula color scheme
	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Accent:  lipgloss.Color("#ff79c6"), // pink
		Success: lipgloss.Color("#50fa7b"), // green
		Error:   lipgloss.Color("#ff5555"), // red
		Muted:   lipgloss.Color("#6272a4"), // comment
		Normal:  lipgloss.Color("#f8f8f2"), // foreground
	}

	// NordTheme is based on the Nord color scheme
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"), // nord6
	}

	// NoneTheme renders without colors; bold and underline survive
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
	}
)

var presets = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
	"nord":    NordTheme,
	"none":    NoneTheme,
}

// ThemeByName returns the preset with the given name, or DefaultTheme and
// false for an unknown name.
func ThemeByName(name string) (Theme, bool) {
	t, ok := presets[name]
	if !ok {
		return DefaultTheme, false
	}
	return t, true
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Match    lipgloss.Style // fuzzy-matched characters
}

// New builds Styles for t.
func New(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:   lipgloss.NewStyle().Foreground(t.Accent),
		Selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Normal:   lipgloss.NewStyle().Foreground(t.Normal),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Match:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true),
	}
}

// ForName is New(ThemeByName(name)) ignoring unknown names.
func ForName(name string) Styles {
	t, _ := ThemeByName(name)
	return New(t)
}
