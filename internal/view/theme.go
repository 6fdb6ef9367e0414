// Package view renders the chat UI regions (status tiles, model list, config
// form, response panel) as styled strings.
package view

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette
var (
	colorBrand   = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	colorFaint   = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}
	colorText    = lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#F1F5F9"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#6EE7B7"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FCD34D"}
	colorError   = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FDA4AF"}
)

// Theme holds the styles used by every render function.
type Theme struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Faint   lipgloss.Style
	Text    lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style

	ToneCards map[Tone]lipgloss.Style
	ToneText  map[Tone]lipgloss.Style

	Token      lipgloss.Style
	FinalToken lipgloss.Style
	Error      lipgloss.Style

	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	Help         lipgloss.Style
}

// NewTheme builds a theme for the terminal behind w.
func NewTheme(w io.Writer) Theme {
	return NewThemeWithRenderer(lipgloss.NewRenderer(w))
}

// PlainTheme renders without any escape sequences. Used for tests, pipes and
// the one-shot CLI commands.
func PlainTheme() Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewThemeWithRenderer(r)
}

// NewThemeWithRenderer builds all styles from r.
func NewThemeWithRenderer(r *lipgloss.Renderer) Theme {
	card := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	panel := r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	return Theme{
		Heading: r.NewStyle().Foreground(colorMuted).Bold(true),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Faint:   r.NewStyle().Foreground(colorFaint),
		Text:    r.NewStyle().Foreground(colorText),

		Card:         card,
		CardSelected: card.BorderForeground(colorBrand),
		CardTitle:    r.NewStyle().Foreground(colorText).Bold(true),

		ToneCards: map[Tone]lipgloss.Style{
			ToneSuccess: card.BorderForeground(colorSuccess),
			ToneWarning: card.BorderForeground(colorWarning),
			ToneError:   card.BorderForeground(colorError),
		},
		ToneText: map[Tone]lipgloss.Style{
			ToneSuccess: r.NewStyle().Foreground(colorSuccess).Bold(true),
			ToneWarning: r.NewStyle().Foreground(colorWarning).Bold(true),
			ToneError:   r.NewStyle().Foreground(colorError).Bold(true),
		},

		Token:      r.NewStyle().Foreground(colorText),
		FinalToken: r.NewStyle().Foreground(colorText).Bold(true),
		Error:      r.NewStyle().Foreground(colorError),

		Field:        r.NewStyle().Foreground(colorMuted),
		FieldFocused: r.NewStyle().Foreground(colorBrand).Bold(true),
		Panel:        panel,
		PanelFocused: panel.BorderForeground(colorBrand),
		Help:         r.NewStyle().Foreground(colorFaint),
	}
}
