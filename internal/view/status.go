package view

import "strings"

// Tone colors a status card.
type Tone int

const (
	ToneSuccess Tone = iota
	ToneWarning
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneError:
		return "error"
	}
	return "unknown"
}

// RenderStatusCard renders a small titled tile. subtitle may be empty.
func RenderStatusCard(th Theme, title, value, subtitle string, tone Tone) string {
	if _, ok := th.ToneCards[tone]; !ok {
		tone = ToneSuccess
	}
	lines := []string{
		th.Muted.Render(strings.ToUpper(title)),
		th.ToneText[tone].Render(value),
	}
	if subtitle != "" {
		lines = append(lines, th.Faint.Render(subtitle))
	}
	return th.ToneCards[tone].Render(strings.Join(lines, "\n"))
}

// HealthTone maps a query's progress to a tone: pending is a warning, a
// failure is an error, anything else is success.
func HealthTone(pending bool, err error) Tone {
	switch {
	case pending:
		return ToneWarning
	case err != nil:
		return ToneError
	}
	return ToneSuccess
}
