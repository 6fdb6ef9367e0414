package view

import (
	"strings"

	"chatbot/internal/composer"
	"chatbot/pkg/types"
)

// Placeholder texts of the response panel.
const (
	IdleText    = "Trigger a prompt to preview the mocked stream."
	LoadingText = "Streaming mock tokens…"
)

// FinalMarker prefixes the final chunk line; other lines get the same width of spaces.
const FinalMarker = "» "

// ResponseState is everything the response panel needs.
type ResponseState struct {
	State    composer.State
	Response types.ChatResponse
	Err      error
	// Spinner replaces the plain loading text when set.
	Spinner string
}

// Line is one rendered chunk.
type Line struct {
	Text  string
	Final bool
}

// ResponseLines returns one line per chunk in the order received. Chunks are
// not re-sorted by index.
func ResponseLines(resp types.ChatResponse) []Line {
	out := make([]Line, 0, len(resp.Stream))
	for _, c := range resp.Stream {
		out = append(out, Line{Text: c.Token, Final: c.IsFinal})
	}
	return out
}

// RenderResponse renders the panel for the given state.
func RenderResponse(th Theme, st ResponseState) string {
	switch st.State {
	case composer.StateLoading:
		if st.Spinner != "" {
			return th.Muted.Render(st.Spinner + " " + LoadingText)
		}
		return th.Muted.Render(LoadingText)
	case composer.StateFailed:
		msg := "Request failed"
		if st.Err != nil && st.Err.Error() != "" {
			msg = st.Err.Error()
		}
		return th.Error.Render("✗ " + msg)
	case composer.StateHasData:
		lines := ResponseLines(st.Response)
		rendered := make([]string, 0, len(lines))
		for _, l := range lines {
			if l.Final {
				rendered = append(rendered, th.FinalToken.Render(FinalMarker+l.Text))
				continue
			}
			rendered = append(rendered, th.Token.Render("  "+l.Text))
		}
		return strings.Join(rendered, "\n")
	}
	return th.Faint.Render(IdleText)
}
