package view

import (
	"fmt"
	"strconv"
	"strings"

	"chatbot/pkg/types"
)

// EmptyModelsText is shown when the registry has no models.
const EmptyModelsText = "No models registered yet."

// Selection markers, meaningful without color.
const (
	markSelected   = "●"
	markUnselected = "○"
)

// ModelMeta formats the one-line summary under a model card.
func ModelMeta(m types.ModelCard) string {
	return fmt.Sprintf("%s • %d ctx • %sB params", m.Quantization, m.ContextLength, strconv.FormatFloat(m.ParameterCount, 'f', -1, 64))
}

// RenderModelCard renders one card.
func RenderModelCard(th Theme, m types.ModelCard, selected bool) string {
	mark, style := markUnselected, th.Card
	if selected {
		mark, style = markSelected, th.CardSelected
	}
	lines := []string{th.CardTitle.Render(mark + " " + m.Name)}
	if m.Description != "" {
		lines = append(lines, th.Muted.Render(m.Description))
	}
	lines = append(lines, th.Faint.Render(ModelMeta(m)))
	return style.Render(strings.Join(lines, "\n"))
}

// RenderModelList renders every card in order, marking selectedID.
// Selection itself belongs to the caller.
func RenderModelList(th Theme, models []types.ModelCard, selectedID string) string {
	if len(models) == 0 {
		return th.Muted.Render(EmptyModelsText)
	}
	cards := make([]string, 0, len(models))
	for _, m := range models {
		cards = append(cards, RenderModelCard(th, m, m.ID == selectedID))
	}
	return strings.Join(cards, "\n")
}
