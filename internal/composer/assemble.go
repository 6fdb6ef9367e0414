package composer

import (
	"strings"

	"chatbot/pkg/types"
)

// ResolveActiveModel returns selected when set, otherwise the first model's id.
// ok is false when no id can be resolved.
func ResolveActiveModel(models []types.ModelCard, selected string) (id string, ok bool) {
	if selected != "" {
		return selected, true
	}
	if len(models) > 0 && models[0].ID != "" {
		return models[0].ID, true
	}
	return "", false
}

// CanSubmit reports whether a request may be sent: a model id is known and the
// prompt has non-whitespace content.
func CanSubmit(activeModelID, prompt string) bool {
	return activeModelID != "" && strings.TrimSpace(prompt) != ""
}

// BuildRequest assembles a ChatRequest. The prompt is sent as typed; trimming
// only gates submission.
func BuildRequest(activeModelID, prompt, systemPrompt string, cfg types.ChatConfig) types.ChatRequest {
	return types.ChatRequest{
		ModelID:      activeModelID,
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
		Config:       cfg,
	}
}
