package backend

import (
	"fmt"

	"chatbot/pkg/types"
)

// Limits accepted by the mock chat endpoint.
const (
	minTemperature = 0.0
	maxTemperature = 2.0
	minTopP        = 0.0
	maxTopP        = 1.0
	maxMaxTokens   = 4096
	minPenalty     = -2.0
	maxPenalty     = 2.0
)

// validateRequest checks prompt length and config ranges. model_id is any
// string here; an empty one is rejected later as an unknown model.
func validateRequest(req types.ChatRequest) error {
	if len(req.Prompt) < 1 {
		return ErrValidation("prompt", "String should have at least 1 character")
	}
	c := req.Config
	if err := inRange("config.temperature", c.Temperature, minTemperature, maxTemperature); err != nil {
		return err
	}
	if err := inRange("config.top_p", c.TopP, minTopP, maxTopP); err != nil {
		return err
	}
	if c.MaxTokens <= 0 || c.MaxTokens > maxMaxTokens {
		return ErrValidation("config.max_tokens", fmt.Sprintf("must be in (0, %d]", maxMaxTokens))
	}
	if err := inRange("config.presence_penalty", c.PresencePenalty, minPenalty, maxPenalty); err != nil {
		return err
	}
	return inRange("config.frequency_penalty", c.FrequencyPenalty, minPenalty, maxPenalty)
}

func inRange(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return ErrValidation(field, fmt.Sprintf("must be in [%g, %g]", lo, hi))
	}
	return nil
}
