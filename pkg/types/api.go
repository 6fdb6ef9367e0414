package types

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
	// Backend version string.
	// example: 0.1.0
	Version string `json:"version" example:"0.1.0"`
	// Server time, RFC3339.
	// example: 2025-08-11T12:00:00Z
	Timestamp string `json:"timestamp" example:"2025-08-11T12:00:00Z"`
}

// ChatRequest is the payload of POST /mock/chat.
type ChatRequest struct {
	// Identifier matching a registered model.
	// example: llama-3.1-8b-instruct-q4
	ModelID string `json:"model_id" example:"llama-3.1-8b-instruct-q4"`
	// User prompt.
	// example: Explain how this mock backend will evolve.
	Prompt string `json:"prompt" example:"Explain how this mock backend will evolve."`
	// example: You are a helpful local assistant.
	SystemPrompt string `json:"system_prompt" example:"You are a helpful local assistant."`
	// Sampling parameters.
	Config ChatConfig `json:"config"`
}

// ChatResponse carries the full chunk sequence for one chat request.
// Despite the field name the stream is delivered in one batch.
type ChatResponse struct {
	// example: llama-3.1-8b-instruct-q4
	ModelID string      `json:"model_id" example:"llama-3.1-8b-instruct-q4"`
	Stream  []ChatChunk `json:"stream"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
