package types

// ModelCard describes an inference model advertised by the backend.
type ModelCard struct {
	// Stable identifier for the model.
	// example: llama-3.1-8b-instruct-q4
	ID string `json:"id" yaml:"id" example:"llama-3.1-8b-instruct-q4"`
	// Human-friendly name.
	// example: Llama 3.1 8B Instruct
	Name string `json:"name" yaml:"name" example:"Llama 3.1 8B Instruct"`
	// GGUF quantization preset.
	// example: Q4_K_M
	Quantization string `json:"quantization" yaml:"quantization" example:"Q4_K_M"`
	// Maximum context tokens supported by the model.
	// example: 8192
	ContextLength int `json:"context_length" yaml:"context_length" example:"8192"`
	// Parameter count in billions.
	// example: 8
	ParameterCount float64 `json:"parameter_count" yaml:"parameter_count" example:"8"`
	// Free-form description.
	Description string `json:"description" yaml:"description"`
}

// ChatConfig holds the sampling parameters sent with every chat request.
// All five fields are always present; there is no partial ChatConfig.
type ChatConfig struct {
	// example: 0.7
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature" example:"0.7"`
	// example: 0.85
	TopP float64 `json:"top_p" yaml:"top_p" toml:"top_p" example:"0.85"`
	// example: 256
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" example:"256"`
	// example: 0
	PresencePenalty float64 `json:"presence_penalty" yaml:"presence_penalty" toml:"presence_penalty" example:"0"`
	// example: 0
	FrequencyPenalty float64 `json:"frequency_penalty" yaml:"frequency_penalty" toml:"frequency_penalty" example:"0"`
}

// Defaults for a fresh session.
const (
	DefaultTemperature      = 0.7
	DefaultTopP             = 0.85
	DefaultMaxTokens        = 256
	DefaultPresencePenalty  = 0.0
	DefaultFrequencyPenalty = 0.0
)

// DefaultChatConfig returns the configuration a session starts with.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		Temperature:      DefaultTemperature,
		TopP:             DefaultTopP,
		MaxTokens:        DefaultMaxTokens,
		PresencePenalty:  DefaultPresencePenalty,
		FrequencyPenalty: DefaultFrequencyPenalty,
	}
}

// ChatConfigPatch is a partial ChatConfig. Nil fields are left untouched by Apply.
type ChatConfigPatch struct {
	Temperature      *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty"`
	TopP             *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty" toml:"top_p,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty" yaml:"presence_penalty,omitempty" toml:"presence_penalty,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty" toml:"frequency_penalty,omitempty"`
}

// Apply returns c with every non-nil field of p written over it.
func (p ChatConfigPatch) Apply(c ChatConfig) ChatConfig {
	if p.Temperature != nil {
		c.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		c.TopP = *p.TopP
	}
	if p.MaxTokens != nil {
		c.MaxTokens = *p.MaxTokens
	}
	if p.PresencePenalty != nil {
		c.PresencePenalty = *p.PresencePenalty
	}
	if p.FrequencyPenalty != nil {
		c.FrequencyPenalty = *p.FrequencyPenalty
	}
	return c
}

// IsEmpty reports whether the patch supplies no fields.
func (p ChatConfigPatch) IsEmpty() bool {
	return p.Temperature == nil && p.TopP == nil && p.MaxTokens == nil &&
		p.PresencePenalty == nil && p.FrequencyPenalty == nil
}

// ChatChunk is one fragment of a chat response.
type ChatChunk struct {
	// example: Hello
	Token string `json:"token" yaml:"token" example:"Hello"`
	// 0-based position within the stream.
	// example: 0
	Index int `json:"index" yaml:"index" example:"0"`
	// True on exactly the last chunk.
	// example: false
	IsFinal bool `json:"is_final" yaml:"is_final" example:"false"`
}
