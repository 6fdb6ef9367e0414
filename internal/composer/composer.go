// Package composer owns the prompt state of a chat session and turns it into
// backend requests, allowing at most one request in flight.
package composer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chatbot/internal/apiclient"
	"chatbot/internal/chatconfig"
	"chatbot/pkg/types"
)

// Default texts shown in a fresh session.
const (
	DefaultPrompt       = "Explain how this mock backend will evolve once llama.cpp is wired in."
	DefaultSystemPrompt = "You are a helpful local assistant."
)

// ChatCreator sends a chat request. *apiclient.Client satisfies it.
type ChatCreator interface {
	CreateChat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
}

// State of the response region.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateHasData
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateHasData:
		return "has-data"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Composer holds the ephemeral text state of one chat session.
type Composer struct {
	mu           sync.Mutex
	store        *chatconfig.Store
	api          ChatCreator
	log          zerolog.Logger
	prompt       string
	systemPrompt string
	selected     string
	models       []types.ModelCard

	pending  *Submission
	response *types.ChatResponse
	err      error
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Composer) { c.log = l } }

// WithPrompts overrides the initial prompt and system prompt.
func WithPrompts(prompt, systemPrompt string) Option {
	return func(c *Composer) {
		c.prompt = prompt
		c.systemPrompt = systemPrompt
	}
}

// New returns a composer reading sampling parameters from store and sending
// requests through api.
func New(store *chatconfig.Store, api ChatCreator, opts ...Option) *Composer {
	c := &Composer{
		store:        store,
		api:          api,
		log:          zerolog.Nop(),
		prompt:       DefaultPrompt,
		systemPrompt: DefaultSystemPrompt,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetPrompt replaces the user prompt text.
func (c *Composer) SetPrompt(p string) {
	c.mu.Lock()
	c.prompt = p
	c.mu.Unlock()
}

// SetSystemPrompt replaces the system prompt text.
func (c *Composer) SetSystemPrompt(p string) {
	c.mu.Lock()
	c.systemPrompt = p
	c.mu.Unlock()
}

// Prompt returns the current user prompt, untrimmed.
func (c *Composer) Prompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompt
}

// SystemPrompt returns the current system prompt.
func (c *Composer) SystemPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.systemPrompt
}

// SetModels records the fetched model list used for the fallback selection.
func (c *Composer) SetModels(models []types.ModelCard) {
	c.mu.Lock()
	c.models = append([]types.ModelCard(nil), models...)
	c.mu.Unlock()
}

// Models returns a copy of the known models.
func (c *Composer) Models() []types.ModelCard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.ModelCard(nil), c.models...)
}

// Select records an explicit model choice. An empty id clears it.
func (c *Composer) Select(id string) {
	c.mu.Lock()
	c.selected = id
	c.mu.Unlock()
}

// ActiveModel resolves the model a submission would target.
func (c *Composer) ActiveModel() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ResolveActiveModel(c.models, c.selected)
}

// CanSubmit reports whether Submit would start a request right now.
func (c *Composer) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, _ := ResolveActiveModel(c.models, c.selected)
	return c.pending == nil && CanSubmit(id, c.prompt)
}

// Pending reports whether a submission is in flight.
func (c *Composer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// State returns the response region state.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.pending != nil:
		return StateLoading
	case c.err != nil:
		return StateFailed
	case c.response != nil:
		return StateHasData
	}
	return StateIdle
}

// Response returns the last successful response, if any.
func (c *Composer) Response() (types.ChatResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.response == nil {
		return types.ChatResponse{}, false
	}
	return *c.response, true
}

// Err returns the error of the last completed submission.
func (c *Composer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Submission is one pending chat round trip.
type Submission struct {
	ID      string
	Request types.ChatRequest
	api     ChatCreator
	log     zerolog.Logger
}

// Result is the outcome of Submission.Run.
type Result struct {
	ID       string
	Response types.ChatResponse
	Err      error
}

// Run performs the request. It does not touch composer state, so it may run
// on any goroutine; hand the result back with Complete.
func (s *Submission) Run(ctx context.Context) Result {
	start := time.Now()
	resp, err := s.api.CreateChat(apiclient.WithRequestID(ctx, s.ID), s.Request)
	ev := s.log.Info()
	if err != nil {
		ev = s.log.Warn().Err(err)
	}
	ev.Str("submission", s.ID).Str("model", s.Request.ModelID).Int("chunks", len(resp.Stream)).Dur("dur", time.Since(start)).Msg("chat submission finished")
	return Result{ID: s.ID, Response: resp, Err: err}
}

// Submit starts a submission. It returns ok=false, and sends nothing, when no
// model can be resolved, the trimmed prompt is empty, or another submission
// is still pending.
func (c *Composer) Submit() (*Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.log.Debug().Str("pending", c.pending.ID).Msg("submit ignored: request in flight")
		return nil, false
	}
	id, _ := ResolveActiveModel(c.models, c.selected)
	if !CanSubmit(id, c.prompt) {
		return nil, false
	}
	cfg := types.DefaultChatConfig()
	if c.store != nil {
		cfg = c.store.Config()
	}
	s := &Submission{
		ID:      uuid.NewString(),
		Request: BuildRequest(id, c.prompt, c.systemPrompt, cfg),
		api:     c.api,
		log:     c.log,
	}
	c.pending = s
	c.response = nil
	c.err = nil
	c.log.Debug().Str("submission", s.ID).Str("model", id).Msg("chat submission started")
	return s, true
}

// Complete stores the result of the pending submission. Results that do not
// belong to the pending submission (e.g. after Abandon) are discarded and
// Complete returns false.
func (c *Composer) Complete(r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil || c.pending.ID != r.ID {
		c.log.Debug().Str("submission", r.ID).Msg("discarding stale chat result")
		return false
	}
	c.pending = nil
	if r.Err != nil {
		c.err = r.Err
		return true
	}
	resp := r.Response
	c.response = &resp
	return true
}

// Abandon forgets the pending submission; its result will be discarded.
func (c *Composer) Abandon() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

// SubmitAndWait submits and blocks for the result. sent is false when Submit
// was a no-op.
func (c *Composer) SubmitAndWait(ctx context.Context) (resp types.ChatResponse, sent bool, err error) {
	s, ok := c.Submit()
	if !ok {
		return types.ChatResponse{}, false, nil
	}
	r := s.Run(ctx)
	c.Complete(r)
	return r.Response, true, r.Err
}
