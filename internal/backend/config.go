package backend

import (
	"time"

	"github.com/rs/zerolog"

	"chatbot/internal/fixtures"
	"chatbot/pkg/types"
)

// DefaultVersion is reported by Health when Config.Version is empty.
const DefaultVersion = "0.1.0"

// Config encapsulates all tunables for Service construction.
type Config struct {
	Fixtures fixtures.Set
	Version  string
	// ChatDelay is an artificial latency added to every chat, so clients can
	// exercise their loading state. Zero disables it.
	ChatDelay time.Duration
	Publisher EventPublisher
	Logger    *zerolog.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

// New constructs a Service from cfg, applying defaults for unset fields.
func New(cfg Config) *Service {
	s := &Service{
		models:    append([]types.ModelCard{}, cfg.Fixtures.Models...),
		stream:    append([]types.ChatChunk(nil), cfg.Fixtures.Stream...),
		version:   cfg.Version,
		chatDelay: cfg.ChatDelay,
		events:    cfg.Publisher,
		now:       cfg.Now,
		log:       zerolog.Nop(),
	}
	if s.version == "" {
		s.version = DefaultVersion
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	}
	if s.chatDelay < 0 {
		s.chatDelay = 0
	}
	s.startTime = s.now()
	return s
}
