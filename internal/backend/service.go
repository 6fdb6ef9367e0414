package backend

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chatbot/pkg/types"
)

// Service serves health, the model registry and canned chat streams.
// Fixture data is read-only after New.
type Service struct {
	mu        sync.RWMutex
	models    []types.ModelCard
	stream    []types.ChatChunk
	version   string
	chatDelay time.Duration
	events    EventPublisher
	now       func() time.Time
	startTime time.Time
	log       zerolog.Logger
	served    uint64
}

// Health returns a heartbeat snapshot.
func (s *Service) Health() types.HealthResponse {
	return types.HealthResponse{
		Status:    "ok",
		Version:   s.version,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
}

// Ready reports whether the service can answer. The mock is ready as soon as
// it is constructed.
func (s *Service) Ready() bool { return true }

// ListModels returns a copy of the registered model cards.
func (s *Service) ListModels() []types.ModelCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ModelCard, len(s.models))
	copy(out, s.models)
	return out
}

// Uptime since construction.
func (s *Service) Uptime() time.Duration { return s.now().Sub(s.startTime) }

// ChatsServed is the number of successful chats.
func (s *Service) ChatsServed() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.served
}

func (s *Service) getModelByID(id string) (types.ModelCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.ID == id {
			return m, true
		}
	}
	return types.ModelCard{}, false
}
