package backend

import (
	"context"
	"time"

	"chatbot/pkg/types"
)

// Chat validates req and replays the fixture stream for the requested model.
// Unknown models yield a model-not-found error, invalid requests a
// validation error. When a chat delay is configured Chat waits for it or
// for ctx, whichever comes first.
func (s *Service) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	if err := validateRequest(req); err != nil {
		s.reject(req.ModelID, "invalid", err)
		return types.ChatResponse{}, err
	}
	if _, ok := s.getModelByID(req.ModelID); !ok {
		err := ErrModelNotFound(req.ModelID)
		s.reject(req.ModelID, "unknown_model", err)
		return types.ChatResponse{}, err
	}
	if s.chatDelay > 0 {
		t := time.NewTimer(s.chatDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			s.reject(req.ModelID, "canceled", ctx.Err())
			return types.ChatResponse{}, ctx.Err()
		case <-t.C:
		}
	}

	s.mu.Lock()
	stream := make([]types.ChatChunk, len(s.stream))
	copy(stream, s.stream)
	s.served++
	s.mu.Unlock()

	chatsTotal.WithLabelValues("served").Inc()
	s.events.Publish(Event{Name: EventChatServed, ModelID: req.ModelID, Fields: map[string]any{"chunks": len(stream)}})
	s.log.Debug().Str("model", req.ModelID).Int("chunks", len(stream)).Msg("mock chat served")
	return types.ChatResponse{ModelID: req.ModelID, Stream: stream}, nil
}

func (s *Service) reject(modelID, reason string, err error) {
	chatsTotal.WithLabelValues(reason).Inc()
	s.events.Publish(Event{Name: EventChatRejected, ModelID: modelID, Fields: map[string]any{"reason": reason, "error": err.Error()}})
	s.log.Debug().Str("model", modelID).Str("reason", reason).Err(err).Msg("mock chat rejected")
}
