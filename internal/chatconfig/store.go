// Package chatconfig holds the session's inference configuration and applies
// partial merge updates to it.
package chatconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"chatbot/pkg/types"
)

// Field names accepted by SetField, in display order.
var FieldNames = []string{"temperature", "top_p", "max_tokens", "presence_penalty", "frequency_penalty"}

// Store owns the current ChatConfig. Updates are serialized; subscribers are
// called after every change with the new value, in update order. Subscribers
// must not update the store themselves.
type Store struct {
	// notifyMu spans apply + notify so notifications keep update order.
	notifyMu sync.Mutex
	mu       sync.Mutex
	cfg    types.ChatConfig
	nextID int
	subs   map[int]func(types.ChatConfig)
	log    zerolog.Logger
}

// New returns a store initialized to types.DefaultChatConfig.
func New(log zerolog.Logger) *Store {
	return &Store{
		cfg:  types.DefaultChatConfig(),
		subs: make(map[int]func(types.ChatConfig)),
		log:  log,
	}
}

// Config returns the current configuration.
func (s *Store) Config() types.ChatConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Update merges p into the current configuration and returns the result.
// Fields absent from p keep their previous value.
func (s *Store) Update(p types.ChatConfigPatch) types.ChatConfig {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.cfg = p.Apply(s.cfg)
	cfg := s.cfg
	subs := s.subscribers()
	s.mu.Unlock()

	s.log.Debug().Interface("config", cfg).Msg("chat config updated")
	for _, fn := range subs {
		fn(cfg)
	}
	return cfg
}

// Reset restores the defaults.
func (s *Store) Reset() types.ChatConfig {
	d := types.DefaultChatConfig()
	return s.Update(types.ChatConfigPatch{
		Temperature:      &d.Temperature,
		TopP:             &d.TopP,
		MaxTokens:        &d.MaxTokens,
		PresencePenalty:  &d.PresencePenalty,
		FrequencyPenalty: &d.FrequencyPenalty,
	})
}

// SetField parses value and updates the single named field.
// Values are not range checked.
func (s *Store) SetField(name, value string) (types.ChatConfig, error) {
	p, err := ParseField(name, value)
	if err != nil {
		return s.Config(), err
	}
	return s.Update(p), nil
}

// Subscribe registers fn to be called after each update. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(types.ChatConfig)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// subscribers returns the callbacks in registration order. Caller holds mu.
func (s *Store) subscribers() []func(types.ChatConfig) {
	out := make([]func(types.ChatConfig), 0, len(s.subs))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// ParseField builds a one-field patch from a field name and its text value.
func ParseField(name, value string) (types.ChatConfigPatch, error) {
	var p types.ChatConfigPatch
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, " ", "_")))
	value = strings.TrimSpace(value)
	if !isField(key) {
		return p, fmt.Errorf("unknown config field %q", name)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return p, fmt.Errorf("%s: invalid number %q", key, value)
	}
	if key == "max_tokens" {
		// "256.0" is accepted the way a numeric form input sends it
		if f != math.Trunc(f) {
			return p, fmt.Errorf("max_tokens: %q is not a whole number", value)
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return p, fmt.Errorf("max_tokens: %q out of integer range", value)
		}
		n := int(f)
		p.MaxTokens = &n
		return p, nil
	}
	switch key {
	case "temperature":
		p.Temperature = &f
	case "top_p":
		p.TopP = &f
	case "presence_penalty":
		p.PresencePenalty = &f
	case "frequency_penalty":
		p.FrequencyPenalty = &f
	}
	return p, nil
}

func isField(key string) bool {
	for _, n := range FieldNames {
		if n == key {
			return true
		}
	}
	return false
}

// FieldValue returns the text form of a named field of c.
func FieldValue(c types.ChatConfig, name string) string {
	switch name {
	case "temperature":
		return strconv.FormatFloat(c.Temperature, 'g', -1, 64)
	case "top_p":
		return strconv.FormatFloat(c.TopP, 'g', -1, 64)
	case "max_tokens":
		return strconv.Itoa(c.MaxTokens)
	case "presence_penalty":
		return strconv.FormatFloat(c.PresencePenalty, 'g', -1, 64)
	case "frequency_penalty":
		return strconv.FormatFloat(c.FrequencyPenalty, 'g', -1, 64)
	}
	return ""
}
