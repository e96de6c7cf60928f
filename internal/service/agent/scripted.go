package agent

import (
	"context"
	"sync"

	"github.com/ovenline/pizza-chat/backend/internal/model/chat"
)

// script is walked one line per message; the last line repeats.
var script = []string{
	"Hello, welcome to Ovenline! What pizza can I get started for you?",
	"Great choice. What size would you like: small, medium, large or extra large?",
	"Got it. And what crust: thin, classic or stuffed?",
	"Any toppings beyond cheese?",
	"Perfect, your pizza is heading to the oven. Reset the session to order again.",
}

// Scripted is the zero-dependency strategy: it replies from a fixed script
// regardless of what the user says. Useful for demos and frontend work when
// no model credentials are around.
type Scripted struct {
	mu    sync.Mutex
	steps map[string]int
}

// NewScripted returns a scripted strategy with no active sessions.
func NewScripted() *Scripted {
	return &Scripted{steps: make(map[string]int)}
}

// Name implements Strategy.
func (s *Scripted) Name() string { return NameScripted }

// Reply walks the script one line per message.
func (s *Scripted) Reply(_ context.Context, sessionID string, _ []chat.Message, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.steps[sessionID]
	if step < len(script)-1 {
		s.steps[sessionID] = step + 1
	}
	return script[step], nil
}

// Reset drops the session's script position.
func (s *Scripted) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.steps, sessionID)
}
