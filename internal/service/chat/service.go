package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ovenline/pizza-chat/backend/internal/model/chat"
)

var (
	ErrClientIDRequired = errors.New("client id is required")
	ErrSessionNotFound  = errors.New("session not found")
)

// Service is the in-process session registry. Sessions are keyed by the
// client-supplied identifier, created on the first message from that
// identifier and destroyed only by an explicit reset or process restart.
type Service struct {
	mu       sync.RWMutex
	strategy string
	sessions map[string]chat.Session
	messages map[string][]chat.Message
}

// NewService bootstraps the in-memory registry. The strategy name is recorded
// on every session it creates, purely for observability.
func NewService(strategy string) *Service {
	return &Service{
		strategy: strategy,
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

// EnsureSession returns the session for clientID, creating it on first use.
func (s *Service) EnsureSession(_ context.Context, clientID string) (chat.Session, error) {
	if clientID == "" {
		return chat.Session{}, ErrClientIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[clientID]; ok {
		return session, nil
	}

	session := chat.Session{
		ID:        clientID,
		Strategy:  s.strategy,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[clientID] = session
	s.messages[clientID] = make([]chat.Message, 0, 16)
	return session, nil
}

// SaveMessage appends a message to the session history.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) error {
	if message.SessionID == "" {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return nil
}

// GetSession retrieves a session by client identifier.
func (s *Service) GetSession(_ context.Context, clientID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[clientID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, clientID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[clientID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Reset destroys the session and its transcript. The next message from the
// same client identifier starts a fresh conversation.
func (s *Service) Reset(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[clientID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, clientID)
	delete(s.messages, clientID)
	return nil
}
