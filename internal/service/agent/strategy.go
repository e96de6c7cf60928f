package agent

import (
	"context"
	"errors"

	"github.com/ovenline/pizza-chat/backend/internal/model/chat"
)

// Strategy names accepted by configuration.
const (
	NameScripted = "scripted"
	NameGraph    = "graph"
)

var ErrUnknownStrategy = errors.New("unknown agent strategy")

// Strategy maps an incoming message and session identifier to a reply string.
// Implementations own whatever per-session state they need; nothing else in
// the process touches it. History holds the turns saved before the current
// message.
type Strategy interface {
	Reply(ctx context.Context, sessionID string, history []chat.Message, text string) (string, error)
	Reset(sessionID string)
	Name() string
}
