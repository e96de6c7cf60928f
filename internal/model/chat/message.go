package chat

import "time"

// Message persists individual turns for audit/debug.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Senders used across the service. The agent side is "assistant" to match the
// model vocabulary; the human side is "user".
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)
