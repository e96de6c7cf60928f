package chat

import "time"

// Session captures one client's transient conversation. The ID is supplied by
// the client and doubles as the websocket path parameter.
type Session struct {
	ID        string    `json:"id"`
	Strategy  string    `json:"strategy"`
	CreatedAt time.Time `json:"createdAt"`
}
