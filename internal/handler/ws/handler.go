package ws

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ovenline/pizza-chat/backend/internal/model/chat"
	"github.com/ovenline/pizza-chat/backend/internal/service/agent"
	chatservice "github.com/ovenline/pizza-chat/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// Handler owns the per-client websocket chat channel.
type Handler struct {
	chatSvc  *chatservice.Service
	strategy agent.Strategy
	upgrader websocket.Upgrader
}

// New creates the websocket handler around the registry and the active
// strategy.
func New(chatSvc *chatservice.Service, strategy agent.Strategy) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		strategy: strategy,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the chat channel.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{clientID}", h.handleWebSocket)
}

// inboundFrame is what the widget sends: a JSON object carrying the text.
type inboundFrame struct {
	Text string `json:"text"`
}

// outboundFrame tags every reply as a normal message or an error.
type outboundFrame struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

const (
	frameMessage = "message"
	frameError   = "error"
)

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		http.Error(w, "clientID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[websocket] new connection client=%s strategy=%s", clientID, h.strategy.Name())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var frame inboundFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[websocket] read error client=%s: %v", clientID, err)
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))

			if frame.Text == "" {
				h.sendError(conn, "text is required")
				continue
			}

			h.handleTurn(ctx, conn, clientID, frame.Text)
		}
	}
}

// handleTurn runs one message through the strategy. Any failure is reported
// to this client as an error frame; the connection and the session survive.
func (h *Handler) handleTurn(ctx context.Context, conn *websocket.Conn, clientID, text string) {
	if _, err := h.chatSvc.EnsureSession(ctx, clientID); err != nil {
		h.sendError(conn, "failed to open session")
		return
	}

	history, err := h.chatSvc.LoadTranscript(ctx, clientID)
	if err != nil {
		h.sendError(conn, "failed to load transcript")
		return
	}

	userMsg := chat.Message{SessionID: clientID, Sender: chat.SenderUser, Content: text}
	if err := h.chatSvc.SaveMessage(ctx, userMsg); err != nil {
		h.sendError(conn, "failed to save message")
		return
	}

	reply, err := h.strategy.Reply(ctx, clientID, history, text)
	if err != nil {
		log.Printf("[websocket] strategy failed client=%s: %v", clientID, err)
		h.sendError(conn, "failed to produce a reply")
		return
	}

	assistantMsg := chat.Message{SessionID: clientID, Sender: chat.SenderAssistant, Content: reply}
	if err := h.chatSvc.SaveMessage(ctx, assistantMsg); err != nil {
		log.Printf("[websocket] save assistant message failed client=%s: %v", clientID, err)
	}

	h.sendMessage(conn, reply)
}

func (h *Handler) sendMessage(conn *websocket.Conn, text string) {
	frame := outboundFrame{Type: frameMessage, Text: text, Timestamp: time.Now().Unix()}
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[websocket] write message failed: %v", err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, text string) {
	frame := outboundFrame{Type: frameError, Text: text, Timestamp: time.Now().Unix()}
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[websocket] write error failed: %v", err)
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
