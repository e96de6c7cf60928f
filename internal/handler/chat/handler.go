package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ovenline/pizza-chat/backend/internal/model/order"
	"github.com/ovenline/pizza-chat/backend/internal/service/agent"
	chatService "github.com/ovenline/pizza-chat/backend/internal/service/chat"
	"github.com/ovenline/pizza-chat/backend/pkg/utils"
)

// orderStater is implemented by strategies that accumulate structured order
// state worth exposing for debugging.
type orderStater interface {
	OrderState(sessionID string) (*order.State, bool)
}

// Handler exposes the REST surface around sessions.
type Handler struct {
	chatSvc  *chatService.Service
	strategy agent.Strategy
}

// New creates the session handler.
func New(chatSvc *chatService.Service, strategy agent.Strategy) *Handler {
	return &Handler{chatSvc: chatSvc, strategy: strategy}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{clientID}", h.handleGetSession)
	r.Get("/session/{clientID}/transcript", h.handleTranscript)
	r.Get("/session/{clientID}/order", h.handleOrderState)
	r.Delete("/session/{clientID}", h.handleReset)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	session, err := h.chatSvc.GetSession(r.Context(), clientID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), clientID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleOrderState(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	stater, ok := h.strategy.(orderStater)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "strategy keeps no order state")
		return
	}
	state, ok := stater.OrderState(clientID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "no order state for session")
		return
	}
	utils.RespondJSON(w, http.StatusOK, state)
}

// handleReset destroys the session; the registry and the strategy both drop
// their state so the next message starts over.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	if err := h.chatSvc.Reset(r.Context(), clientID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, chatService.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	h.strategy.Reset(clientID)

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
