package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/ovenline/pizza-chat/backend/internal/handler/chat"
	wsHandler "github.com/ovenline/pizza-chat/backend/internal/handler/ws"
	middlewarePkg "github.com/ovenline/pizza-chat/backend/internal/middleware"
	"github.com/ovenline/pizza-chat/backend/internal/service/agent"
	chatService "github.com/ovenline/pizza-chat/backend/internal/service/chat"
	"github.com/ovenline/pizza-chat/backend/pkg/utils"
	"github.com/ovenline/pizza-chat/backend/web"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, strategy agent.Strategy, debug bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if debug {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", serveIndex)

	sessions := chatHandler.New(chatSvc, strategy)
	channel := wsHandler.New(chatSvc, strategy)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"status":   "ok",
				"strategy": strategy.Name(),
			})
		})

		sessions.RegisterRoutes(api)
		channel.RegisterRoutes(api)
	})

	return r
}

// serveIndex returns the embedded chat widget.
func serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.IndexHTML)
}
