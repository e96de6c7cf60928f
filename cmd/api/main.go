package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovenline/pizza-chat/backend/internal/config"
	"github.com/ovenline/pizza-chat/backend/internal/handler"
	"github.com/ovenline/pizza-chat/backend/internal/service/agent"
	"github.com/ovenline/pizza-chat/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	strategy := buildStrategy(ctx, cfg)
	log.Printf("agent strategy: %s", strategy.Name())

	chatSvc := chat.NewService(strategy.Name())
	router := handler.NewRouter(chatSvc, strategy, cfg.Server.Debug)

	startServer(ctx, cfg.Server, router)
}

// buildStrategy selects the conversational strategy. When the graph strategy
// is requested without usable model credentials the service degrades to the
// scripted stub instead of refusing to start.
func buildStrategy(ctx context.Context, cfg *config.Config) agent.Strategy {
	if cfg.Agent.Strategy != agent.NameGraph {
		return agent.NewScripted()
	}

	if !cfg.AI.Enabled() {
		log.Println("warning: graph strategy requested but model credentials are missing")
		log.Println("falling back to the scripted strategy")
		return agent.NewScripted()
	}

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		log.Printf("warning: failed to create chat model: %v", err)
		log.Println("falling back to the scripted strategy")
		return agent.NewScripted()
	}

	graph, err := agent.NewGraph(ctx, chatModel)
	if err != nil {
		log.Printf("warning: failed to build agent graph: %v", err)
		log.Println("falling back to the scripted strategy")
		return agent.NewScripted()
	}

	return graph
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("pizza chat backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
