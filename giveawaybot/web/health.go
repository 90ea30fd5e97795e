// Package web exposes the tiny HTTP surface free-tier hosts probe to keep
// the bot alive.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server answers health checks on the configured port.
type Server struct {
	port int
}

func NewServer(port int) *Server {
	return &Server{port: port}
}

// Serve blocks until ctx is cancelled, then shuts the listener down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Giveaway bot is running!"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Health server listening",
			slog.String("type", "sys"),
			slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
