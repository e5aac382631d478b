// Package web serves a read-only HTTP view of a running session.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plus3/blockfall/driver"
)

// SnapshotSource provides the last published state of a session.
// *driver.Session satisfies it.
type SnapshotSource interface {
	Snapshot() *driver.Snapshot
}

// NewServer wires routes and returns an http.Handler.
func NewServer(src SnapshotSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	h := &handlers{src: src}
	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/session", h.session)
		r.Get("/session/board", h.board)
		r.Get("/stats", h.stats)
	})
	return r
}

// Serve runs the status server on addr until ctx is done.
func Serve(ctx context.Context, addr string, src SnapshotSource) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewServer(src),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("status server listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
