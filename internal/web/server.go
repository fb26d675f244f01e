// Package web serves the JSON API and the dashboard.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"protocol-zero/internal/ai"
	"protocol-zero/internal/oracle"
	"protocol-zero/internal/storage"
)

type Server struct {
	store  *storage.Store
	oracle *oracle.Oracle
	ai     ai.Provider
	pityXP int
}

func New(store *storage.Store, orc *oracle.Oracle, provider ai.Provider, pityXP int) *Server {
	return &Server{store: store, oracle: orc, ai: provider, pityXP: pityXP}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleRoot)
	r.Get("/stats", s.handleStats)
	r.Get("/history", s.handleHistory)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Post("/summon", s.handleSummon)
	r.Get("/dashboard", s.handleDashboard)

	return r
}

// Run blocks until the server exits or ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("web server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}
