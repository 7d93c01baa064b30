package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/quote.works/internal/config"
	"github.com/Simplici0/quote.works/internal/logger"
	"github.com/Simplici0/quote.works/internal/quote"
)

type server struct {
	store   *quote.Store
	cookies *sessionCookies
	log     *logger.Logger
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	for _, warning := range cfg.Warnings() {
		log.Warn("configuration warning", "problem", warning)
	}

	srv := &server{
		store: quote.NewStore(log, quote.StoreOptions{
			IdleTTL:     cfg.SessionIdleTTL,
			MaxSessions: cfg.MaxSessions,
		}),
		cookies: newSessionCookies(cfg.SessionSecret),
		log:     log,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.store.Run(ctx, cfg.SweepInterval())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("listening",
		"addr", httpServer.Addr,
		"env", cfg.AppEnv,
		"session_idle_ttl", cfg.SessionIdleTTL,
		"max_sessions", cfg.MaxSessions,
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", "error", err)
	}
	log.Info("server stopped", "open_sessions", srv.store.Len())
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/quote", s.handleQuoteStart)

	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Get("/quote", s.handleQuoteGet)
		r.Delete("/quote", s.handleQuoteDiscard)
		r.Post("/quote/items/{category}", s.handleItemAdd)
		r.Patch("/quote/items/{category}/{id}", s.handleItemEdit)
		r.Delete("/quote/items/{category}/{id}", s.handleItemRemove)
		r.Put("/quote/service/{field}", s.handleServiceSet)
		r.Put("/quote/pricing/{field}", s.handlePricingSet)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
