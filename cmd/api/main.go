// Package main is the entry point for the intake API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/appointment"
	"github.com/despacholegal-ai/intake-platform/internal/backend"
	"github.com/despacholegal-ai/intake-platform/internal/config"
	"github.com/despacholegal-ai/intake-platform/internal/dialogue"
	"github.com/despacholegal-ai/intake-platform/internal/events"
	"github.com/despacholegal-ai/intake-platform/internal/handler"
	"github.com/despacholegal-ai/intake-platform/internal/knowledge"
	"github.com/despacholegal-ai/intake-platform/internal/middleware"
	"github.com/despacholegal-ai/intake-platform/internal/session"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/tracing"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting intake API server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "intake-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(context.Background(), tp)
		}
	}

	// The event stream is optional: with no NATS URL the publisher is nil
	// and every publish is a no-op.
	var eventsClient *events.Client
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsClient, err = events.Connect(events.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer eventsClient.Close()

		if err := eventsClient.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure intake stream", zap.Error(err))
			os.Exit(1)
		}
		publisher = events.NewPublisher(eventsClient, log)
	}

	backendClient := backend.New(cfg.BackendURL, cfg.BackendFetchTimeout, cfg.BackendSubmitTimeout, log)
	responder := knowledge.New(backendClient, cfg.ResponderRandom, log)

	registry := session.NewRegistry(log)
	flow := appointment.NewFlow(backendClient, publisher, log)
	orchestrator := dialogue.NewOrchestrator(registry, flow, responder, publisher, log)

	healthHandler := handler.NewHealthHandler(eventsClient)
	chatHandler := handler.NewChatHandler(orchestrator, log)
	wsHandler := handler.NewWSHandler(orchestrator, log)
	adminHandler := handler.NewAdminHandler(registry)

	sweeper := session.NewSweeper(registry, wsHandler, publisher, log,
		cfg.IdleWarnAfter, cfg.IdleCloseAfter, cfg.SweepInterval)
	go sweeper.Run(ctx)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Widget-facing endpoints, rate limited by client IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Post("/chat", chatHandler.Chat)
		r.Post("/end_chat", chatHandler.EndChat)
		r.Get("/ws", wsHandler.ServeWS)
	})

	// Admin surface requires an authenticated admin token.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RequireRole("admin"))
		r.Use(middleware.UserRateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Get("/sessions", adminHandler.Sessions)
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
