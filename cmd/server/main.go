package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/structsketch/structsketch/backend-go/internal/api"
	"github.com/structsketch/structsketch/backend-go/internal/asset"
	"github.com/structsketch/structsketch/backend-go/internal/config"
	mw "github.com/structsketch/structsketch/backend-go/internal/middleware"
	"github.com/structsketch/structsketch/backend-go/internal/session"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	metrics := viewport.DefaultMetrics(800, 600)
	metrics.PageWidth = cfg.PageWidth
	metrics.PageHeight = cfg.PageHeight

	hub := session.NewHub(session.Config{
		Metrics:        metrics,
		LongPressDelay: cfg.LongPressDelay(),
		Sample:         cfg.SampleSketch,
	})

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health, shape and geometry endpoints
	api.NewHandler().Register(r)

	// WebSocket endpoint, one engine session per connection
	r.HandleFunc("/ws", hub.ServeWS(cfg.OriginPatterns()))

	// Static page and wasm bundle
	r.PathPrefix("/").Handler(asset.NewHandler(cfg.StaticDir).Serve()).Methods("GET", "HEAD")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop sessions first so websocket pumps unwind
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "static", cfg.StaticDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
