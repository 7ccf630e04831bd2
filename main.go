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

	"github.com/fhsmendes/skycast/config"
	"github.com/fhsmendes/skycast/handler"
	"github.com/fhsmendes/skycast/screen"
	"github.com/fhsmendes/skycast/telemetry"
	"github.com/fhsmendes/skycast/utils"
)

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.InitProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize tracing provider: %v", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("failed to shutdown tracing provider: %v", err)
		}
	}()

	client := utils.NewClient(cfg.ProviderURL, cfg.ProviderTimeout)
	newScreen := func() *screen.Weather {
		return screen.NewWeather(client, cfg.WeatherAPIKey)
	}
	sessions := screen.NewRegistry(newScreen, cfg.SessionTTL)
	go pruneSessions(ctx, sessions, cfg.SessionTTL)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(handler.New(sessions, newScreen)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("SkyCast running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gracefully...")
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func pruneSessions(ctx context.Context, sessions *screen.Registry, ttl time.Duration) {
	interval := ttl / 2
	if interval <= 0 {
		interval = ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := sessions.Prune(now); n > 0 {
				log.Printf("pruned %d idle sessions", n)
			}
		}
	}
}
