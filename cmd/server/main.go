// Package main runs the tokenomics lab server:
// - REST API for simulations, comparisons, verification, and exports
// - Live WebSocket sessions for interactive runs
// - Health, status, and Prometheus metrics endpoints
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tokenomics-lab/internal/api"
	"tokenomics-lab/internal/config"
	"tokenomics-lab/internal/live"
	"tokenomics-lab/internal/simulation"
	"tokenomics-lab/internal/storage/memory"
	"tokenomics-lab/internal/verification"

	"github.com/rs/cors"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	configPath := flag.String("config", "", "Path to YAML config file (TOKENLAB_CONFIG_FILE)")
	addr := flag.String("addr", "", "Listen address, overrides config")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	defaults, err := cfg.SimulationDefaults()
	if err != nil {
		logger.Fatalf("Invalid simulation defaults: %v", err)
	}
	logger.Printf("Defaults: %s at %.2f USD, %+.1f%%/year, %d day horizon, %d services",
		defaults.TokenSymbol, defaults.InitialPrice, defaults.YearlyPriceChangePct,
		defaults.HorizonDays, len(defaults.Services))

	store := memory.NewRunStore(cfg.Server.RunStoreCapacity)

	runner := simulation.NewRunner(simulation.RunnerOptions{
		RunStore: store,
		Logger:   log.New(os.Stdout, "[simulation] ", log.LstdFlags|log.Lshortfile),
	})

	verifier := verification.NewReplayVerifier(verification.ReplayVerifierOptions{
		RunStore: store,
	})

	liveServer := live.NewServer(live.ServerOptions{
		Runner:   runner,
		Defaults: defaults,
		Logger:   log.New(os.Stdout, "[live] ", log.LstdFlags|log.Lshortfile),
	})

	router := api.NewRouter(api.Options{
		Runner:   runner,
		RunStore: store,
		Verifier: verifier,
		Defaults: defaults,
		Live:     liveServer,
		Release:  cfg.Server.Release,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to signal completion
	done := make(chan struct{})

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		go func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			liveServer.CloseAll()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Printf("HTTP shutdown error: %v", err)
			}
		}()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	logger.Printf("Listening on %s", cfg.Server.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	close(done)
	logger.Println("Shutdown complete")
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
