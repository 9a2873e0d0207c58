package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/cexll/boardrelay/internal/config"
	"github.com/cexll/boardrelay/internal/monday"
	"github.com/cexll/boardrelay/internal/progress"
	"github.com/cexll/boardrelay/internal/relay"
	"github.com/cexll/boardrelay/internal/slack"
	"github.com/cexll/boardrelay/internal/web"
	"github.com/cexll/boardrelay/internal/webhook"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var (
	loadDotEnv         = godotenv.Load
	newMondayClient    = monday.NewClient
	newWebhookClient   = slack.NewWebhookClient
	defaultListenServe = http.ListenAndServe
)

func main() {
	if err := run(context.Background(), defaultListenServe); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(ctx context.Context, serve func(string, http.Handler) error) error {
	// Load .env file (ignore error if file doesn't exist)
	_ = loadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Printf("Starting board relay...")
	log.Printf("Port: %d", cfg.Port)
	log.Printf("Board API: %s (version %s)", cfg.MondayAPIURL, cfg.MondayAPIVersion)
	log.Printf("Progress policy: %s", cfg.ProgressPolicy)
	log.Printf("Client dir: %s", cfg.ClientDir)

	policy, err := progress.PolicyByName(cfg.ProgressPolicy, cfg.StatusWeights)
	if err != nil {
		return fmt.Errorf("failed to select progress policy: %w", err)
	}

	api := newMondayClient(cfg.MondayAPIKey, monday.Options{
		Endpoint:   cfg.MondayAPIURL,
		APIVersion: cfg.MondayAPIVersion,
		Timeout:    cfg.HTTPTimeout,
	})
	chat := newWebhookClient(cfg.SlackWebhookURL, cfg.HTTPTimeout)

	handler := webhook.NewHandler(
		relay.NewUpdater(api, policy),
		relay.NewNotifier(api, chat),
	)

	r := mux.NewRouter()

	// Automation endpoints
	apiRouter := handler.RegisterRoutes(r)
	apiRouter.Use(mux.CORSMethodMiddleware(apiRouter), webhook.CORS())
	if cfg.SignatureVerificationEnabled() {
		apiRouter.Use(webhook.RequireSignature(cfg.MondaySigningSecret))
	} else {
		log.Printf("Warning: MONDAY_SIGNING_SECRET not set, automation requests are not verified")
	}

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Static client bundle
	web.NewHandler(cfg.ClientDir).RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Backend running on http://localhost%s", addr)
	log.Printf("Update endpoint: http://localhost%s/api/calculate-and-update-parent", addr)
	log.Printf("Notify endpoint: http://localhost%s/api/update-webhook", addr)

	if err := serve(addr, r); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}
