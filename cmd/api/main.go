package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/01moynul/flower-pricing-golang/internal/ai"
	"github.com/01moynul/flower-pricing-golang/internal/auth"
	"github.com/01moynul/flower-pricing-golang/internal/baserow"
	"github.com/01moynul/flower-pricing-golang/internal/config"
	"github.com/01moynul/flower-pricing-golang/internal/database"
	"github.com/01moynul/flower-pricing-golang/internal/handlers"
	"github.com/01moynul/flower-pricing-golang/internal/planner"
	"github.com/01moynul/flower-pricing-golang/internal/routes"
	"github.com/01moynul/flower-pricing-golang/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Record Store ---
	var records store.Store
	switch cfg.Datastore {
	case config.DatastoreMySQL:
		db, err := database.OpenDB(cfg.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to primary database: %v", err)
		}
		defer db.Close()
		if err := database.EnsureSchema(db); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		records = database.NewStore(db)
	case config.DatastoreMemory:
		log.Println("WARNING: Using the in-memory store. Records are lost on restart.")
		records = store.NewMemory()
	default:
		client, err := baserow.NewClient(cfg.Baserow)
		if err != nil {
			log.Fatalf("Failed to configure Baserow: %v", err)
		}
		records = client
	}

	// 2. --- Pricing State (hydrate once at boot) ---
	plan := planner.New(records, cfg.DefaultMarkup)
	if err := plan.Reload(ctx); err != nil {
		log.Printf("Initial load failed, starting with an empty price list: %v", err)
	}

	// 3. --- Background Worker ---
	if cfg.RefreshInterval > 0 {
		go plan.StartRefresh(ctx, cfg.RefreshInterval)
	}

	// 4. --- AI Assistant (optional) ---
	app := &handlers.Handlers{
		Planner: plan,
		Gate:    auth.NewGate(cfg.JWTSecret, cfg.PasscodeHash, auth.ParseAllowedEmails(cfg.AllowedEmails)),
	}
	aiService, err := ai.NewAIService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, ai.ErrAssistantDisabled):
		log.Println("GEMINI_API_KEY is not set. The price sheet assistant is disabled.")
	case err != nil:
		log.Fatalf("Failed to initialize AI Service: %v", err)
	default:
		defer aiService.Close()
		app.Assistant = aiService
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.CORSOrigin)

	// --- Start Server ---
	log.Printf("Starting flower pricing API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
