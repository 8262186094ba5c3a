package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/01moynul/schooluniforms-web/internal/config"
	"github.com/01moynul/schooluniforms-web/internal/database"
	"github.com/01moynul/schooluniforms-web/internal/handlers"
	"github.com/01moynul/schooluniforms-web/internal/routes"
	"github.com/01moynul/schooluniforms-web/internal/store"
	"github.com/01moynul/schooluniforms-web/internal/visitor"
	"github.com/01moynul/schooluniforms-web/internal/web"
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

	// 1. --- Token Store (MySQL when configured, memory otherwise) ---
	var tokens store.Store = store.NewMemoryStore()
	if cfg.TokenStoreDSN != "" {
		db, err := database.Open(ctx, cfg.TokenStoreDSN)
		if err != nil {
			log.Fatalf("Failed to connect to token database: %v", err)
		}
		defer db.Close()

		sqlStore := store.NewSQLStore(db)
		if err := sqlStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare token table: %v", err)
		}
		tokens = sqlStore
	} else {
		log.Println("TOKEN_STORE_DSN not set: sign-ins are kept in memory and lost on restart.")
	}

	// 2. --- Visitors ---
	visitors := visitor.NewRegistry(visitor.Options{
		BaseURL:          cfg.APIBaseURL,
		Tokens:           tokens,
		CarouselInterval: cfg.CarouselInterval,
		IdleTimeout:      cfg.IdleTimeout,
	})
	defer visitors.CloseAll()

	app := &handlers.Handlers{Visitors: visitors}

	// 3. --- Background Workers ---
	// Idle visitors are torn down so their carousels and clients go away.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()

		log.Println("Background worker started: sweeping idle visitors...")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := visitors.Sweep(); n > 0 {
					log.Printf("Swept %d idle visitors (%d live)", n, visitors.Len())
				}
			}
		}
	}()

	// 4. --- Router Setup ---
	templates, err := web.Templates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	router := routes.SetupRouter(app, templates, cfg.CookieSecure)

	// 5. --- Start Server ---
	srv := &http.Server{Addr: cfg.Addr(), Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Starting school uniforms web client on %s (API %s)...", cfg.Addr(), cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
