package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eshop-relay/internal/config"
	"github.com/eshop-relay/internal/infrastructure/firebase"
	"github.com/eshop-relay/internal/infrastructure/gemini"
	"github.com/eshop-relay/internal/infrastructure/memstore"
	"github.com/eshop-relay/internal/infrastructure/smtp"
	transporthttp "github.com/eshop-relay/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Identity gateway (Firebase Auth admin client).
	identity, err := firebase.NewClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("identity gateway init: %v", err)
	}

	// In-memory OTP ledger. State does not survive a restart and is not
	// shared across instances; this service is single-instance by design.
	ledger := memstore.NewLedger(cfg.OTPTTL, cfg.ResetGrantTTL)
	defer ledger.Close()

	deps := &transporthttp.Deps{
		Ledger:    ledger,
		Identity:  identity,
		Mailer:    smtp.NewMailer(cfg),
		Generator: gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // chat requests wait on the generation endpoint
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
