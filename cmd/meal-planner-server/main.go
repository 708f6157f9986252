package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-meal-planner/internal/api"
	"daily-meal-planner/internal/app"
	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Invalid server configuration: %v", err)
	}

	ctx := context.Background()

	application, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	mux := api.NewServer(application, cfg).Routes()

	// The Telegram bot shares the HTTP server; it is optional.
	if cfg.TelegramBotToken != "" {
		if err := cfg.ValidateTelegram(); err != nil {
			log.Fatalf("Invalid Telegram configuration: %v", err)
		}
		bot, err := telegram.NewBot(cfg, application)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram Bot: %v", err)
		}
		bot.RegisterHandlers(mux)
		log.Println("Telegram webhook registered on /webhook")
	}

	srv := &http.Server{
		Addr:    cfg.APIListenAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.APIListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
