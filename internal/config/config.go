package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath      string
	RecipeStoragePath string
	ProfilePath       string
	UserID            string

	// Food database lookup (used at import time only).
	FoodDataAPIURL string
	FoodDataAPIKey string

	// Optional: plan commentary is disabled when the key is empty.
	GeminiAPIKey string

	// HTTP API
	APIListenAddr string
	APISecret     string

	// Telegram (optional for CLI, required for the bot server)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		DatabasePath:       envOrDefault("MEAL_PLANNER_DB_PATH", "data/mealplanner.db"),
		RecipeStoragePath:  envOrDefault("MEAL_PLANNER_RECIPE_PATH", "data/recipes"),
		ProfilePath:        envOrDefault("MEAL_PLANNER_PROFILE_PATH", "data/profile.json"),
		UserID:             envOrDefault("MEAL_PLANNER_USER_ID", "default_user"),
		FoodDataAPIURL:     envOrDefault("FOOD_DATA_API_URL", "https://api.nal.usda.gov/fdc/v1"),
		FoodDataAPIKey:     os.Getenv("FOOD_DATA_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		APIListenAddr:      envOrDefault("MEAL_PLANNER_API_ADDR", ":8080"),
		APISecret:          os.Getenv("MEAL_PLANNER_API_SECRET"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	return cfg, nil
}

// ValidateServer checks the variables the HTTP/bot server requires on
// top of the CLI defaults.
func (c *Config) ValidateServer() error {
	if c.APISecret == "" {
		return fmt.Errorf("MEAL_PLANNER_API_SECRET environment variable not set")
	}
	return nil
}

// ValidateTelegram checks the variables the Telegram bot requires.
func (c *Config) ValidateTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
