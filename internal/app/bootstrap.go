package app

import (
	"context"
	"fmt"
	"log"

	"daily-meal-planner/internal/advisor"
	"daily-meal-planner/internal/clipper"
	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/database"
	"daily-meal-planner/internal/fooddata"
	"daily-meal-planner/internal/llm"
	"daily-meal-planner/internal/metrics"
	"daily-meal-planner/internal/planner"
	"daily-meal-planner/internal/recipe"
	"daily-meal-planner/internal/shopping"
)

// Bootstrap builds a fully wired App from configuration. The returned
// cleanup function closes the database and any optional clients.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	closers := []func() error{db.Close}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Printf("Warning: cleanup failed: %v", err)
			}
		}
	}

	recipeStore, err := recipe.NewStore(cfg.RecipeStoragePath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize recipe store: %w", err)
	}

	calc := recipe.Calculator{}
	mealPlanner := planner.New(planner.NewMacroScorer(calc), calc)

	nutrients := fooddata.NewCachedSource(
		fooddata.NewClient(cfg.FoodDataAPIURL, cfg.FoodDataAPIKey), db.SQL)
	recipeClipper := clipper.NewClipper(nutrients)

	var planAdvisor *advisor.Advisor
	if cfg.GeminiAPIKey != "" {
		gen, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		if closer, ok := gen.(llm.Closer); ok {
			closers = append(closers, closer.Close)
		}
		planAdvisor = advisor.New(gen)
	}

	application := NewApp(
		cfg, db, mealPlanner,
		recipe.NewRepository(db.SQL), recipeStore,
		planner.NewPlanRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		metrics.NewStore(db.SQL),
		recipeClipper, planAdvisor,
	)
	return application, cleanup, nil
}
