package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"daily-meal-planner/internal/advisor"
	"daily-meal-planner/internal/clipper"
	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/database"
	"daily-meal-planner/internal/metrics"
	"daily-meal-planner/internal/planner"
	"daily-meal-planner/internal/profile"
	"daily-meal-planner/internal/recipe"
	"daily-meal-planner/internal/shopping"
)

// App holds the application's dependencies and drives the planning
// workflow shared by the CLI, the HTTP API and the Telegram bot.
type App struct {
	cfg          *config.Config
	db           *database.DB
	mealPlanner  *planner.Planner
	recipeRepo   *recipe.Repository
	recipeStore  *recipe.Store
	planRepo     *planner.PlanRepository
	shoppingRepo *shopping.Repository
	metricsStore *metrics.Store

	// Optional collaborators; nil when not configured.
	recipeClipper *clipper.Clipper
	planAdvisor   *advisor.Advisor
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	db *database.DB,
	mealPlanner *planner.Planner,
	recipeRepo *recipe.Repository,
	recipeStore *recipe.Store,
	planRepo *planner.PlanRepository,
	shoppingRepo *shopping.Repository,
	metricsStore *metrics.Store,
	recipeClipper *clipper.Clipper,
	planAdvisor *advisor.Advisor,
) *App {
	return &App{
		cfg:           cfg,
		db:            db,
		mealPlanner:   mealPlanner,
		recipeRepo:    recipeRepo,
		recipeStore:   recipeStore,
		planRepo:      planRepo,
		shoppingRepo:  shoppingRepo,
		metricsStore:  metricsStore,
		recipeClipper: recipeClipper,
		planAdvisor:   planAdvisor,
	}
}

// PlanDay loads the user profile and recipe catalog, runs the planner
// for the given date and persists the outcome. The result is returned
// whether or not planning succeeded; callers render it.
func (a *App) PlanDay(ctx context.Context, date time.Time) (planner.PlanningResult, error) {
	user, err := profile.Load(a.cfg.ProfilePath)
	if err != nil {
		return planner.PlanningResult{}, fmt.Errorf("failed to load user profile: %w", err)
	}

	sched, err := profile.NewDailySchedule(user.Schedule)
	if err != nil {
		return planner.PlanningResult{}, fmt.Errorf("failed to build daily schedule: %w", err)
	}

	recipes, err := a.loadCatalog(ctx)
	if err != nil {
		return planner.PlanningResult{}, err
	}

	start := time.Now()
	result := a.mealPlanner.PlanDay(date, user, sched, recipes)
	elapsed := time.Since(start)

	if err := a.metricsStore.Record(ctx, metrics.PlanningMetric{
		UserID:       a.cfg.UserID,
		Success:      result.Success,
		DurationMS:   elapsed.Milliseconds(),
		WarningCount: len(result.Warnings),
	}); err != nil {
		log.Printf("Warning: failed to record planning metric: %v", err)
	}

	planID, err := a.planRepo.Save(ctx, a.cfg.UserID, date, result)
	if err != nil {
		log.Printf("Warning: failed to save meal plan: %v", err)
	} else if result.Plan != nil {
		list := &shopping.ShoppingList{
			UserID:     a.cfg.UserID,
			MealPlanID: planID,
			Items:      shopping.BuildList(result.Plan),
		}
		if _, err := a.shoppingRepo.Save(ctx, list); err != nil {
			log.Printf("Warning: failed to save shopping list: %v", err)
		}
	}

	return result, nil
}

// Advise returns LLM commentary on a planning result, or "" when no
// advisor is configured.
func (a *App) Advise(ctx context.Context, result planner.PlanningResult) (string, error) {
	if a.planAdvisor == nil {
		return "", nil
	}
	return a.planAdvisor.Advise(ctx, result)
}

// ImportRecipe clips a recipe from a URL and saves it to both the
// database and the file store.
func (a *App) ImportRecipe(ctx context.Context, pageURL string) (*recipe.Recipe, error) {
	if a.recipeClipper == nil {
		return nil, fmt.Errorf("recipe import is not configured")
	}

	rec, err := a.recipeClipper.ClipURL(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}

	if err := a.recipeRepo.Save(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}
	if err := a.recipeStore.Save(*rec); err != nil {
		log.Printf("Warning: failed to export recipe %s to file storage: %v", rec.ID, err)
	}

	return rec, nil
}

// ListRecipes returns the full recipe catalog in planning order.
func (a *App) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	return a.loadCatalog(ctx)
}

// LatestShoppingList returns the shopping list for the most recent
// plan of the given date, or nil when none exists.
func (a *App) LatestShoppingList(ctx context.Context, date time.Time) (*shopping.ShoppingList, error) {
	stored, err := a.planRepo.GetLatest(ctx, a.cfg.UserID, date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	return a.shoppingRepo.GetByMealPlanID(ctx, stored.ID)
}

// MetricsSummary returns per-day planning outcomes for the last N days.
func (a *App) MetricsSummary(ctx context.Context, days int) ([]metrics.DailySummary, error) {
	return a.metricsStore.GetDailySummary(ctx, days)
}

// CleanupMetrics removes planning metrics older than the given number
// of days.
func (a *App) CleanupMetrics(ctx context.Context, olderThanDays int) (int64, error) {
	return a.metricsStore.Cleanup(ctx, olderThanDays)
}

// loadCatalog prefers the database catalog and falls back to the file
// store when the database holds no recipes. Both sources yield a
// stable order, which downstream tie-breaking depends on.
func (a *App) loadCatalog(ctx context.Context) ([]recipe.Recipe, error) {
	recipes, err := a.recipeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if len(recipes) > 0 {
		return recipes, nil
	}

	recipes, err = a.recipeStore.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes from file storage: %w", err)
	}
	return recipes, nil
}
