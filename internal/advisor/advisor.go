// Package advisor produces optional natural-language commentary on a
// finished plan. It never changes the plan; the planning engine stays
// deterministic whether or not an advisor is configured.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"daily-meal-planner/internal/llm"
	"daily-meal-planner/internal/planner"
)

// Advisor asks a language model to comment on a planning result.
type Advisor struct {
	generator llm.TextGenerator
}

// New creates an Advisor on top of a text generator.
func New(generator llm.TextGenerator) *Advisor {
	return &Advisor{generator: generator}
}

// Advise returns a short commentary on the result. The plan itself is
// never modified.
func (a *Advisor) Advise(ctx context.Context, result planner.PlanningResult) (string, error) {
	prompt := buildPrompt(result)
	text, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to get plan advice: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func buildPrompt(result planner.PlanningResult) string {
	var b strings.Builder
	b.WriteString("You are a nutrition coach. Comment briefly (3 sentences max) on this daily meal plan.\n")
	fmt.Fprintf(&b, "Totals: %.0f kcal, %.0fg protein, %.0fg fat, %.0fg carbs.\n",
		result.TotalNutrition.Calories, result.TotalNutrition.ProteinG,
		result.TotalNutrition.FatG, result.TotalNutrition.CarbsG)

	if result.Plan != nil {
		for _, meal := range result.Plan.Meals {
			fmt.Fprintf(&b, "- %s: %s (%.0f kcal)\n", meal.MealType, meal.Recipe.Name, meal.Nutrition.Calories)
		}
	} else {
		b.WriteString("Planning did not produce a complete day.\n")
	}

	if len(result.Warnings) > 0 {
		b.WriteString("Warnings: " + strings.Join(result.Warnings, "; ") + "\n")
	}
	if result.Success {
		b.WriteString("The plan meets all targets.\n")
	}
	return b.String()
}
