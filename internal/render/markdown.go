// Package render turns planning results into output formats shared by
// the CLI, the HTTP API and the Telegram bot.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"daily-meal-planner/internal/planner"
)

// Markdown renders a planning result as human-readable Markdown. An
// aborted run (nil plan) renders its warnings instead of a day.
func Markdown(result planner.PlanningResult) string {
	var b strings.Builder

	if result.Plan == nil {
		b.WriteString("# Meal Plan Failed\n\n")
		b.WriteString("No complete plan could be built.\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		return b.String()
	}

	plan := result.Plan
	fmt.Fprintf(&b, "# Meal Plan for %s\n\n", plan.Date.Format("Monday, 02 Jan 2006"))

	for _, meal := range plan.Meals {
		fmt.Fprintf(&b, "## %s", titleCase(string(meal.MealType)))
		if meal.ScheduledTime != "" {
			fmt.Fprintf(&b, " (%s)", meal.ScheduledTime)
		}
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "**%s** (%d min)\n\n", meal.Recipe.Name, meal.Recipe.CookingTimeMinutes)
		fmt.Fprintf(&b, "%.0f kcal | %.0fg protein | %.0fg fat | %.0fg carbs\n\n",
			meal.Nutrition.Calories, meal.Nutrition.ProteinG, meal.Nutrition.FatG, meal.Nutrition.CarbsG)
	}

	b.WriteString("## Daily Totals\n\n")
	fmt.Fprintf(&b, "%.0f kcal | %.0fg protein | %.0fg fat | %.0fg carbs\n\n",
		result.TotalNutrition.Calories, result.TotalNutrition.ProteinG,
		result.TotalNutrition.FatG, result.TotalNutrition.CarbsG)

	for _, name := range []string{"calories", "protein", "carbs", "fat"} {
		if pct, ok := result.TargetAdherence[name]; ok {
			fmt.Fprintf(&b, "- %s: %.1f%% of target\n", name, pct)
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if result.Success {
		b.WriteString("\nAll targets met.\n")
	}
	return b.String()
}

// JSON renders a planning result as indented JSON.
func JSON(result planner.PlanningResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal planning result: %w", err)
	}
	return data, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
