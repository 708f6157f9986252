package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/planner"
	"daily-meal-planner/internal/recipe"
)

func successResult() planner.PlanningResult {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return planner.PlanningResult{
		Plan: &planner.DailyMealPlan{
			Date: date,
			Meals: []planner.Meal{
				{
					MealType:      planner.MealBreakfast,
					ScheduledTime: "07:00",
					Recipe:        recipe.Recipe{Name: "Oatmeal", CookingTimeMinutes: 10},
					Nutrition:     nutrition.Profile{Calories: 500, ProteinG: 25, FatG: 15, CarbsG: 70},
				},
			},
			MeetsGoals: true,
		},
		Success:         true,
		TotalNutrition:  nutrition.Profile{Calories: 2400, ProteinG: 150, FatG: 75, CarbsG: 280},
		TargetAdherence: map[string]float64{"calories": 100, "protein": 100, "carbs": 99.6, "fat": 100},
	}
}

func TestMarkdownSuccess(t *testing.T) {
	out := Markdown(successResult())

	for _, want := range []string{
		"# Meal Plan for Monday, 10 Mar 2025",
		"## Breakfast (07:00)",
		"**Oatmeal** (10 min)",
		"## Daily Totals",
		"- calories: 100.0% of target",
		"All targets met.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Warnings") {
		t.Errorf("Unexpected warnings section:\n%s", out)
	}
}

func TestMarkdownAborted(t *testing.T) {
	out := Markdown(planner.PlanningResult{
		Warnings:       []string{"No recipes available for dinner"},
		TotalNutrition: nutrition.Profile{Calories: 1100},
	})

	if !strings.Contains(out, "# Meal Plan Failed") {
		t.Errorf("Expected failure heading:\n%s", out)
	}
	if !strings.Contains(out, "- No recipes available for dinner") {
		t.Errorf("Expected the abort warning:\n%s", out)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := JSON(successResult())
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded planner.PlanningResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if !decoded.Success || decoded.Plan == nil || len(decoded.Plan.Meals) != 1 {
		t.Errorf("Decoded result lost data: %+v", decoded)
	}
}

func TestJSONNilPlan(t *testing.T) {
	data, err := JSON(planner.PlanningResult{Warnings: []string{"No recipes available for breakfast"}})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if strings.Contains(string(data), `"daily_plan"`) {
		t.Errorf("Nil plan should be omitted from JSON:\n%s", data)
	}
}
