package advisor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/planner"
	"daily-meal-planner/internal/recipe"
)

// scriptedGenerator returns a canned reply and records prompts.
type scriptedGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *scriptedGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func TestAdviseIncludesPlanDetails(t *testing.T) {
	gen := &scriptedGenerator{reply: "  Looks solid.\n"}
	result := planner.PlanningResult{
		Plan: &planner.DailyMealPlan{
			Meals: []planner.Meal{
				{MealType: planner.MealBreakfast, Recipe: recipe.Recipe{Name: "Oatmeal"}, Nutrition: nutrition.Profile{Calories: 500}},
			},
		},
		Success:        true,
		TotalNutrition: nutrition.Profile{Calories: 2400, ProteinG: 150, FatG: 75, CarbsG: 280},
	}

	advice, err := New(gen).Advise(context.Background(), result)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if advice != "Looks solid." {
		t.Errorf("Expected trimmed advice, got %q", advice)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("Expected 1 prompt, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	for _, want := range []string{"Oatmeal", "2400 kcal", "150g protein", "meets all targets"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAdviseAbortedPlan(t *testing.T) {
	gen := &scriptedGenerator{reply: "Add more recipes."}
	result := planner.PlanningResult{
		Warnings: []string{"No recipes available for dinner"},
	}

	if _, err := New(gen).Advise(context.Background(), result); err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "did not produce a complete day") {
		t.Errorf("Prompt should mention the aborted plan:\n%s", prompt)
	}
	if !strings.Contains(prompt, "No recipes available for dinner") {
		t.Errorf("Prompt should carry the warnings:\n%s", prompt)
	}
}

func TestAdvisePropagatesError(t *testing.T) {
	gen := &scriptedGenerator{err: fmt.Errorf("quota exceeded")}
	_, err := New(gen).Advise(context.Background(), planner.PlanningResult{})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected wrapped generator error, got %v", err)
	}
}
