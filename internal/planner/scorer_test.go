package planner

import (
	"testing"

	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/profile"
	"daily-meal-planner/internal/recipe"
)

func scorerContext() MealContext {
	return MealContext{
		MealType:       MealLunch,
		TargetCalories: 700,
		TargetProtein:  50,
		TargetFatMin:   15,
		TargetFatMax:   25,
		TargetCarbs:    80,
		Satiety:        SatietyMedium,
		CarbTiming:     CarbMaintenance,
	}
}

func TestMacroScorerContainsAllergens(t *testing.T) {
	s := NewMacroScorer(recipe.Calculator{})
	rec := quickRecipe("satay", 20, "chicken", "Peanut Sauce", "rice")

	cases := []struct {
		name      string
		allergies []string
		want      bool
	}{
		{"ExactMatch", []string{"peanut sauce"}, true},
		{"SubstringMatch", []string{"peanut"}, true},
		{"CaseInsensitive", []string{"PEANUT"}, true},
		{"NoMatch", []string{"shellfish"}, false},
		{"EmptyListIgnored", []string{""}, false},
		{"None", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.ContainsAllergens(rec, tc.allergies); got != tc.want {
				t.Errorf("ContainsAllergens(%v) = %v, want %v", tc.allergies, got, tc.want)
			}
		})
	}
}

func TestMacroScorerAllergenNeverPositive(t *testing.T) {
	calc := &fixedCalculator{profiles: map[string]nutrition.Profile{
		// A perfect macro match that would otherwise score highly.
		"satay": {Calories: 700, ProteinG: 50, FatG: 20, CarbsG: 80},
	}}
	s := NewMacroScorer(calc)
	user := &profile.UserProfile{Allergies: []string{"peanut"}}

	rec := quickRecipe("satay", 20, "chicken", "peanut sauce")
	if score := s.Score(rec, scorerContext(), user, nutrition.Profile{}); score >= 0 {
		t.Errorf("Allergen-containing recipe must never score positively, got %f", score)
	}
}

func TestMacroScorerPrefersCloserMacros(t *testing.T) {
	calc := &fixedCalculator{profiles: map[string]nutrition.Profile{
		"close": {Calories: 690, ProteinG: 48, FatG: 21, CarbsG: 78},
		"far":   {Calories: 300, ProteinG: 15, FatG: 5, CarbsG: 30},
	}}
	s := NewMacroScorer(calc)
	user := &profile.UserProfile{}

	ctx := scorerContext()
	closeScore := s.Score(quickRecipe("close", 20), ctx, user, nutrition.Profile{})
	farScore := s.Score(quickRecipe("far", 20), ctx, user, nutrition.Profile{})
	if closeScore <= farScore {
		t.Errorf("Expected the closer recipe to win: close=%f far=%f", closeScore, farScore)
	}
}

func TestMacroScorerPreferences(t *testing.T) {
	calc := &fixedCalculator{profiles: map[string]nutrition.Profile{
		"a": {Calories: 700, ProteinG: 50, FatG: 20, CarbsG: 80},
		"b": {Calories: 700, ProteinG: 50, FatG: 20, CarbsG: 80},
	}}
	s := NewMacroScorer(calc)
	ctx := scorerContext()

	t.Run("LikedBoosts", func(t *testing.T) {
		user := &profile.UserProfile{LikedFoods: []string{"salmon"}}
		liked := s.Score(quickRecipe("a", 20, "salmon", "rice"), ctx, user, nutrition.Profile{})
		plain := s.Score(quickRecipe("b", 20, "cod", "rice"), ctx, user, nutrition.Profile{})
		if liked <= plain {
			t.Errorf("Expected liked ingredient to boost the score: %f vs %f", liked, plain)
		}
	})

	t.Run("DislikedPenalizes", func(t *testing.T) {
		user := &profile.UserProfile{DislikedFoods: []string{"mushroom"}}
		disliked := s.Score(quickRecipe("a", 20, "mushroom", "rice"), ctx, user, nutrition.Profile{})
		plain := s.Score(quickRecipe("b", 20, "cod", "rice"), ctx, user, nutrition.Profile{})
		if disliked >= plain {
			t.Errorf("Expected disliked ingredient to lower the score: %f vs %f", disliked, plain)
		}
	})
}

func TestMacroScorerDeterministic(t *testing.T) {
	calc := &fixedCalculator{profiles: map[string]nutrition.Profile{
		"a": {Calories: 640, ProteinG: 44, FatG: 18, CarbsG: 72},
	}}
	s := NewMacroScorer(calc)
	user := &profile.UserProfile{LikedFoods: []string{"rice"}}
	rec := quickRecipe("a", 20, "chicken", "rice")
	current := nutrition.Profile{Calories: 600, ProteinG: 35, FatG: 18, CarbsG: 80}

	first := s.Score(rec, scorerContext(), user, current)
	for i := 0; i < 100; i++ {
		if got := s.Score(rec, scorerContext(), user, current); got != first {
			t.Fatalf("Score is not deterministic: %f then %f", first, got)
		}
	}
}
