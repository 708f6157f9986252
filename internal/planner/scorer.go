package planner

import (
	"math"
	"strings"

	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/profile"
	"daily-meal-planner/internal/recipe"
)

// Scorer ranks candidate recipes for a meal slot. Implementations must
// be deterministic pure functions returning finite scores with higher
// always preferred, and must never score an allergen-containing recipe
// positively.
type Scorer interface {
	Score(rec recipe.Recipe, ctx MealContext, user *profile.UserProfile, current nutrition.Profile) float64
	ContainsAllergens(rec recipe.Recipe, allergies []string) bool
}

// Calculator computes a recipe's nutrition profile. The production
// implementation is recipe.Calculator; tests substitute fixed values.
type Calculator interface {
	Calculate(rec recipe.Recipe) nutrition.Profile
}

const allergenPenalty = -1000

// MacroScorer is the default Scorer. It rewards proximity of the
// recipe's macros to the per-meal targets, alignment with the satiety
// and carb-timing preferences, and liked ingredients; it penalizes
// disliked ingredients. An allergen hit forces a large negative score
// on top of the hard filter upstream.
type MacroScorer struct {
	calc Calculator
}

// NewMacroScorer creates a MacroScorer using calc for recipe macros.
func NewMacroScorer(calc Calculator) *MacroScorer {
	return &MacroScorer{calc: calc}
}

// Score rates rec for the given meal context.
func (s *MacroScorer) Score(rec recipe.Recipe, ctx MealContext, user *profile.UserProfile, current nutrition.Profile) float64 {
	if s.ContainsAllergens(rec, user.Allergies) {
		return allergenPenalty
	}

	macros := s.calc.Calculate(rec)

	score := 0.0
	score += 30 * proximity(macros.Calories, ctx.TargetCalories)
	score += 25 * proximity(macros.ProteinG, ctx.TargetProtein)
	score += 20 * proximity(macros.CarbsG, ctx.TargetCarbs)
	score += 15 * proximity(macros.FatG, (ctx.TargetFatMin+ctx.TargetFatMax)/2)

	score += satietyBonus(macros, ctx)
	score += carbTimingBonus(macros, ctx)
	score += preferenceAdjustment(rec, user)
	score += runningAdjustment(macros, user.Goals, current)

	return score
}

// ContainsAllergens reports whether any ingredient name contains any
// of the user's allergy strings, case-insensitively. This is a hard
// predicate and is never overridden by score.
func (s *MacroScorer) ContainsAllergens(rec recipe.Recipe, allergies []string) bool {
	for _, allergy := range allergies {
		needle := strings.ToLower(strings.TrimSpace(allergy))
		if needle == "" {
			continue
		}
		for _, ing := range rec.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), needle) {
				return true
			}
		}
	}
	return false
}

// proximity maps the relative distance between actual and target onto
// [0, 1], with 1 at a perfect match and 0 at a full target's worth of
// deviation or more.
func proximity(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Max(0, 1-math.Abs(actual-target)/target)
}

// satietyBonus rewards protein- and fat-dense recipes when the slot
// demands a high-satiety meal.
func satietyBonus(macros nutrition.Profile, ctx MealContext) float64 {
	if ctx.Satiety != SatietyHigh || macros.Calories <= 0 {
		return 0
	}
	// Share of calories from protein (4 kcal/g) and fat (9 kcal/g).
	filling := (macros.ProteinG*4 + macros.FatG*9) / macros.Calories
	if filling > 0.5 {
		return 5
	}
	return 0
}

// carbTimingBonus rewards carb shares that match the slot's timing
// preference: high for fast-digesting and recovery meals, low for
// slow-digesting ones.
func carbTimingBonus(macros nutrition.Profile, ctx MealContext) float64 {
	if macros.Calories <= 0 {
		return 0
	}
	carbShare := macros.CarbsG * 4 / macros.Calories

	switch ctx.CarbTiming {
	case CarbFastDigesting, CarbRecovery:
		if carbShare > 0.5 {
			return 5
		}
	case CarbSlowDigesting:
		if carbShare < 0.4 {
			return 5
		}
	}
	return 0
}

// preferenceAdjustment adds a small bonus per liked ingredient and a
// larger penalty per disliked one. Matching is the same
// case-insensitive substring rule used for allergens.
func preferenceAdjustment(rec recipe.Recipe, user *profile.UserProfile) float64 {
	adj := 0.0
	for _, ing := range rec.Ingredients {
		name := strings.ToLower(ing.Name)
		for _, liked := range user.LikedFoods {
			if liked != "" && strings.Contains(name, strings.ToLower(liked)) {
				adj += 2
			}
		}
		for _, disliked := range user.DislikedFoods {
			if disliked != "" && strings.Contains(name, strings.ToLower(disliked)) {
				adj -= 3
			}
		}
	}
	return adj
}

// runningAdjustment nudges later slots toward whatever macro the day
// is short on so far. The running total is a signal only; the per-meal
// targets are never reduced by it.
func runningAdjustment(macros nutrition.Profile, goals nutrition.Goals, current nutrition.Profile) float64 {
	if current.Calories <= 0 || goals.Calories <= 0 || macros.Calories <= 0 {
		return 0
	}

	goalProteinShare := goals.ProteinG * 4 / goals.Calories
	dayProteinShare := current.ProteinG * 4 / current.Calories
	recProteinShare := macros.ProteinG * 4 / macros.Calories

	// Behind on protein so far: favor recipes above the goal share,
	// and vice versa.
	if dayProteinShare < goalProteinShare && recProteinShare > goalProteinShare {
		return 3
	}
	if dayProteinShare > goalProteinShare && recProteinShare < goalProteinShare {
		return 3
	}
	return 0
}
