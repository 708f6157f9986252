package planner

import (
	"fmt"
	"time"

	"daily-meal-planner/internal/nutrition"
)

// Validate checks a fully selected day against the original goals and
// assembles the PlanningResult. Warnings are advisory: a plan that
// misses tolerance is still returned fully populated with
// MeetsGoals=false.
func Validate(date time.Time, meals []Meal, goals nutrition.Goals) PlanningResult {
	// Selection aborts before this point, but guard anyway.
	if len(meals) == 0 {
		return PlanningResult{
			Success:         false,
			TargetAdherence: map[string]float64{},
			Warnings:        []string{"No meals planned"},
		}
	}

	total := Aggregate(meals)

	adherence := map[string]float64{
		"calories": adherencePct(total.Calories, goals.Calories),
		"protein":  adherencePct(total.ProteinG, goals.ProteinG),
		"carbs":    adherencePct(total.CarbsG, goals.CarbsG),
		// Display-only: fat is gated by its range, not this figure.
		"fat": adherencePct(total.FatG, goals.FatMidpoint()),
	}

	var warnings []string

	caloriesOK := withinTolerance(total.Calories, goals.Calories)
	if !caloriesOK {
		warnings = append(warnings, toleranceWarning("calories", total.Calories, goals.Calories, adherence["calories"]))
	}
	proteinOK := withinTolerance(total.ProteinG, goals.ProteinG)
	if !proteinOK {
		warnings = append(warnings, toleranceWarning("protein", total.ProteinG, goals.ProteinG, adherence["protein"]))
	}
	carbsOK := withinTolerance(total.CarbsG, goals.CarbsG)
	if !carbsOK {
		warnings = append(warnings, toleranceWarning("carbs", total.CarbsG, goals.CarbsG, adherence["carbs"]))
	}

	fatOK := total.FatG >= goals.FatGMin && total.FatG <= goals.FatGMax
	if !fatOK {
		if total.FatG < goals.FatGMin {
			warnings = append(warnings, fmt.Sprintf("fat below minimum: %.1fg vs minimum %.1fg (%.1f%%)", total.FatG, goals.FatGMin, adherence["fat"]))
		} else {
			warnings = append(warnings, fmt.Sprintf("fat above maximum: %.1fg vs maximum %.1fg (%.1f%%)", total.FatG, goals.FatGMax, adherence["fat"]))
		}
	}

	success := caloriesOK && proteinOK && fatOK && carbsOK

	plan := &DailyMealPlan{
		Date:           date,
		Meals:          meals,
		TotalNutrition: total,
		Goals:          goals,
		MeetsGoals:     success,
	}

	return PlanningResult{
		Plan:            plan,
		Success:         success,
		TotalNutrition:  total,
		TargetAdherence: adherence,
		Warnings:        warnings,
	}
}

// withinTolerance reports whether actual lands in the inclusive
// [90%, 110%] band around target. The cross-multiplied form keeps
// totals at exactly 90.0% and 110.0% inside the band instead of
// falling to float rounding.
func withinTolerance(actual, target float64) bool {
	return actual*10 >= target*9 && actual*10 <= target*11
}

// adherencePct is actual/target as a percentage, with non-positive
// targets mapped to 0 to guard the division.
func adherencePct(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return actual / target * 100
}

func toleranceWarning(name string, actual, target, pct float64) string {
	if actual < target {
		return fmt.Sprintf("%s below target: %.1f vs target %.1f (%.1f%%)", name, actual, target, pct)
	}
	return fmt.Sprintf("%s above target: %.1f vs target %.1f (%.1f%%)", name, actual, target, pct)
}
