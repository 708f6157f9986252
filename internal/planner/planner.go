package planner

import (
	"fmt"
	"time"

	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/profile"
	"daily-meal-planner/internal/recipe"
)

// Planner turns a user's goals, schedule and recipe catalog into a
// single day's meal plan. Each invocation allocates fresh accumulator
// state, so independent planning runs may execute concurrently over a
// read-only catalog.
type Planner struct {
	scorer Scorer
	calc   Calculator
}

// New creates a Planner.
func New(scorer Scorer, calc Calculator) *Planner {
	return &Planner{scorer: scorer, calc: calc}
}

// selection is the fold state threaded through the three meal slots:
// the committed meals, the IDs they consumed, and the running total
// handed to the next slot's scoring call.
type selection struct {
	meals []Meal
	used  map[string]bool
	total nutrition.Profile
}

// PlanDay runs the forward greedy pass over the three meal slots and
// validates the finished day. Candidate exhaustion at any slot aborts
// immediately with Success=false and a nil Plan; no constraints are
// relaxed and no slot is retried.
func (p *Planner) PlanDay(date time.Time, user *profile.UserProfile, sched *profile.DailySchedule, recipes []recipe.Recipe) PlanningResult {
	contexts := DistributeTargets(user.Goals, sched)

	state := selection{used: make(map[string]bool, 3)}

	for _, mt := range mealOrder {
		ctx := contexts[mt]

		candidates := p.filterCandidates(recipes, ctx, user.Allergies, state.used)
		if len(candidates) == 0 {
			return PlanningResult{
				Success:         false,
				TotalNutrition:  state.total,
				TargetAdherence: map[string]float64{},
				Warnings:        []string{fmt.Sprintf("No recipes available for %s", mt)},
			}
		}

		chosen := p.pickBest(candidates, ctx, user, state.total)
		state = p.commitMeal(state, chosen, ctx, sched)
	}

	return Validate(date, state.meals, user.Goals)
}

// filterCandidates applies the hard constraints for a slot: cooking
// time within budget, no recipe already used this run, and no
// allergens. Input order is preserved; it is the deterministic
// tie-break for equal scores.
func (p *Planner) filterCandidates(recipes []recipe.Recipe, ctx MealContext, allergies []string, used map[string]bool) []recipe.Recipe {
	candidates := make([]recipe.Recipe, 0, len(recipes))
	for _, rec := range recipes {
		if rec.CookingTimeMinutes > ctx.CookingTimeMax {
			continue
		}
		if used[rec.ID] {
			continue
		}
		if p.scorer.ContainsAllergens(rec, allergies) {
			continue
		}
		candidates = append(candidates, rec)
	}
	return candidates
}

// pickBest scores every candidate against the slot context and the
// running total, returning the strictly highest scorer; the first
// candidate at the maximal score wins ties.
func (p *Planner) pickBest(candidates []recipe.Recipe, ctx MealContext, user *profile.UserProfile, current nutrition.Profile) recipe.Recipe {
	best := candidates[0]
	bestScore := p.scorer.Score(best, ctx, user, current)
	for _, rec := range candidates[1:] {
		if score := p.scorer.Score(rec, ctx, user, current); score > bestScore {
			best = rec
			bestScore = score
		}
	}
	return best
}

// commitMeal locks the chosen recipe into its slot and returns the
// next fold state.
func (p *Planner) commitMeal(state selection, chosen recipe.Recipe, ctx MealContext, sched *profile.DailySchedule) selection {
	macros := p.calc.Calculate(chosen)

	meal := Meal{
		Recipe:        chosen,
		Nutrition:     macros,
		MealType:      ctx.MealType,
		BusynessLevel: busynessFor(ctx.MealType, sched),
		ScheduledTime: ctx.TimeSlot,
	}

	used := make(map[string]bool, len(state.used)+1)
	for id := range state.used {
		used[id] = true
	}
	used[chosen.ID] = true

	return selection{
		meals: append(state.meals[:len(state.meals):len(state.meals)], meal),
		used:  used,
		total: state.total.Add(macros),
	}
}

func busynessFor(mt MealType, sched *profile.DailySchedule) int {
	switch mt {
	case MealBreakfast:
		return sched.BreakfastBusyness
	case MealLunch:
		return sched.LunchBusyness
	default:
		return sched.DinnerBusyness
	}
}
