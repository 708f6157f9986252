package planner

import (
	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/profile"
)

// macroMultipliers adjust a per-meal baseline target.
type macroMultipliers struct {
	calories float64
	protein  float64
	fat      float64
	carbs    float64
}

var neutralMultipliers = macroMultipliers{calories: 1, protein: 1, fat: 1, carbs: 1}

// preWorkoutMultipliers shift a meal eaten 1-3 hours before a workout
// toward fast fuel: fewer calories, less protein and fat, more carbs.
var preWorkoutMultipliers = macroMultipliers{calories: 0.9, protein: 0.8, fat: 0.8, carbs: 1.1}

// DistributeTargets splits the daily goals into per-meal contexts for
// breakfast, lunch and dinner. The baseline is an even third of each
// goal; workout-relative and meal-specific multipliers are applied on
// top of it.
func DistributeTargets(goals nutrition.Goals, sched *profile.DailySchedule) map[MealType]MealContext {
	workoutHour, hasWorkout := sched.WorkoutHour()

	breakfastHour := profile.HourOf(sched.BreakfastTime)
	lunchHour := profile.HourOf(sched.LunchTime)
	dinnerHour := profile.HourOf(sched.DinnerTime)

	contexts := make(map[MealType]MealContext, 3)

	// Breakfast: the only adjustment is the pre-workout shift.
	breakfastMult := neutralMultipliers
	if hasWorkout && isPreWorkout(breakfastHour, workoutHour) {
		breakfastMult = preWorkoutMultipliers
	}
	contexts[MealBreakfast] = buildContext(
		MealBreakfast, goals, sched.BreakfastTime, sched.BreakfastBusyness, breakfastMult,
		satietyForGap(breakfastHour, lunchHour),
		carbTimingFor(MealBreakfast, breakfastHour, workoutHour, hasWorkout),
	)

	// Lunch: pre-workout wins over post-workout when both windows match.
	lunchMult := neutralMultipliers
	if hasWorkout && isPreWorkout(lunchHour, workoutHour) {
		lunchMult = preWorkoutMultipliers
	} else if hasWorkout && isPostWorkout(lunchHour, workoutHour) {
		lunchMult = macroMultipliers{calories: 1.1, protein: 1.2, fat: 1, carbs: 1.1}
	}
	contexts[MealLunch] = buildContext(
		MealLunch, goals, sched.LunchTime, sched.LunchBusyness, lunchMult,
		satietyForGap(lunchHour, dinnerHour),
		carbTimingFor(MealLunch, lunchHour, workoutHour, hasWorkout),
	)

	// Dinner always gets an upward calorie/protein adjustment; fat is
	// never scaled.
	dinnerMult := macroMultipliers{calories: 1.1, protein: 1.1, fat: 1, carbs: 1}
	if hasWorkout && isPostWorkout(dinnerHour, workoutHour) {
		dinnerMult = macroMultipliers{calories: 1.2, protein: 1.2, fat: 1, carbs: 1.1}
	}
	contexts[MealDinner] = buildContext(
		MealDinner, goals, sched.DinnerTime, sched.DinnerBusyness, dinnerMult,
		SatietyHigh,
		carbTimingFor(MealDinner, dinnerHour, workoutHour, hasWorkout),
	)

	return contexts
}

func buildContext(mt MealType, goals nutrition.Goals, timeSlot string, busyness int, mult macroMultipliers, satiety Satiety, timing CarbTiming) MealContext {
	return MealContext{
		MealType:       mt,
		TimeSlot:       timeSlot,
		CookingTimeMax: cookingTimeBudget(busyness),
		TargetCalories: goals.Calories / 3 * mult.calories,
		TargetProtein:  goals.ProteinG / 3 * mult.protein,
		TargetFatMin:   goals.FatGMin / 3 * mult.fat,
		TargetFatMax:   goals.FatGMax / 3 * mult.fat,
		TargetCarbs:    goals.CarbsG / 3 * mult.carbs,
		Satiety:        satiety,
		CarbTiming:     timing,
	}
}

// Workout windows are computed at hour granularity only; minutes are
// discarded before the meal hour ever reaches these comparisons.

func isPreWorkout(mealHour, workoutHour int) bool {
	diff := workoutHour - mealHour
	return diff >= 1 && diff <= 3
}

func isPostWorkout(mealHour, workoutHour int) bool {
	diff := mealHour - workoutHour
	return diff >= 0 && diff <= 3
}

// satietyForGap requires a high-satiety meal when the fast until the
// next meal exceeds 4 whole hours.
func satietyForGap(mealHour, nextMealHour int) Satiety {
	if nextMealHour-mealHour > 4 {
		return SatietyHigh
	}
	return SatietyMedium
}

func carbTimingFor(mt MealType, mealHour, workoutHour int, hasWorkout bool) CarbTiming {
	// Dinner is slow-digesting regardless of workout proximity.
	if mt == MealDinner {
		return CarbSlowDigesting
	}
	if hasWorkout {
		if isPreWorkout(mealHour, workoutHour) {
			return CarbFastDigesting
		}
		if isPostWorkout(mealHour, workoutHour) {
			return CarbRecovery
		}
	}
	return CarbMaintenance
}

// cookingTimeBudget maps a busyness level to the meal's cooking-time
// budget in minutes. Level 1 is snack-only; anything outside 1-3 gets
// the full hour.
func cookingTimeBudget(busyness int) int {
	switch busyness {
	case 1:
		return 5
	case 2:
		return 15
	case 3:
		return 30
	default:
		return 60
	}
}
