package planner

import (
	"time"

	"daily-meal-planner/internal/nutrition"
	"daily-meal-planner/internal/recipe"
)

// MealType identifies one of the three daily meal slots.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// mealOrder is the fixed forward order of the greedy pass.
var mealOrder = [3]MealType{MealBreakfast, MealLunch, MealDinner}

// Satiety labels how filling a meal should be, driven by the length of
// the fast until the next meal.
type Satiety string

const (
	SatietyMedium Satiety = "medium"
	SatietyHigh   Satiety = "high"
)

// CarbTiming labels which carbohydrate profile a meal should favor,
// driven by workout proximity.
type CarbTiming string

const (
	CarbFastDigesting CarbTiming = "fast_digesting"
	CarbRecovery      CarbTiming = "recovery"
	CarbSlowDigesting CarbTiming = "slow_digesting"
	CarbMaintenance   CarbTiming = "maintenance"
)

// MealContext carries the per-meal targets derived from the daily
// goals and schedule. PriorityMicronutrients is reserved for future
// micronutrient optimization and is always empty.
type MealContext struct {
	MealType               MealType   `json:"meal_type"`
	TimeSlot               string     `json:"time_slot"`
	CookingTimeMax         int        `json:"cooking_time_max"`
	TargetCalories         float64    `json:"target_calories"`
	TargetProtein          float64    `json:"target_protein"`
	TargetFatMin           float64    `json:"target_fat_min"`
	TargetFatMax           float64    `json:"target_fat_max"`
	TargetCarbs            float64    `json:"target_carbs"`
	Satiety                Satiety    `json:"satiety_requirement"`
	CarbTiming             CarbTiming `json:"carb_timing_preference"`
	PriorityMicronutrients []string   `json:"priority_micronutrients,omitempty"`
}

// Meal is a committed meal slot. It is created once during selection
// and never modified afterwards.
type Meal struct {
	Recipe        recipe.Recipe     `json:"recipe"`
	Nutrition     nutrition.Profile `json:"nutrition"`
	MealType      MealType          `json:"meal_type"`
	BusynessLevel int               `json:"busyness_level"`
	ScheduledTime string            `json:"scheduled_time,omitempty"`
}

// DailyMealPlan is a fully selected day: exactly three meals, one per
// type, plus the validated totals.
type DailyMealPlan struct {
	Date           time.Time         `json:"date"`
	Meals          []Meal            `json:"meals"`
	TotalNutrition nutrition.Profile `json:"total_nutrition"`
	Goals          nutrition.Goals   `json:"goals"`
	MeetsGoals     bool              `json:"meets_goals"`
}

// PlanningResult is the outcome of one planning run. Plan is nil when
// selection aborted on candidate exhaustion; consumers must handle
// that case explicitly, because Warnings is also populated on
// fully-built plans that merely miss tolerance.
type PlanningResult struct {
	Plan            *DailyMealPlan     `json:"daily_plan,omitempty"`
	Success         bool               `json:"success"`
	TotalNutrition  nutrition.Profile  `json:"total_nutrition"`
	TargetAdherence map[string]float64 `json:"target_adherence"`
	Warnings        []string           `json:"warnings"`
}

// Aggregate sums the nutrition of the given meals. It is the
// authoritative total used for validation and must equal the running
// total accumulated during selection.
func Aggregate(meals []Meal) nutrition.Profile {
	profiles := make([]nutrition.Profile, len(meals))
	for i, m := range meals {
		profiles[i] = m.Nutrition
	}
	return nutrition.Sum(profiles)
}
