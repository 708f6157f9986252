package recipe

import "daily-meal-planner/internal/nutrition"

// Ingredient is a fully resolved recipe ingredient. Per100g holds the
// nutrient values looked up from the food database at import time, so
// no resolution happens at planning time.
type Ingredient struct {
	Name    string            `json:"name"`
	Grams   float64           `json:"grams"`
	ToTaste bool              `json:"to_taste,omitempty"`
	Per100g nutrition.Profile `json:"per_100g"`
}

// Recipe is an immutable recipe from the catalog.
type Recipe struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Ingredients        []Ingredient `json:"ingredients"`
	CookingTimeMinutes int          `json:"cooking_time_minutes"`
	Instructions       []string     `json:"instructions,omitempty"`
	SourceURL          string       `json:"source_url,omitempty"`
}

// Nutrition computes the recipe's profile from its resolved
// ingredients. To-taste ingredients carry no fixed quantity and are
// excluded from the quantity math.
func (r Recipe) Nutrition() nutrition.Profile {
	var total nutrition.Profile
	for _, ing := range r.Ingredients {
		if ing.ToTaste || ing.Grams <= 0 {
			continue
		}
		total = total.Add(ing.Per100g.Scale(ing.Grams / 100))
	}
	return total
}

// Calculator exposes recipe nutrition computation as a value type so
// the planner can depend on an interface and tests can substitute
// fixed profiles.
type Calculator struct{}

// Calculate returns the nutrition profile of rec.
func (Calculator) Calculate(rec Recipe) nutrition.Profile {
	return rec.Nutrition()
}
