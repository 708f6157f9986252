package shopping

import (
	"fmt"
	"strings"

	"daily-meal-planner/internal/planner"
)

// BuildList aggregates the ingredients of every meal in the plan into
// a deduplicated shopping list. Quantities for the same ingredient are
// summed; to-taste items appear once without a quantity. Items keep
// the order in which their ingredient first appears in the plan.
func BuildList(plan *planner.DailyMealPlan) []string {
	if plan == nil {
		return nil
	}

	type entry struct {
		name    string
		grams   float64
		toTaste bool
	}

	var order []string
	byName := make(map[string]*entry)

	for _, meal := range plan.Meals {
		for _, ing := range meal.Recipe.Ingredients {
			key := strings.ToLower(strings.TrimSpace(ing.Name))
			if key == "" {
				continue
			}
			e, ok := byName[key]
			if !ok {
				e = &entry{name: strings.TrimSpace(ing.Name)}
				byName[key] = e
				order = append(order, key)
			}
			e.grams += ing.Grams
			e.toTaste = e.toTaste || ing.ToTaste
		}
	}

	items := make([]string, 0, len(order))
	for _, key := range order {
		e := byName[key]
		if e.grams > 0 {
			items = append(items, fmt.Sprintf("%s (%.0fg)", e.name, e.grams))
		} else if e.toTaste {
			items = append(items, fmt.Sprintf("%s (to taste)", e.name))
		} else {
			items = append(items, e.name)
		}
	}
	return items
}
