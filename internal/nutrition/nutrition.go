package nutrition

// Profile holds the macro-nutrient content of a meal or a whole day.
// Profiles are additive: two profiles combine by field-wise sum.
type Profile struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// Add returns the field-wise sum of p and other.
func (p Profile) Add(other Profile) Profile {
	return Profile{
		Calories: p.Calories + other.Calories,
		ProteinG: p.ProteinG + other.ProteinG,
		FatG:     p.FatG + other.FatG,
		CarbsG:   p.CarbsG + other.CarbsG,
	}
}

// Scale returns p with every field multiplied by factor.
func (p Profile) Scale(factor float64) Profile {
	return Profile{
		Calories: p.Calories * factor,
		ProteinG: p.ProteinG * factor,
		FatG:     p.FatG * factor,
		CarbsG:   p.CarbsG * factor,
	}
}

// IsZero reports whether every field of p is zero.
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// Sum aggregates a sequence of profiles into a single total. The result
// is independent of ordering; an empty input yields the zero profile.
func Sum(profiles []Profile) Profile {
	var total Profile
	for _, p := range profiles {
		total = total.Add(p)
	}
	return total
}

// Goals are the daily macro targets for a user. Fat is a range; the
// remaining macros are point targets evaluated with tolerance.
type Goals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatGMin  float64 `json:"fat_g_min"`
	FatGMax  float64 `json:"fat_g_max"`
	CarbsG   float64 `json:"carbs_g"`
}

// FatMidpoint returns the midpoint of the fat range. It is used for
// display-only adherence figures, never for pass/fail checks.
func (g Goals) FatMidpoint() float64 {
	return (g.FatGMin + g.FatGMax) / 2
}
