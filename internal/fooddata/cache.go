package fooddata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"daily-meal-planner/internal/nutrition"
)

// CachedSource wraps a Source with a database-backed cache keyed by
// normalized ingredient name, so repeated imports of the same
// ingredient never re-query the network.
type CachedSource struct {
	src Source
	db  *sql.DB
}

// NewCachedSource creates a CachedSource on top of src.
func NewCachedSource(src Source, db *sql.DB) *CachedSource {
	return &CachedSource{src: src, db: db}
}

// Lookup returns the cached profile for the ingredient, falling back
// to the underlying source on a miss and caching the result.
func (c *CachedSource) Lookup(ctx context.Context, ingredient string) (nutrition.Profile, error) {
	key := normalizeName(ingredient)

	var p nutrition.Profile
	err := c.db.QueryRowContext(ctx, `
		SELECT calories, protein_g, fat_g, carbs_g FROM nutrient_cache WHERE ingredient = ?`, key,
	).Scan(&p.Calories, &p.ProteinG, &p.FatG, &p.CarbsG)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nutrition.Profile{}, fmt.Errorf("failed to read nutrient cache: %w", err)
	}

	p, err = c.src.Lookup(ctx, ingredient)
	if err != nil {
		return nutrition.Profile{}, err
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO nutrient_cache (ingredient, calories, protein_g, fat_g, carbs_g, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ingredient) DO UPDATE SET
			calories = excluded.calories, protein_g = excluded.protein_g,
			fat_g = excluded.fat_g, carbs_g = excluded.carbs_g, cached_at = excluded.cached_at`,
		key, p.Calories, p.ProteinG, p.FatG, p.CarbsG, time.Now().UTC(),
	)
	if err != nil {
		return nutrition.Profile{}, fmt.Errorf("failed to write nutrient cache: %w", err)
	}

	return p, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
