package fooddata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"daily-meal-planner/internal/database"
	"daily-meal-planner/internal/nutrition"
)

func TestClientLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foods/search" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("query") == "unobtainium" {
			w.Write([]byte(`{"foods": []}`))
			return
		}
		w.Write([]byte(`{"foods": [{
			"description": "Chicken, breast, raw",
			"foodNutrients": [
				{"nutrientName": "Energy", "unitName": "KCAL", "value": 120},
				{"nutrientName": "Protein", "unitName": "G", "value": 22.5},
				{"nutrientName": "Total lipid (fat)", "unitName": "G", "value": 2.6},
				{"nutrientName": "Carbohydrate, by difference", "unitName": "G", "value": 0}
			]
		}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test_key")

	t.Run("Found", func(t *testing.T) {
		p, err := client.Lookup(context.Background(), "chicken breast")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		want := nutrition.Profile{Calories: 120, ProteinG: 22.5, FatG: 2.6, CarbsG: 0}
		if p != want {
			t.Errorf("Expected %+v, got %+v", want, p)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := client.Lookup(context.Background(), "unobtainium")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

// countingSource counts lookups so cache hits are observable.
type countingSource struct {
	calls   int
	profile nutrition.Profile
}

func (s *countingSource) Lookup(ctx context.Context, ingredient string) (nutrition.Profile, error) {
	s.calls++
	return s.profile, nil
}

func TestCachedSource(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	src := &countingSource{profile: nutrition.Profile{Calories: 52, CarbsG: 14}}
	cached := NewCachedSource(src, db.SQL)

	ctx := context.Background()

	first, err := cached.Lookup(ctx, "Apple")
	if err != nil {
		t.Fatalf("First lookup failed: %v", err)
	}
	if first != src.profile {
		t.Errorf("Expected %+v, got %+v", src.profile, first)
	}
	if src.calls != 1 {
		t.Fatalf("Expected 1 upstream call, got %d", src.calls)
	}

	// Same ingredient, different casing and spacing: served from cache.
	second, err := cached.Lookup(ctx, "  apple ")
	if err != nil {
		t.Fatalf("Second lookup failed: %v", err)
	}
	if second != first {
		t.Errorf("Cache returned %+v, expected %+v", second, first)
	}
	if src.calls != 1 {
		t.Errorf("Expected cache hit, upstream called %d times", src.calls)
	}

	// A different ingredient goes upstream again.
	if _, err := cached.Lookup(ctx, "banana"); err != nil {
		t.Fatalf("Third lookup failed: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", src.calls)
	}
}
