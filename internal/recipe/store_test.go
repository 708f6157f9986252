package recipe

import (
	"context"
	"path/filepath"
	"testing"

	"daily-meal-planner/internal/database"
	"daily-meal-planner/internal/nutrition"
)

func sample(id string) Recipe {
	return Recipe{
		ID:                 id,
		Name:               "Recipe " + id,
		CookingTimeMinutes: 20,
		Ingredients: []Ingredient{
			{Name: "oats", Grams: 80, Per100g: nutrition.Profile{Calories: 380, ProteinG: 13}},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	rec := sample("oatmeal")
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists("oatmeal") {
		t.Error("Expected saved recipe to exist")
	}
	if store.Exists("missing") {
		t.Error("Did not expect a missing recipe to exist")
	}

	loaded, err := store.Load("oatmeal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != rec.Name || len(loaded.Ingredients) != 1 {
		t.Errorf("Loaded recipe differs: %+v", loaded)
	}
}

func TestStoreSaveEmptyID(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Save(Recipe{Name: "nameless"}); err == nil {
		t.Error("Expected an error for an empty recipe ID")
	}
}

func TestStoreListAllLexicalOrder(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	// Saved out of order; listing is by filename.
	for _, id := range []string{"c-soup", "a-oats", "b-rice"} {
		if err := store.Save(sample(id)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	recipes, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	got := make([]string, len(recipes))
	for i, rec := range recipes {
		got[i] = rec.ID
	}
	want := []string{"a-oats", "b-rice", "c-soup"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected lexical order %v, got %v", want, got)
		}
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db.SQL)
	ctx := context.Background()

	if err := repo.Save(ctx, sample("oatmeal")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.Save(ctx, sample("chicken-rice")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Run("Get", func(t *testing.T) {
		rec, err := repo.Get(ctx, "oatmeal")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec == nil || rec.Name != "Recipe oatmeal" {
			t.Errorf("Unexpected recipe: %+v", rec)
		}

		missing, err := repo.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get of missing recipe failed: %v", err)
		}
		if missing != nil {
			t.Errorf("Expected nil for a missing recipe, got %+v", missing)
		}
	})

	t.Run("ListKeepsInsertionOrder", func(t *testing.T) {
		recipes, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(recipes) != 2 || recipes[0].ID != "oatmeal" || recipes[1].ID != "chicken-rice" {
			t.Errorf("Expected insertion order, got %+v", recipes)
		}
	})

	t.Run("UpsertKeepsOrder", func(t *testing.T) {
		updated := sample("oatmeal")
		updated.CookingTimeMinutes = 5
		if err := repo.Save(ctx, updated); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		recipes, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if recipes[0].ID != "oatmeal" || recipes[0].CookingTimeMinutes != 5 {
			t.Errorf("Upsert should update in place, got %+v", recipes[0])
		}
	})

	t.Run("CountAndDelete", func(t *testing.T) {
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 recipes, got %d", count)
		}

		if err := repo.Delete(ctx, "oatmeal"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		count, err = repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 recipe after delete, got %d", count)
		}
	})
}
