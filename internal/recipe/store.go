package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store provides file-based storage for recipes, one JSON file per
// recipe. It serves as the fallback catalog source when the database
// is empty and as the export target for imported recipes.
type Store struct {
	basePath string
}

// NewStore creates a new Store and ensures the base directory exists.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) path(recipeID string) string {
	return filepath.Join(s.basePath, recipeID+".json")
}

// Save stores a recipe to a file named after its ID.
func (s *Store) Save(rec Recipe) error {
	if rec.ID == "" {
		return fmt.Errorf("cannot save recipe with empty ID")
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := os.WriteFile(s.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a recipe by ID.
func (s *Store) Load(recipeID string) (*Recipe, error) {
	data, err := os.ReadFile(s.path(recipeID))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &rec, nil
}

// Exists checks whether a recipe file exists for the given ID.
func (s *Store) Exists(recipeID string) bool {
	_, err := os.Stat(s.path(recipeID))
	return !os.IsNotExist(err)
}

// ListAll loads every recipe in the store. Files are visited in
// lexical filename order so the catalog ordering is deterministic,
// which downstream selection relies on for tie-breaking.
func (s *Store) ListAll() ([]Recipe, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var recipes []Recipe
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.basePath, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe file %s: %w", name, err)
		}
		var rec Recipe
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe file %s: %w", name, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}
