package clipper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"daily-meal-planner/internal/nutrition"
)

const jsonLDPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Chicken Rice Bowl",
  "cookTime": "PT25M",
  "recipeIngredient": ["300 g chicken breast", "150 g rice", "salt, to taste"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Cook the rice."},
    {"@type": "HowToStep", "text": "Grill the chicken."}
  ]
}
</script>
</head><body><h1>Chicken Rice Bowl</h1></body></html>`

const microdataPage = `<!DOCTYPE html>
<html><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Lentil Soup</h1>
  <meta itemprop="cookTime" content="PT1H10M">
  <li itemprop="recipeIngredient">200 g red lentils</li>
  <li itemprop="recipeIngredient">1 l vegetable stock</li>
  <p itemprop="recipeInstructions">Simmer everything for an hour.</p>
</div>
</body></html>`

// fixedSource returns the same profile for every ingredient and
// records what was asked for.
type fixedSource struct {
	lookups []string
	profile nutrition.Profile
}

func (s *fixedSource) Lookup(ctx context.Context, ingredient string) (nutrition.Profile, error) {
	s.lookups = append(s.lookups, ingredient)
	return s.profile, nil
}

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClipURLJSONLD(t *testing.T) {
	srv := servePage(t, jsonLDPage)
	src := &fixedSource{profile: nutrition.Profile{Calories: 120, ProteinG: 22}}

	rec, err := NewClipper(src).ClipURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if rec.ID != "chicken-rice-bowl" {
		t.Errorf("Expected slug id, got %q", rec.ID)
	}
	if rec.Name != "Chicken Rice Bowl" {
		t.Errorf("Expected recipe name, got %q", rec.Name)
	}
	if rec.CookingTimeMinutes != 25 {
		t.Errorf("Expected 25 minutes, got %d", rec.CookingTimeMinutes)
	}
	if len(rec.Ingredients) != 3 {
		t.Fatalf("Expected 3 ingredients, got %d", len(rec.Ingredients))
	}
	if rec.Ingredients[0].Name != "chicken breast" || rec.Ingredients[0].Grams != 300 {
		t.Errorf("Unexpected first ingredient: %+v", rec.Ingredients[0])
	}
	if rec.Ingredients[0].Per100g.Calories != 120 {
		t.Errorf("Expected resolved nutrients, got %+v", rec.Ingredients[0].Per100g)
	}
	if !rec.Ingredients[2].ToTaste {
		t.Errorf("Expected 'salt, to taste' flagged as to-taste: %+v", rec.Ingredients[2])
	}
	// To-taste ingredients are never resolved.
	if len(src.lookups) != 2 {
		t.Errorf("Expected 2 nutrient lookups, got %v", src.lookups)
	}
	if len(rec.Instructions) != 2 || rec.Instructions[0] != "Cook the rice." {
		t.Errorf("Unexpected instructions: %v", rec.Instructions)
	}
	if rec.SourceURL != srv.URL {
		t.Errorf("Expected source URL recorded, got %q", rec.SourceURL)
	}
}

func TestClipURLMicrodataFallback(t *testing.T) {
	srv := servePage(t, microdataPage)
	src := &fixedSource{}

	rec, err := NewClipper(src).ClipURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if rec.Name != "Lentil Soup" {
		t.Errorf("Expected microdata name, got %q", rec.Name)
	}
	if rec.CookingTimeMinutes != 70 {
		t.Errorf("Expected 70 minutes from PT1H10M, got %d", rec.CookingTimeMinutes)
	}
	if len(rec.Ingredients) != 2 || rec.Ingredients[1].Grams != 1000 {
		t.Errorf("Unexpected ingredients: %+v", rec.Ingredients)
	}
}

func TestClipURLNoRecipe(t *testing.T) {
	srv := servePage(t, `<html><body><p>Just a blog post.</p></body></html>`)

	_, err := NewClipper(&fixedSource{}).ClipURL(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Expected an error for a page without recipe data, got nil")
	}
}

func TestParseIngredientLine(t *testing.T) {
	cases := []struct {
		line    string
		name    string
		grams   float64
		toTaste bool
	}{
		{"300 g chicken breast", "chicken breast", 300, false},
		{"1.5 kg potatoes", "potatoes", 1500, false},
		{"2 tbsp olive oil", "olive oil", 30, false},
		{"1 cup milk", "milk", 240, false},
		{"2 eggs", "eggs", 200, false},
		{"salt, to taste", "salt", 0, true},
		{"pinch of nutmeg", "nutmeg", 0, true},
		{"fresh basil", "fresh basil", 100, false},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			name, grams, toTaste := parseIngredientLine(tc.line)
			if name != tc.name || grams != tc.grams || toTaste != tc.toTaste {
				t.Errorf("parseIngredientLine(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tc.line, name, grams, toTaste, tc.name, tc.grams, tc.toTaste)
			}
		})
	}
}

func TestParseISODurationMinutes(t *testing.T) {
	cases := map[string]int{"PT25M": 25, "PT1H": 60, "PT1H30M": 90, "": 0, "junk": 0}
	for raw, want := range cases {
		if got := parseISODurationMinutes(raw); got != want {
			t.Errorf("parseISODurationMinutes(%q) = %d, want %d", raw, got, want)
		}
	}
}
