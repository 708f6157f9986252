package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"daily-meal-planner/internal/fooddata"
	"daily-meal-planner/internal/recipe"
)

// Clipper imports recipes from web pages. It extracts the structured
// schema.org/Recipe data a page carries and resolves every ingredient
// against the food database, so the saved recipe is fully usable by
// the planner without further lookups.
type Clipper struct {
	nutrients  fooddata.Source
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(nutrients fooddata.Source) *Clipper {
	return &Clipper{
		nutrients: nutrients,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// jsonLDRecipe mirrors the schema.org/Recipe fields we consume.
type jsonLDRecipe struct {
	Type               any      `json:"@type"`
	Name               string   `json:"name"`
	RecipeIngredient   []string `json:"recipeIngredient"`
	RecipeInstructions any      `json:"recipeInstructions"`
	CookTime           string   `json:"cookTime"`
	TotalTime          string   `json:"totalTime"`
}

// ClipURL fetches the URL, extracts the recipe and resolves its
// ingredients. The returned recipe is not persisted; callers decide
// where it goes.
func (c *Clipper) ClipURL(ctx context.Context, pageURL string) (*recipe.Recipe, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	extracted, err := extractRecipe(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract recipe from %s: %w", pageURL, err)
	}

	rec := &recipe.Recipe{
		ID:                 slugify(extracted.Name),
		Name:               extracted.Name,
		CookingTimeMinutes: extracted.CookingMinutes,
		Instructions:       extracted.Instructions,
		SourceURL:          pageURL,
	}

	for _, line := range extracted.Ingredients {
		name, grams, toTaste := parseIngredientLine(line)

		ing := recipe.Ingredient{Name: name, Grams: grams, ToTaste: toTaste}
		if !toTaste {
			per100, err := c.nutrients.Lookup(ctx, name)
			if err != nil {
				log.Printf("Warning: no nutrient data for %q, keeping zero profile: %v", name, err)
			} else {
				ing.Per100g = per100
			}
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}

	return rec, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// extractedRecipe is the intermediate result before nutrient
// resolution.
type extractedRecipe struct {
	Name           string
	Ingredients    []string
	Instructions   []string
	CookingMinutes int
}

// extractRecipe prefers schema.org JSON-LD and falls back to
// microdata itemprop selectors.
func extractRecipe(doc *goquery.Document) (*extractedRecipe, error) {
	var found *extractedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if rec := parseJSONLD(s.Text()); rec != nil {
			found = rec
			return false
		}
		return true
	})
	if found != nil {
		return found, nil
	}

	if rec := parseMicrodata(doc); rec != nil {
		return rec, nil
	}
	return nil, fmt.Errorf("no schema.org recipe data found")
}

func parseJSONLD(raw string) *extractedRecipe {
	// A page may carry a single object, an array, or an @graph.
	candidates := []json.RawMessage{json.RawMessage(raw)}

	var asArray []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &asArray); err == nil {
		candidates = asArray
	}
	var asGraph struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(raw), &asGraph); err == nil && len(asGraph.Graph) > 0 {
		candidates = append(candidates, asGraph.Graph...)
	}

	for _, candidate := range candidates {
		var rec jsonLDRecipe
		if err := json.Unmarshal(candidate, &rec); err != nil {
			continue
		}
		if !isRecipeType(rec.Type) || rec.Name == "" || len(rec.RecipeIngredient) == 0 {
			continue
		}
		return &extractedRecipe{
			Name:           rec.Name,
			Ingredients:    rec.RecipeIngredient,
			Instructions:   parseInstructions(rec.RecipeInstructions),
			CookingMinutes: parseISODurationMinutes(firstNonEmpty(rec.CookTime, rec.TotalTime)),
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// parseInstructions handles both plain strings and HowToStep objects.
func parseInstructions(raw any) []string {
	var steps []string
	switch v := raw.(type) {
	case string:
		if v != "" {
			steps = append(steps, v)
		}
	case []any:
		for _, item := range v {
			switch step := item.(type) {
			case string:
				steps = append(steps, step)
			case map[string]any:
				if text, ok := step["text"].(string); ok {
					steps = append(steps, text)
				}
			}
		}
	}
	return steps
}

func parseMicrodata(doc *goquery.Document) *extractedRecipe {
	scope := doc.Find(`[itemtype$="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return nil
	}

	rec := &extractedRecipe{
		Name: strings.TrimSpace(scope.Find(`[itemprop="name"]`).First().Text()),
	}
	scope.Find(`[itemprop="recipeIngredient"]`).Each(func(i int, s *goquery.Selection) {
		rec.Ingredients = append(rec.Ingredients, strings.TrimSpace(s.Text()))
	})
	scope.Find(`[itemprop="recipeInstructions"]`).Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			rec.Instructions = append(rec.Instructions, text)
		}
	})
	if dur, ok := scope.Find(`[itemprop="cookTime"]`).First().Attr("content"); ok {
		rec.CookingMinutes = parseISODurationMinutes(dur)
	}

	if rec.Name == "" || len(rec.Ingredients) == 0 {
		return nil
	}
	return rec
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// parseISODurationMinutes converts an ISO 8601 duration like "PT1H30M"
// to whole minutes. Unparseable input yields 0.
func parseISODurationMinutes(raw string) int {
	m := isoDurationRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

var quantityRe = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*(g|gram|grams|kg|ml|l|tbsp|tsp|cup|cups)?\s+(.+)$`)

// gramsPerUnit approximates household measures; densities are treated
// as water-like, which is close enough for planning-level math.
var gramsPerUnit = map[string]float64{
	"g": 1, "gram": 1, "grams": 1,
	"kg": 1000, "ml": 1, "l": 1000,
	"tbsp": 15, "tsp": 5, "cup": 240, "cups": 240,
}

// parseIngredientLine splits a free-text ingredient line into a name
// and a gram quantity. Lines without a parseable quantity default to
// 100g; "to taste" style lines are flagged and excluded from
// nutrition math.
func parseIngredientLine(line string) (name string, grams float64, toTaste bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)

	if strings.Contains(lower, "to taste") || strings.HasPrefix(lower, "pinch of ") {
		name = strings.TrimSpace(strings.NewReplacer(", to taste", "", " to taste", "", "pinch of ", "").Replace(lower))
		return name, 0, true
	}

	m := quantityRe.FindStringSubmatch(trimmed)
	if m == nil {
		return trimmed, 100, false
	}

	qty, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return trimmed, 100, false
	}

	unit := strings.ToLower(m[2])
	factor, ok := gramsPerUnit[unit]
	if !ok {
		// Bare count like "2 eggs": assume 100g pieces.
		return strings.TrimSpace(m[3]), qty * 100, false
	}
	return strings.TrimSpace(m[3]), qty * factor, false
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
