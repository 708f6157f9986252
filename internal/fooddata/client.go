package fooddata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"daily-meal-planner/internal/nutrition"
)

// Source resolves an ingredient name to per-100g nutrient values.
type Source interface {
	Lookup(ctx context.Context, ingredient string) (nutrition.Profile, error)
}

// ErrNotFound is returned when the food database has no entry for an
// ingredient.
var ErrNotFound = fmt.Errorf("ingredient not found in food database")

// Client queries a FoodData Central style search API for per-100g
// nutrient values.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new food database client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Lookup searches the food database for an ingredient and maps the
// first result's nutrients onto a per-100g profile.
func (c *Client) Lookup(ctx context.Context, ingredient string) (nutrition.Profile, error) {
	endpoint := fmt.Sprintf("%s/foods/search?query=%s&pageSize=1&api_key=%s",
		c.baseURL, url.QueryEscape(ingredient), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nutrition.Profile{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nutrition.Profile{}, fmt.Errorf("failed to query food database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nutrition.Profile{}, fmt.Errorf("food database error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nutrition.Profile{}, fmt.Errorf("failed to decode food database response: %w", err)
	}

	if len(search.Foods) == 0 {
		return nutrition.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, ingredient)
	}

	var profile nutrition.Profile
	for _, n := range search.Foods[0].FoodNutrients {
		switch {
		case n.NutrientName == "Energy" && strings.EqualFold(n.UnitName, "kcal"):
			profile.Calories = n.Value
		case n.NutrientName == "Protein":
			profile.ProteinG = n.Value
		case n.NutrientName == "Total lipid (fat)":
			profile.FatG = n.Value
		case n.NutrientName == "Carbohydrate, by difference":
			profile.CarbsG = n.Value
		}
	}
	return profile, nil
}
