package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"daily-meal-planner/internal/nutrition"
)

// UserProfile holds a user's daily goals, schedule and food
// preferences. The schedule maps "HH:MM" times of day to a busyness
// level: 0 marks a workout, 1 means snack-only, 2-4 encode an
// increasing cooking-time budget.
type UserProfile struct {
	Goals         nutrition.Goals `json:"goals"`
	Schedule      map[string]int  `json:"schedule"`
	LikedFoods    []string        `json:"liked_foods"`
	DislikedFoods []string        `json:"disliked_foods"`
	Allergies     []string        `json:"allergies"`
}

// Load reads a user profile from a JSON file.
func Load(path string) (*UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if len(p.Schedule) == 0 {
		return nil, fmt.Errorf("profile has no schedule entries")
	}
	return &p, nil
}
