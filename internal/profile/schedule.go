package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DailySchedule assigns the user's schedule entries to the three meal
// slots. The chronologically first three non-workout entries become
// breakfast, lunch and dinner in that fixed order.
type DailySchedule struct {
	BreakfastTime     string
	BreakfastBusyness int
	LunchTime         string
	LunchBusyness     int
	DinnerTime        string
	DinnerBusyness    int

	// WorkoutTime is empty when the schedule has no busyness-0 entry.
	WorkoutTime string
}

type scheduleEntry struct {
	timeOfDay string
	busyness  int
	minutes   int
}

// NewDailySchedule derives a DailySchedule from a "HH:MM" -> busyness
// map. It fails on malformed times, on busyness outside 0-4, and when
// fewer than three non-workout entries remain.
func NewDailySchedule(schedule map[string]int) (*DailySchedule, error) {
	entries := make([]scheduleEntry, 0, len(schedule))
	for timeOfDay, busyness := range schedule {
		minutes, err := parseTimeOfDay(timeOfDay)
		if err != nil {
			return nil, err
		}
		if busyness < 0 || busyness > 4 {
			return nil, fmt.Errorf("invalid busyness level %d at %s", busyness, timeOfDay)
		}
		entries = append(entries, scheduleEntry{timeOfDay: timeOfDay, busyness: busyness, minutes: minutes})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].minutes < entries[j].minutes
	})

	var workoutTime string
	meals := make([]scheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.busyness == 0 {
			if workoutTime == "" {
				workoutTime = e.timeOfDay
			}
			continue
		}
		meals = append(meals, e)
	}

	if len(meals) < 3 {
		return nil, fmt.Errorf("schedule needs at least 3 non-workout entries, got %d", len(meals))
	}

	return &DailySchedule{
		BreakfastTime:     meals[0].timeOfDay,
		BreakfastBusyness: meals[0].busyness,
		LunchTime:         meals[1].timeOfDay,
		LunchBusyness:     meals[1].busyness,
		DinnerTime:        meals[2].timeOfDay,
		DinnerBusyness:    meals[2].busyness,
		WorkoutTime:       workoutTime,
	}, nil
}

// HasWorkout reports whether the schedule contains a workout marker.
func (s *DailySchedule) HasWorkout() bool {
	return s.WorkoutTime != ""
}

// WorkoutHour returns the hour of the workout marker. The second
// return value is false when no workout is scheduled.
func (s *DailySchedule) WorkoutHour() (int, bool) {
	if s.WorkoutTime == "" {
		return 0, false
	}
	return HourOf(s.WorkoutTime), true
}

// HourOf extracts the hour component of a validated "HH:MM" string.
// Minutes are deliberately discarded: workout-window math operates at
// hour granularity only.
func HourOf(timeOfDay string) int {
	hour, _ := strconv.Atoi(strings.SplitN(timeOfDay, ":", 2)[0])
	return hour
}

func parseTimeOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("malformed time of day %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed time of day %q, want HH:MM", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed time of day %q, want HH:MM", s)
	}
	return hour*60 + minute, nil
}
