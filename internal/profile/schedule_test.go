package profile

import (
	"strings"
	"testing"
)

func TestNewDailySchedule(t *testing.T) {
	t.Run("AssignsChronologically", func(t *testing.T) {
		sched, err := NewDailySchedule(map[string]int{
			"18:00": 3,
			"07:00": 2,
			"12:00": 3,
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sched.BreakfastTime != "07:00" || sched.BreakfastBusyness != 2 {
			t.Errorf("Expected breakfast at 07:00 busyness 2, got %s/%d", sched.BreakfastTime, sched.BreakfastBusyness)
		}
		if sched.LunchTime != "12:00" {
			t.Errorf("Expected lunch at 12:00, got %s", sched.LunchTime)
		}
		if sched.DinnerTime != "18:00" {
			t.Errorf("Expected dinner at 18:00, got %s", sched.DinnerTime)
		}
		if sched.HasWorkout() {
			t.Error("Expected no workout marker")
		}
	})

	t.Run("WorkoutMarkerExcluded", func(t *testing.T) {
		sched, err := NewDailySchedule(map[string]int{
			"07:00": 2,
			"12:00": 3,
			"16:00": 0,
			"19:00": 4,
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if sched.WorkoutTime != "16:00" {
			t.Errorf("Expected workout at 16:00, got %q", sched.WorkoutTime)
		}
		if sched.DinnerTime != "19:00" {
			t.Errorf("Expected dinner at 19:00, got %s", sched.DinnerTime)
		}
		hour, ok := sched.WorkoutHour()
		if !ok || hour != 16 {
			t.Errorf("Expected workout hour 16, got %d (ok=%v)", hour, ok)
		}
	})

	t.Run("TooFewSlots", func(t *testing.T) {
		_, err := NewDailySchedule(map[string]int{
			"07:00": 2,
			"12:00": 3,
			"16:00": 0,
		})
		if err == nil {
			t.Fatal("Expected an error for fewer than 3 non-workout entries, got nil")
		}
		if !strings.Contains(err.Error(), "at least 3") {
			t.Errorf("Unexpected error message: %v", err)
		}
	})

	t.Run("MalformedTime", func(t *testing.T) {
		for _, bad := range []string{"7:00", "25:00", "12:60", "noon", "12-00"} {
			_, err := NewDailySchedule(map[string]int{
				bad:     2,
				"12:00": 3,
				"18:00": 3,
			})
			if err == nil {
				t.Errorf("Expected an error for time %q, got nil", bad)
			}
		}
	})

	t.Run("InvalidBusyness", func(t *testing.T) {
		_, err := NewDailySchedule(map[string]int{
			"07:00": 5,
			"12:00": 3,
			"18:00": 3,
		})
		if err == nil {
			t.Fatal("Expected an error for busyness 5, got nil")
		}
	})
}

func TestHourOf(t *testing.T) {
	// Minute precision is discarded on purpose: 07:45 and 07:00 are
	// indistinguishable for workout-window math.
	if HourOf("07:45") != 7 {
		t.Errorf("Expected hour 7 for 07:45, got %d", HourOf("07:45"))
	}
	if HourOf("23:00") != 23 {
		t.Errorf("Expected hour 23, got %d", HourOf("23:00"))
	}
}
