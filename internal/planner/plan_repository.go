package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StoredPlan is a persisted planning result.
type StoredPlan struct {
	ID        int64
	UserID    string
	PlanDate  string // YYYY-MM-DD
	Result    PlanningResult
	CreatedAt time.Time
}

// PlanRepository is a database-backed repository for planning results.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save stores a planning result for a user and date. Replanning the
// same day inserts a new row; GetLatest returns the most recent run.
func (r *PlanRepository) Save(ctx context.Context, userID string, date time.Time, result PlanningResult) (int64, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal planning result: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (user_id, plan_date, result_data, created_at) VALUES (?, ?, ?, ?)`,
		userID, date.Format("2006-01-02"), string(data), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert meal plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted plan id: %w", err)
	}
	return id, nil
}

// GetLatest retrieves the most recent planning result for a user and
// date. A missing plan returns (nil, nil).
func (r *PlanRepository) GetLatest(ctx context.Context, userID string, date time.Time) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, plan_date, result_data, created_at FROM meal_plans
		WHERE user_id = ? AND plan_date = ?
		ORDER BY id DESC LIMIT 1`,
		userID, date.Format("2006-01-02"),
	)

	var stored StoredPlan
	var data string
	if err := row.Scan(&stored.ID, &stored.UserID, &stored.PlanDate, &data, &stored.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest meal plan: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &stored.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored plan: %w", err)
	}
	return &stored, nil
}

// ListRecent retrieves the N most recent planning results for a user.
func (r *PlanRepository) ListRecent(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, plan_date, result_data, created_at FROM meal_plans
		WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meal plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var stored StoredPlan
		var data string
		if err := rows.Scan(&stored.ID, &stored.UserID, &stored.PlanDate, &data, &stored.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &stored.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored plan %d: %w", stored.ID, err)
		}
		plans = append(plans, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plan rows: %w", err)
	}
	return plans, nil
}
