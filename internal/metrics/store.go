package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PlanningMetric records metadata for a single planning run.
type PlanningMetric struct {
	UserID       string
	Success      bool
	DurationMS   int64
	WarningCount int
	Timestamp    time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m PlanningMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO planning_metrics (user_id, success, duration_ms, warning_count, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		m.UserID, m.Success, m.DurationMS, m.WarningCount, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert planning metric: %w", err)
	}
	return nil
}

// DailySummary represents planning outcomes for a single day.
type DailySummary struct {
	Date          string
	Runs          int
	Successes     int
	AvgDurationMS float64
}

// GetDailySummary retrieves planning outcomes for the last N days.
func (s *Store) GetDailySummary(ctx context.Context, days int) ([]DailySummary, error) {
	since := time.Now().AddDate(0, 0, -days).UTC()
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(timestamp) AS day, COUNT(*), SUM(success), AVG(duration_ms)
		FROM planning_metrics
		WHERE timestamp >= ?
		GROUP BY day ORDER BY day DESC`, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query planning metrics: %w", err)
	}
	defer rows.Close()

	var results []DailySummary
	for rows.Next() {
		var d DailySummary
		var successes sql.NullInt64
		var avg sql.NullFloat64
		if err := rows.Scan(&d.Date, &d.Runs, &successes, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan planning metric row: %w", err)
		}
		d.Successes = int(successes.Int64)
		d.AvgDurationMS = avg.Float64
		results = append(results, d)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays).UTC()
	res, err := s.db.ExecContext(ctx, `DELETE FROM planning_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up planning metrics: %w", err)
	}
	return res.RowsAffected()
}
