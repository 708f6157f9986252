package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save creates a new shopping list in the database and returns its ID.
func (r *Repository) Save(ctx context.Context, list *ShoppingList) (int64, error) {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO shopping_lists (user_id, meal_plan_id, items, created_at)
		VALUES (?, ?, ?, ?)`,
		list.UserID, list.MealPlanID, string(itemsJSON), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get shopping list ID: %w", err)
	}
	return id, nil
}

// GetByMealPlanID retrieves a shopping list by meal plan ID. Returns
// nil when no list exists for the plan.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID int64) (*ShoppingList, error) {
	list := &ShoppingList{MealPlanID: mealPlanID}
	var itemsJSON string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, items, created_at FROM shopping_lists
		WHERE meal_plan_id = ? ORDER BY id DESC LIMIT 1`, mealPlanID,
	).Scan(&list.ID, &list.UserID, &itemsJSON, &list.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No shopping list found
		}
		return nil, fmt.Errorf("failed to get shopping list by meal plan ID: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return list, nil
}

// DeleteByMealPlanID deletes the shopping lists for a meal plan.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
