// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Goal, error)

	// FindByUserID retrieves all goals for a given user.
	FindByUserID(ctx context.Context, userID string) ([]*entity.Goal, error)

	// AddContribution atomically adds amount to the goal's current amount.
	AddContribution(ctx context.Context, id uint, amount decimal.Decimal) error

	// Delete removes a goal from the database.
	Delete(ctx context.Context, id uint) error
}
