// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// ProfileAggregate summarizes every profile for reporting.
type ProfileAggregate struct {
	UserCount        int64
	TotalCreditUsed  decimal.Decimal
	TotalCreditLimit decimal.Decimal
}

// ProfileRepository defines the interface for profile persistence operations.
type ProfileRepository interface {
	// Create creates a new profile in the database.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByUserID retrieves a profile by its user ID.
	FindByUserID(ctx context.Context, userID string) (*entity.Profile, error)

	// ExistsByUserID checks whether a user ID is already taken.
	ExistsByUserID(ctx context.Context, userID string) (bool, error)

	// Update persists the editable profile fields. Counters are not touched.
	Update(ctx context.Context, profile *entity.Profile) error

	// List retrieves profiles ordered by creation, paginated.
	List(ctx context.Context, offset, limit int) ([]*entity.Profile, int64, error)

	// ApplyCycleReset stores the credit-cycle marker. With reset set it also zeroes
	// credit used, but only while the stored marker is older than marker, so the
	// reset is applied at most once per cycle. Reports whether a row changed.
	ApplyCycleReset(ctx context.Context, userID string, marker time.Time, reset bool) (bool, error)

	// RepairTotals overwrites the running totals and credit used with recomputed values.
	RepairTotals(ctx context.Context, userID string, totals finance.Totals, creditUsed decimal.Decimal) error

	// DeleteCascade removes the profile with its transactions, goals and scheduled
	// payments in one database transaction.
	DeleteCascade(ctx context.Context, userID string) error

	// Aggregate summarizes all profiles.
	Aggregate(ctx context.Context) (*ProfileAggregate, error)
}
