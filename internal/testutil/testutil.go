// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	"github.com/finance-tracker/assistant/internal/integration/persistence/model"
)

// NewDB opens a private in-memory SQLite database with every model migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// FixedClock is an adapter.Clock frozen at T.
type FixedClock struct {
	T time.Time
}

// Now returns the frozen time.
func (c *FixedClock) Now() time.Time {
	return c.T
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Money parses a decimal literal, failing the test on bad input.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ProfileCreator is the subset of the profile repository needed to seed fixtures.
type ProfileCreator interface {
	Create(ctx context.Context, profile *entity.Profile) error
}

// SeedProfile stores a profile with the given debit seed and credit line. The
// cycle marker is set to marker when non-nil.
func SeedProfile(
	t *testing.T,
	repo ProfileCreator,
	userID string,
	initialBalance, creditLimit decimal.Decimal,
	dueDay int,
	marker *time.Time,
) *entity.Profile {
	t.Helper()
	profile := entity.NewProfile(userID, "Usuário "+userID, initialBalance, creditLimit, dueDay)
	profile.LastCreditResetAt = marker
	require.NoError(t, repo.Create(context.Background(), profile))
	return profile
}
