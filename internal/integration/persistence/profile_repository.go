// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
	"github.com/finance-tracker/assistant/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Create creates a new profile in the database.
func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileModel := model.ProfileFromEntity(profile)
	if err := r.db.WithContext(ctx).Create(profileModel).Error; err != nil {
		return err
	}
	profile.ID = profileModel.ID
	return nil
}

// FindByUserID retrieves a profile by its user ID.
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

// ExistsByUserID checks whether a user ID is already taken.
func (r *profileRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update persists the editable profile fields.
func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]any{
			"full_name":      profile.FullName,
			"email":          profile.Email,
			"phone":          profile.Phone,
			"credit_limit":   profile.CreditLimit,
			"credit_due_day": profile.CreditDueDay,
			"salary_amount":  profile.SalaryAmount,
			"salary_day":     profile.SalaryDay,
			"advance_amount": profile.AdvanceAmount,
			"advance_day":    profile.AdvanceDay,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProfileNotFound
	}
	return nil
}

// List retrieves profiles ordered by creation, paginated.
func (r *profileRepository) List(ctx context.Context, offset, limit int) ([]*entity.Profile, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ProfileModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var profileModels []model.ProfileModel
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]*entity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToEntity()
	}
	return profiles, total, nil
}

// ApplyCycleReset stores the credit-cycle marker, zeroing credit used on reset.
// The marker comparison in the WHERE clause makes concurrent resets apply once.
func (r *profileRepository) ApplyCycleReset(ctx context.Context, userID string, marker time.Time, reset bool) (bool, error) {
	marker = marker.UTC()
	updates := map[string]any{
		"last_credit_reset_at": marker,
		"updated_at":           time.Now().UTC(),
	}

	query := r.db.WithContext(ctx).Model(&model.ProfileModel{}).Where("user_id = ?", userID)
	if reset {
		updates["credit_used"] = decimal.Zero
		query = query.Where("last_credit_reset_at < ?", marker)
	} else {
		query = query.Where("last_credit_reset_at IS NULL")
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RepairTotals overwrites the running totals and credit used with recomputed values.
func (r *profileRepository) RepairTotals(ctx context.Context, userID string, totals finance.Totals, creditUsed decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"total_income":  totals.TotalIncome,
			"total_expense": totals.TotalExpense,
			"debit_expense": totals.DebitExpense,
			"credit_used":   creditUsed,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProfileNotFound
	}
	return nil
}

// DeleteCascade removes the profile and everything it owns in one database transaction.
func (r *profileRepository) DeleteCascade(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&model.TransactionModel{},
			&model.GoalModel{},
			&model.ScheduledPaymentModel{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}

		result := tx.Where("user_id = ?", userID).Delete(&model.ProfileModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrProfileNotFound
		}
		return nil
	})
}

// aggregateRow is the scanned result of the profile aggregate query.
type aggregateRow struct {
	UserCount        int64
	TotalCreditUsed  decimal.Decimal
	TotalCreditLimit decimal.Decimal
}

// Aggregate summarizes all profiles.
func (r *profileRepository) Aggregate(ctx context.Context) (*adapter.ProfileAggregate, error) {
	var row aggregateRow
	result := r.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Select("COUNT(*) AS user_count, COALESCE(SUM(credit_used), 0) AS total_credit_used, COALESCE(SUM(credit_limit), 0) AS total_credit_limit").
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.ProfileAggregate{
		UserCount:        row.UserCount,
		TotalCreditUsed:  row.TotalCreditUsed.Round(2),
		TotalCreditLimit: row.TotalCreditLimit.Round(2),
	}, nil
}
