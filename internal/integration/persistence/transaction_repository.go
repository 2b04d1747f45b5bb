// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Record inserts the transaction and updates the owner's running totals atomically.
func (r *transactionRepository) Record(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	amount := transaction.Amount

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"updated_at": time.Now().UTC()}
		query := tx.Model(&model.ProfileModel{}).Where("user_id = ?", transaction.UserID)

		switch {
		case transaction.Type == entity.TransactionTypeIncome:
			updates["total_income"] = gorm.Expr("total_income + ?", amount)
		case transaction.IsCreditExpense():
			updates["total_expense"] = gorm.Expr("total_expense + ?", amount)
			updates["credit_used"] = gorm.Expr("credit_used + ?", amount)
			// Compared in cents; sqlite stores numeric columns as floats.
			query = query.Where("ROUND((credit_used + ?) * 100) <= ROUND(credit_limit * 100)", amount)
		default:
			updates["total_expense"] = gorm.Expr("total_expense + ?", amount)
			updates["debit_expense"] = gorm.Expr("debit_expense + ?", amount)
		}

		result := query.Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.explainRejectedUpdate(tx, transaction)
		}

		return tx.Create(transactionModel).Error
	})
	if err != nil {
		return err
	}

	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt
	return nil
}

// explainRejectedUpdate tells a missing profile apart from a credit charge over the limit.
func (r *transactionRepository) explainRejectedUpdate(tx *gorm.DB, transaction *entity.Transaction) error {
	var count int64
	if err := tx.Model(&model.ProfileModel{}).Where("user_id = ?", transaction.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerror.ErrProfileNotFound
	}
	return domainerror.ErrInsufficientCredit
}

// FindByUser retrieves the full transaction history of a user, oldest first.
func (r *transactionRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return toTransactionEntities(transactionModels), nil
}

// FindByFilter retrieves transactions matching the filter, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", filter.EndDate.UTC())
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = query.Order("date DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactionModels []model.TransactionModel
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	return &entity.TransactionListResult{
		Transactions: toTransactionEntities(transactionModels),
		Total:        total,
	}, nil
}

// sumRow is a grouped sum scanned from an aggregate query.
type sumRow struct {
	Label string
	Total decimal.Decimal
}

// Summarize aggregates every transaction for the admin report.
func (r *transactionRepository) Summarize(ctx context.Context) (*adapter.LedgerSummary, error) {
	summary := &adapter.LedgerSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	if err := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Count(&summary.TransactionCount).Error; err != nil {
		return nil, err
	}

	var byType []sumRow
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("type AS label, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		switch entity.TransactionType(row.Label) {
		case entity.TransactionTypeIncome:
			summary.TotalIncome = row.Total.Round(2)
		case entity.TransactionTypeExpense:
			summary.TotalExpense = row.Total.Round(2)
		}
	}

	var byCategory []sumRow
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category AS label, COALESCE(SUM(amount), 0) AS total").
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Group("category").
		Order("total DESC").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	summary.ExpenseByCategory = make([]adapter.CategoryTotal, 0, len(byCategory))
	for _, row := range byCategory {
		summary.ExpenseByCategory = append(summary.ExpenseByCategory, adapter.CategoryTotal{
			Category: entity.Category(row.Label),
			Total:    row.Total.Round(2),
		})
	}

	return summary, nil
}

func toTransactionEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
