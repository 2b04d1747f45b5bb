// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Rows are append-only.
type TransactionModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	UserID        string          `gorm:"type:varchar(16);not null;index:idx_transactions_user_date,priority:1"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Type          string          `gorm:"type:varchar(10);not null"`
	PaymentMethod string          `gorm:"type:varchar(10)"` // Nullable for legacy rows
	Category      string          `gorm:"type:varchar(20);not null;default:'other'"`
	Description   string          `gorm:"type:varchar(255)"`
	Date          time.Time       `gorm:"not null;index:idx_transactions_user_date,priority:2"`
	BillingCycle  string          `gorm:"type:varchar(10);index"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Amount:        money(m.Amount),
		Type:          entity.TransactionType(m.Type),
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Category:      entity.Category(m.Category),
		Description:   m.Description,
		Date:          m.Date.UTC(),
		BillingCycle:  m.BillingCycle,
		CreatedAt:     m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:            t.ID,
		UserID:        t.UserID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		PaymentMethod: string(t.PaymentMethod),
		Category:      string(t.Category),
		Description:   t.Description,
		Date:          t.Date.UTC(),
		BillingCycle:  t.BillingCycle,
		CreatedAt:     t.CreatedAt,
	}
}
