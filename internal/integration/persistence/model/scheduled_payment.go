// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// ScheduledPaymentModel represents the scheduled_payments table in the database.
type ScheduledPaymentModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	UserID        string          `gorm:"type:varchar(16);not null;index"`
	Name          string          `gorm:"type:varchar(150);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	DueDay        int             `gorm:"not null"`
	IsRecurring   bool            `gorm:"not null"`
	SpecificMonth *time.Time
	Category      string `gorm:"type:varchar(20);not null;default:'bills'"`
	LastPaidAt    *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ScheduledPaymentModel.
func (ScheduledPaymentModel) TableName() string {
	return "scheduled_payments"
}

// ToEntity converts a ScheduledPaymentModel to a domain ScheduledPayment entity.
func (m *ScheduledPaymentModel) ToEntity() *entity.ScheduledPayment {
	return &entity.ScheduledPayment{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Amount:        money(m.Amount),
		DueDay:        m.DueDay,
		IsRecurring:   m.IsRecurring,
		SpecificMonth: utcPtr(m.SpecificMonth),
		Category:      entity.Category(m.Category),
		LastPaidAt:    utcPtr(m.LastPaidAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ScheduledPaymentFromEntity creates a ScheduledPaymentModel from a domain entity.
func ScheduledPaymentFromEntity(p *entity.ScheduledPayment) *ScheduledPaymentModel {
	return &ScheduledPaymentModel{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Amount:        p.Amount,
		DueDay:        p.DueDay,
		IsRecurring:   p.IsRecurring,
		SpecificMonth: p.SpecificMonth,
		Category:      string(p.Category),
		LastPaidAt:    p.LastPaidAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
