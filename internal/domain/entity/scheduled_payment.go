// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledPayment represents a recurring or one-time obligation tracked apart
// from realized transactions until it is paid.
type ScheduledPayment struct {
	ID            uint
	UserID        string
	Name          string
	Amount        decimal.Decimal
	DueDay        int
	IsRecurring   bool
	SpecificMonth *time.Time // Required when IsRecurring is false
	Category      Category
	LastPaidAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewScheduledPayment creates a new ScheduledPayment entity.
func NewScheduledPayment(
	userID string,
	name string,
	amount decimal.Decimal,
	dueDay int,
	isRecurring bool,
	specificMonth *time.Time,
	category Category,
) *ScheduledPayment {
	now := time.Now().UTC()

	if isRecurring {
		specificMonth = nil
	}

	return &ScheduledPayment{
		UserID:        userID,
		Name:          name,
		Amount:        amount,
		DueDay:        dueDay,
		IsRecurring:   isRecurring,
		SpecificMonth: specificMonth,
		Category:      category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkPaid records the payment time.
func (p *ScheduledPayment) MarkPaid(at time.Time) {
	paidAt := at.UTC()
	p.LastPaidAt = &paidAt
	p.UpdatedAt = time.Now().UTC()
}
