// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a savings target.
type Goal struct {
	ID            uint
	UserID        string
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new Goal entity.
func NewGoal(userID, title string, targetAmount, currentAmount decimal.Decimal, deadline time.Time) *Goal {
	now := time.Now().UTC()

	return &Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Progress returns the completed fraction of the goal, clamped to [0, 1].
func (g *Goal) Progress() decimal.Decimal {
	return GoalProgress(g.CurrentAmount, g.TargetAmount)
}

// IsCompleted reports whether the goal has reached its target.
func (g *Goal) IsCompleted() bool {
	return g.Progress().GreaterThanOrEqual(decimal.NewFromInt(1))
}

// Contribute adds amount to the goal's current amount.
func (g *Goal) Contribute(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = time.Now().UTC()
}

// GoalProgress computes min(current/target, 1). A non-positive target yields zero.
func GoalProgress(current, target decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if !target.IsPositive() || current.IsNegative() {
		return decimal.Zero
	}
	if current.GreaterThanOrEqual(target) {
		return one
	}
	return current.Div(target)
}
