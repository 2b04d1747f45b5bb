package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title         string          `json:"title" binding:"required,max=120"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline" binding:"required"`
}

// ContributeToGoalRequest represents the request body for a goal contribution.
type ContributeToGoalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	TargetAmount  string    `json:"target_amount"`
	CurrentAmount string    `json:"current_amount"`
	Progress      string    `json:"progress"`
	Completed     bool      `json:"completed"`
	Deadline      string    `json:"deadline"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		UserID:        g.UserID,
		Title:         g.Title,
		TargetAmount:  Money(g.TargetAmount),
		CurrentAmount: Money(g.CurrentAmount),
		Progress:      g.Progress().StringFixed(4),
		Completed:     g.IsCompleted(),
		Deadline:      formatDate(g.Deadline),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalListResponse converts a slice of goals.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	responses := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, ToGoalResponse(g))
	}
	return GoalListResponse{Goals: responses}
}
