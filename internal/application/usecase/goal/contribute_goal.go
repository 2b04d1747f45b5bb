// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// ContributeToGoalInput represents a contribution to a goal.
type ContributeToGoalInput struct {
	UserID string
	GoalID uint
	Amount decimal.Decimal
}

// ContributeToGoalOutput represents the goal after the contribution.
type ContributeToGoalOutput struct {
	Goal *entity.Goal
}

// ContributeToGoalUseCase handles adding savings to a goal.
type ContributeToGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewContributeToGoalUseCase creates a new ContributeToGoalUseCase instance.
func NewContributeToGoalUseCase(goalRepo adapter.GoalRepository) *ContributeToGoalUseCase {
	return &ContributeToGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the contribution.
func (uc *ContributeToGoalUseCase) Execute(ctx context.Context, input ContributeToGoalInput) (*ContributeToGoalOutput, error) {
	amount := input.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution must be greater than zero",
			domainerror.ErrInvalidContribution,
		)
	}

	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	if err := uc.goalRepo.AddContribution(ctx, goal.ID, amount); err != nil {
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	goal.Contribute(amount)

	return &ContributeToGoalOutput{
		Goal: goal,
	}, nil
}
