// Package admin contains admin console use cases.
package admin

import (
	"context"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListUsersInput represents the input for listing users.
type ListUsersInput struct {
	Page     int // 1-based, defaults to 1
	PageSize int // Defaults to DefaultPageSize
}

// ListUsersOutput represents a page of users with their balances.
type ListUsersOutput struct {
	Users    []entity.ProfileSummary
	Total    int64
	Page     int
	PageSize int
}

// ListUsersUseCase handles listing users for the admin console.
type ListUsersUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(profileRepo adapter.ProfileRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		profileRepo: profileRepo,
	}
}

// Execute performs the listing.
func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	page := input.Page
	if page == 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 || pageSize < 1 || pageSize > MaxPageSize {
		return nil, domainerror.NewAdminError(
			domainerror.ErrCodeInvalidPagination,
			fmt.Sprintf("page must be positive and page size between 1 and %d", MaxPageSize),
			domainerror.ErrInvalidPagination,
		)
	}

	profiles, total, err := uc.profileRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	users := make([]entity.ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, summarize(p))
	}

	return &ListUsersOutput{
		Users:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func summarize(p *entity.Profile) entity.ProfileSummary {
	balance := finance.ProfileBalance(p)
	return entity.ProfileSummary{
		Profile:      p,
		Balance:      balance.Balance,
		DebitBalance: balance.DebitBalance,
	}
}
