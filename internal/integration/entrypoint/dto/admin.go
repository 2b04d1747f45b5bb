package dto

import (
	"github.com/finance-tracker/assistant/internal/application/usecase/admin"
	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// UserSummaryResponse represents one user row in the admin console.
type UserSummaryResponse struct {
	Profile      *ProfileResponse `json:"profile"`
	Balance      string           `json:"balance"`
	DebitBalance string           `json:"debit_balance"`
}

// UserListResponse represents a page of users.
type UserListResponse struct {
	Users    []UserSummaryResponse `json:"users"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// UserDetailResponse represents one user with credit and scheduled payments.
type UserDetailResponse struct {
	User              UserSummaryResponse        `json:"user"`
	Credit            CreditStatusResponse       `json:"credit"`
	ScheduledPayments []ScheduledPaymentResponse `json:"scheduled_payments"`
}

// CategoryTotalResponse is the summed expense of one category.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// ReportResponse represents the admin summary report.
type ReportResponse struct {
	UserCount           int64                   `json:"user_count"`
	TransactionCount    int64                   `json:"transaction_count"`
	TotalIncome         string                  `json:"total_income"`
	TotalExpense        string                  `json:"total_expense"`
	TotalCreditUsed     string                  `json:"total_credit_used"`
	TotalCreditLimit    string                  `json:"total_credit_limit"`
	ObligationsDue      string                  `json:"obligations_due"`
	ObligationsDueCount int                     `json:"obligations_due_count"`
	ExpenseByCategory   []CategoryTotalResponse `json:"expense_by_category"`
}

// ToUserSummaryResponse converts an entity.ProfileSummary.
func ToUserSummaryResponse(s entity.ProfileSummary) UserSummaryResponse {
	return UserSummaryResponse{
		Profile:      ToProfileResponse(s.Profile),
		Balance:      Money(s.Balance),
		DebitBalance: Money(s.DebitBalance),
	}
}

// ToUserListResponse converts the list users use case output.
func ToUserListResponse(output *admin.ListUsersOutput) UserListResponse {
	users := make([]UserSummaryResponse, 0, len(output.Users))
	for _, u := range output.Users {
		users = append(users, ToUserSummaryResponse(u))
	}
	return UserListResponse{
		Users:    users,
		Total:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
	}
}

// ToUserDetailResponse converts the get user use case output.
func ToUserDetailResponse(output *admin.GetUserOutput) UserDetailResponse {
	return UserDetailResponse{
		User:              ToUserSummaryResponse(output.User),
		Credit:            ToCreditStatusResponse(output.Credit),
		ScheduledPayments: ToScheduledPaymentResponses(output.ScheduledPayments),
	}
}

// ToReportResponse converts the report use case output.
func ToReportResponse(output *admin.GetReportOutput) ReportResponse {
	categories := make([]CategoryTotalResponse, 0, len(output.ExpenseByCategory))
	for _, c := range output.ExpenseByCategory {
		categories = append(categories, CategoryTotalResponse{
			Category: string(c.Category),
			Total:    Money(c.Total),
		})
	}

	return ReportResponse{
		UserCount:           output.UserCount,
		TransactionCount:    output.TransactionCount,
		TotalIncome:         Money(output.TotalIncome),
		TotalExpense:        Money(output.TotalExpense),
		TotalCreditUsed:     Money(output.TotalCreditUsed),
		TotalCreditLimit:    Money(output.TotalCreditLimit),
		ObligationsDue:      Money(output.ObligationsDue),
		ObligationsDueCount: output.ObligationsDueCount,
		ExpenseByCategory:   categories,
	}
}
