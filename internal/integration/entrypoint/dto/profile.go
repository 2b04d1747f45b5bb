package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/usecase/balance"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// RegisterRequest represents the request body for profile registration.
type RegisterRequest struct {
	FullName       string           `json:"full_name" binding:"required,max=120"`
	Email          *string          `json:"email,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CreditLimit    decimal.Decimal  `json:"credit_limit"`
	CreditDueDay   int              `json:"credit_due_day"`
	SalaryAmount   *decimal.Decimal `json:"salary_amount,omitempty"`
	SalaryDay      *int             `json:"salary_day,omitempty"`
	AdvanceAmount  *decimal.Decimal `json:"advance_amount,omitempty"`
	AdvanceDay     *int             `json:"advance_day,omitempty"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	UserID string `json:"user_id" binding:"required,numeric,len=8"`
}

// AdminLoginRequest represents the request body for admin login.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Profile     *ProfileResponse `json:"profile,omitempty"`
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	FullName      *string          `json:"full_name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	CreditLimit   *decimal.Decimal `json:"credit_limit,omitempty"`
	CreditDueDay  *int             `json:"credit_due_day,omitempty"`
	SalaryAmount  *decimal.Decimal `json:"salary_amount,omitempty"`
	SalaryDay     *int             `json:"salary_day,omitempty"`
	AdvanceAmount *decimal.Decimal `json:"advance_amount,omitempty"`
	AdvanceDay    *int             `json:"advance_day,omitempty"`
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	UserID            string  `json:"user_id"`
	FullName          string  `json:"full_name"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	InitialBalance    string  `json:"initial_balance"`
	CreditLimit       string  `json:"credit_limit"`
	CreditUsed        string  `json:"credit_used"`
	CreditDueDay      int     `json:"credit_due_day"`
	SalaryAmount      *string `json:"salary_amount,omitempty"`
	SalaryDay         *int    `json:"salary_day,omitempty"`
	AdvanceAmount     *string `json:"advance_amount,omitempty"`
	AdvanceDay        *int    `json:"advance_day,omitempty"`
	LastCreditResetAt *string `json:"last_credit_reset_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProfileResponse converts a domain Profile entity to a ProfileResponse DTO.
func ToProfileResponse(p *entity.Profile) *ProfileResponse {
	response := &ProfileResponse{
		UserID:         p.UserID,
		FullName:       p.FullName,
		Email:          p.Email,
		Phone:          p.Phone,
		InitialBalance: Money(p.InitialBalance),
		CreditLimit:    Money(p.CreditLimit),
		CreditUsed:     Money(p.CreditUsed),
		CreditDueDay:   p.CreditDueDay,
		SalaryAmount:   optionalMoney(p.SalaryAmount),
		SalaryDay:      p.SalaryDay,
		AdvanceAmount:  optionalMoney(p.AdvanceAmount),
		AdvanceDay:     p.AdvanceDay,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.LastCreditResetAt != nil {
		marker := formatDate(*p.LastCreditResetAt)
		response.LastCreditResetAt = &marker
	}
	return response
}

// BalanceResponse represents the derived balance of a profile.
type BalanceResponse struct {
	Balance         string `json:"balance"`
	DebitBalance    string `json:"debit_balance"`
	TotalIncome     string `json:"total_income"`
	TotalExpense    string `json:"total_expense"`
	DebitExpense    string `json:"debit_expense"`
	CreditUsed      string `json:"credit_used"`
	CreditLimit     string `json:"credit_limit,omitempty"`
	AvailableCredit string `json:"available_credit,omitempty"`
}

// ToBalanceResponse converts a finance.Balance to a BalanceResponse DTO.
func ToBalanceResponse(b finance.Balance) BalanceResponse {
	return BalanceResponse{
		Balance:      Money(b.Balance),
		DebitBalance: Money(b.DebitBalance),
		TotalIncome:  Money(b.TotalIncome),
		TotalExpense: Money(b.TotalExpense),
		DebitExpense: Money(b.DebitExpense),
		CreditUsed:   Money(b.CreditUsed),
	}
}

// ToGetBalanceResponse converts the balance use case output.
func ToGetBalanceResponse(output *balance.GetBalanceOutput) BalanceResponse {
	response := ToBalanceResponse(output.Balance)
	response.CreditLimit = Money(output.CreditLimit)
	response.AvailableCredit = Money(output.AvailableCredit)
	return response
}

// ProfileWithBalanceResponse represents a profile together with its balance.
type ProfileWithBalanceResponse struct {
	Profile *ProfileResponse `json:"profile"`
	Balance BalanceResponse  `json:"balance"`
}

// ReconcileResponse represents the result of a balance reconciliation.
type ReconcileResponse struct {
	Stored     BalanceResponse `json:"stored"`
	Recomputed BalanceResponse `json:"recomputed"`
	Drift      bool            `json:"drift"`
}

// CreditStatusResponse represents the state of the credit line.
type CreditStatusResponse struct {
	Limit        string `json:"limit"`
	Used         string `json:"used"`
	Available    string `json:"available"`
	Utilization  string `json:"utilization"`
	NextDueDate  string `json:"next_due_date"`
	DaysUntilDue int    `json:"days_until_due"`
	BillingCycle string `json:"billing_cycle"`
}

// ToCreditStatusResponse converts a finance.CreditStatus to a CreditStatusResponse DTO.
func ToCreditStatusResponse(s finance.CreditStatus) CreditStatusResponse {
	return CreditStatusResponse{
		Limit:        Money(s.Limit),
		Used:         Money(s.Used),
		Available:    Money(s.Available),
		Utilization:  s.Utilization.StringFixed(4),
		NextDueDate:  formatDate(s.NextDueDate),
		DaysUntilDue: s.DaysUntilDue,
		BillingCycle: s.BillingCycle,
	}
}
