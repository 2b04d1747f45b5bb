package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/usecase/schedule"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// CreateScheduledPaymentRequest represents the request body for scheduling a payment.
type CreateScheduledPaymentRequest struct {
	Name          string          `json:"name" binding:"required,max=120"`
	Amount        decimal.Decimal `json:"amount"`
	DueDay        int             `json:"due_day"`
	IsRecurring   bool            `json:"is_recurring"`
	SpecificMonth *string         `json:"specific_month,omitempty"`
	Category      string          `json:"category,omitempty"`
}

// AdminCreateScheduledPaymentRequest schedules a payment for a given user.
type AdminCreateScheduledPaymentRequest struct {
	UserID string `json:"user_id" binding:"required"`
	CreateScheduledPaymentRequest
}

// UpdateScheduledPaymentRequest represents a partial scheduled payment update.
type UpdateScheduledPaymentRequest struct {
	Name          *string          `json:"name,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DueDay        *int             `json:"due_day,omitempty"`
	IsRecurring   *bool            `json:"is_recurring,omitempty"`
	SpecificMonth *string          `json:"specific_month,omitempty"`
	Category      *string          `json:"category,omitempty"`
}

// PayScheduledPaymentRequest represents the request body for settling a payment.
type PayScheduledPaymentRequest struct {
	RecordExpense bool   `json:"record_expense"`
	PaymentMethod string `json:"payment_method,omitempty" binding:"omitempty,oneof=debit credit"`
}

// ScheduledPaymentResponse represents a scheduled payment evaluated for the current month.
type ScheduledPaymentResponse struct {
	ID            uint       `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Amount        string     `json:"amount"`
	DueDay        int        `json:"due_day"`
	IsRecurring   bool       `json:"is_recurring"`
	SpecificMonth *string    `json:"specific_month,omitempty"`
	Category      string     `json:"category"`
	LastPaidAt    *time.Time `json:"last_paid_at,omitempty"`
	DueThisMonth  bool       `json:"due_this_month"`
	Paid          bool       `json:"paid"`
	DueDate       string     `json:"due_date"`
	DaysUntilDue  int        `json:"days_until_due"`
	Status        string     `json:"status"`
}

// ScheduledPaymentListResponse represents a list of scheduled payments.
type ScheduledPaymentListResponse struct {
	Payments []ScheduledPaymentResponse `json:"payments"`
}

// PayScheduledPaymentResponse represents a settled payment and the optional expense.
type PayScheduledPaymentResponse struct {
	Payment     ScheduledPaymentResponse `json:"payment"`
	Transaction *TransactionResponse     `json:"transaction,omitempty"`
}

// MonthlySummaryResponse represents the month-end projection.
type MonthlySummaryResponse struct {
	CurrentBalance   string                     `json:"current_balance"`
	PendingIncome    string                     `json:"pending_income"`
	TotalPayments    string                     `json:"total_payments"`
	ProjectedBalance string                     `json:"projected_balance"`
	Payments         []ScheduledPaymentResponse `json:"payments"`
}

// DaysUntilResponse represents the distance to the next occurrence of a day of month.
type DaysUntilResponse struct {
	Day       int    `json:"day"`
	NextDate  string `json:"next_date"`
	DaysUntil int    `json:"days_until"`
}

// ToScheduledPaymentResponse converts a payment projection to a ScheduledPaymentResponse DTO.
func ToScheduledPaymentResponse(p finance.PaymentProjection) ScheduledPaymentResponse {
	payment := p.Payment
	response := ScheduledPaymentResponse{
		ID:           payment.ID,
		UserID:       payment.UserID,
		Name:         payment.Name,
		Amount:       Money(payment.Amount),
		DueDay:       payment.DueDay,
		IsRecurring:  payment.IsRecurring,
		Category:     string(payment.Category),
		LastPaidAt:   payment.LastPaidAt,
		DueThisMonth: p.DueThisMonth,
		Paid:         p.Settled,
		DueDate:      formatDate(p.DueDate),
		DaysUntilDue: p.DaysUntilDue,
		Status:       string(p.Status),
	}
	if payment.SpecificMonth != nil {
		month := payment.SpecificMonth.Format(MonthLayout)
		response.SpecificMonth = &month
	}
	return response
}

// ToScheduledPaymentResponses converts a slice of projections.
func ToScheduledPaymentResponses(projections []finance.PaymentProjection) []ScheduledPaymentResponse {
	responses := make([]ScheduledPaymentResponse, 0, len(projections))
	for _, p := range projections {
		responses = append(responses, ToScheduledPaymentResponse(p))
	}
	return responses
}

// ToMonthlySummaryResponse converts a finance.MonthlySummary.
func ToMonthlySummaryResponse(s finance.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		CurrentBalance:   Money(s.CurrentBalance),
		PendingIncome:    Money(s.PendingIncome),
		TotalPayments:    Money(s.TotalPayments),
		ProjectedBalance: Money(s.ProjectedBalance),
		Payments:         ToScheduledPaymentResponses(s.Payments),
	}
}

// ToPayScheduledPaymentResponse converts the mark-paid use case output.
func ToPayScheduledPaymentResponse(output *schedule.MarkScheduledPaymentPaidOutput) PayScheduledPaymentResponse {
	response := PayScheduledPaymentResponse{
		Payment: ToScheduledPaymentResponse(output.Projection),
	}
	if output.Transaction != nil {
		tx := ToTransactionResponse(output.Transaction)
		response.Transaction = &tx
	}
	return response
}

// ToDaysUntilResponse converts the days-until use case output.
func ToDaysUntilResponse(output *schedule.DaysUntilOutput) DaysUntilResponse {
	return DaysUntilResponse{
		Day:       output.Day,
		NextDate:  formatDate(output.NextDate),
		DaysUntil: output.DaysUntil,
	}
}
