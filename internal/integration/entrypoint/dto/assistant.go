package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/usecase/assistant"
	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// SendMessageRequest represents a chat message sent to the assistant.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// ConfirmPendingRequest confirms the pending transaction, optionally edited.
type ConfirmPendingRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty" binding:"omitempty,oneof=debit credit"`
	Category      *string          `json:"category,omitempty"`
}

// ClassifyRequest represents a text to run through the keyword pre-filter.
type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ClassifyResponse represents the pre-filter outcome.
type ClassifyResponse struct {
	Class string `json:"class"`
}

// PendingTransactionResponse represents a transaction awaiting confirmation.
type PendingTransactionResponse struct {
	ID            string    `json:"id"`
	Amount        string    `json:"amount"`
	Type          string    `json:"type"`
	PaymentMethod string    `json:"payment_method"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionResponse represents an assistant session.
type SessionResponse struct {
	ID        string                      `json:"id"`
	UserID    string                      `json:"user_id"`
	Pending   *PendingTransactionResponse `json:"pending,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// AssistantErrorResponse is a recoverable failure shown in the chat.
type AssistantErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AssistantReplyResponse represents the assistant's answer to one message.
type AssistantReplyResponse struct {
	SessionID string                  `json:"session_id"`
	Class     string                  `json:"class"`
	Function  string                  `json:"function,omitempty"`
	Reply     string                  `json:"reply"`
	Error     *AssistantErrorResponse `json:"error,omitempty"`

	Pending           *PendingTransactionResponse `json:"pending,omitempty"`
	ScheduledPayment  *ScheduledPaymentResponse   `json:"scheduled_payment,omitempty"`
	Balance           *BalanceResponse            `json:"balance,omitempty"`
	Credit            *CreditStatusResponse       `json:"credit,omitempty"`
	Summary           *MonthlySummaryResponse     `json:"summary,omitempty"`
	Transactions      []TransactionResponse       `json:"transactions,omitempty"`
	ScheduledPayments []ScheduledPaymentResponse  `json:"scheduled_payments,omitempty"`
}

// ConfirmPendingResponse represents the transaction recorded on confirmation.
type ConfirmPendingResponse struct {
	Reply  string                    `json:"reply"`
	Result RecordTransactionResponse `json:"result"`
}

// ToPendingTransactionResponse converts a pending transaction.
func ToPendingTransactionResponse(p *entity.PendingTransaction) *PendingTransactionResponse {
	if p == nil {
		return nil
	}
	return &PendingTransactionResponse{
		ID:            p.ID.String(),
		Amount:        Money(p.Amount),
		Type:          string(p.Type),
		PaymentMethod: string(p.PaymentMethod),
		Category:      string(p.Category),
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
	}
}

// ToSessionResponse converts an assistant session.
func ToSessionResponse(s *entity.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID.String(),
		UserID:    s.UserID,
		Pending:   ToPendingTransactionResponse(s.Pending),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToAssistantReplyResponse converts the send message use case output.
func ToAssistantReplyResponse(output *assistant.SendMessageOutput) AssistantReplyResponse {
	response := AssistantReplyResponse{
		SessionID: output.SessionID.String(),
		Class:     string(output.Class),
		Function:  string(output.Function),
		Reply:     output.Reply,
		Pending:   ToPendingTransactionResponse(output.Pending),
	}

	if output.Error != nil {
		response.Error = &AssistantErrorResponse{
			Kind:    string(output.Error.Kind),
			Message: output.Error.Message,
		}
	}
	if output.ScheduledPayment != nil {
		payment := ToScheduledPaymentResponse(*output.ScheduledPayment)
		response.ScheduledPayment = &payment
	}
	if output.Balance != nil {
		balance := ToBalanceResponse(*output.Balance)
		response.Balance = &balance
	}
	if output.Credit != nil {
		credit := ToCreditStatusResponse(*output.Credit)
		response.Credit = &credit
	}
	if output.Summary != nil {
		summary := ToMonthlySummaryResponse(*output.Summary)
		response.Summary = &summary
	}
	if output.Transactions != nil {
		response.Transactions = ToTransactionResponses(output.Transactions)
	}
	if output.ScheduledPayments != nil {
		response.ScheduledPayments = ToScheduledPaymentResponses(output.ScheduledPayments)
	}

	return response
}

// ToConfirmPendingResponse converts the confirm use case output.
func ToConfirmPendingResponse(output *assistant.ConfirmPendingOutput) ConfirmPendingResponse {
	return ConfirmPendingResponse{
		Reply:  output.Reply,
		Result: ToRecordTransactionResponse(output.Result),
	}
}
