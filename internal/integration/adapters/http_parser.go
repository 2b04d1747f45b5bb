package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// maxParserResponseBytes caps how much of a parser response is read.
const maxParserResponseBytes = 1 << 20

// HTTPParser implements adapter.IntentParser against a remote parser endpoint.
type HTTPParser struct {
	url    string
	client *http.Client
}

// NewHTTPParser creates a parser that posts to url. A nil client uses http.DefaultClient.
func NewHTTPParser(url string, client *http.Client) *HTTPParser {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPParser{
		url:    url,
		client: client,
	}
}

// IsAvailable checks if the parser endpoint is configured.
func (p *HTTPParser) IsAvailable() bool {
	return p.url != ""
}

type parserRequest struct {
	Message    string         `json:"message"`
	Context    parserContext  `json:"context"`
	ToolChoice *parserToolRef `json:"toolChoice,omitempty"`
}

type parserToolRef struct {
	Name string `json:"name"`
}

type parserContext struct {
	Today              string                   `json:"today"`
	Balance            decimal.Decimal          `json:"balance"`
	DebitBalance       decimal.Decimal          `json:"debitBalance"`
	CreditLimit        decimal.Decimal          `json:"creditLimit"`
	CreditUsed         decimal.Decimal          `json:"creditUsed"`
	AvailableCredit    decimal.Decimal          `json:"availableCredit"`
	CreditDueDay       int                      `json:"creditDueDay"`
	SalaryAmount       *decimal.Decimal         `json:"salaryAmount,omitempty"`
	SalaryDay          *int                     `json:"salaryDay,omitempty"`
	AdvanceAmount      *decimal.Decimal         `json:"advanceAmount,omitempty"`
	AdvanceDay         *int                     `json:"advanceDay,omitempty"`
	RecentTransactions []parserTransaction      `json:"recentTransactions"`
	ScheduledPayments  []parserScheduledPayment `json:"scheduledPayments"`
}

type parserTransaction struct {
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"paymentMethod"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
}

type parserScheduledPayment struct {
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	DueDay        int             `json:"dueDay"`
	IsRecurring   bool            `json:"isRecurring"`
	SpecificMonth string          `json:"specificMonth,omitempty"`
	Category      string          `json:"category"`
}

type parserResponse struct {
	Message      string `json:"message"`
	FunctionCall *struct {
		Name string         `json:"name"`
		Args map[string]any `json:"args"`
	} `json:"functionCall"`
	Error string `json:"error"`
}

// Parse posts the message and context and decodes the returned intent.
func (p *HTTPParser) Parse(ctx context.Context, request adapter.IntentRequest) (*adapter.IntentResult, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("intent parser url is not configured")
	}

	body, err := json.Marshal(newParserRequest(request))
	if err != nil {
		return nil, fmt.Errorf("failed to encode parser request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build parser request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call intent parser: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxParserResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read parser response: %w", err)
	}

	var decoded parserResponse
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	decodeErr := decoder.Decode(&decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := decoded.Error
		if decodeErr != nil || message == "" {
			message = strings.TrimSpace(string(raw))
		}
		return nil, &adapter.ParserStatusError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode parser response: %w", decodeErr)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("intent parser error: %s", decoded.Error)
	}

	result := &adapter.IntentResult{Message: decoded.Message}
	if decoded.FunctionCall != nil && decoded.FunctionCall.Name != "" {
		result.FunctionCall = &entity.FunctionCall{
			Name: entity.FunctionName(decoded.FunctionCall.Name),
			Args: decoded.FunctionCall.Args,
		}
	}
	return result, nil
}

func newParserRequest(request adapter.IntentRequest) parserRequest {
	fc := request.Context
	pc := parserContext{
		Today:              fc.Today.Format(promptDateLayout),
		Balance:            fc.Balance,
		DebitBalance:       fc.DebitBalance,
		CreditLimit:        fc.CreditLimit,
		CreditUsed:         fc.CreditUsed,
		AvailableCredit:    fc.AvailableCredit,
		CreditDueDay:       fc.CreditDueDay,
		SalaryAmount:       fc.SalaryAmount,
		SalaryDay:          fc.SalaryDay,
		AdvanceAmount:      fc.AdvanceAmount,
		AdvanceDay:         fc.AdvanceDay,
		RecentTransactions: make([]parserTransaction, 0, len(fc.RecentTransactions)),
		ScheduledPayments:  make([]parserScheduledPayment, 0, len(fc.ScheduledPayments)),
	}

	for _, tx := range fc.RecentTransactions {
		pc.RecentTransactions = append(pc.RecentTransactions, parserTransaction{
			Amount:        tx.Amount,
			Type:          string(tx.Type),
			PaymentMethod: string(paymentMethodOf(tx)),
			Category:      string(tx.Category),
			Description:   tx.Description,
			Date:          tx.Date.Format(promptDateLayout),
		})
	}
	for _, sp := range fc.ScheduledPayments {
		payment := parserScheduledPayment{
			Name:        sp.Name,
			Amount:      sp.Amount,
			DueDay:      sp.DueDay,
			IsRecurring: sp.IsRecurring,
			Category:    string(sp.Category),
		}
		if sp.SpecificMonth != nil {
			payment.SpecificMonth = sp.SpecificMonth.Format("2006-01")
		}
		pc.ScheduledPayments = append(pc.ScheduledPayments, payment)
	}

	req := parserRequest{Message: request.Message, Context: pc}
	if request.ForceFunction != "" {
		req.ToolChoice = &parserToolRef{Name: string(request.ForceFunction)}
	}
	return req
}
