package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/application/usecase/schedule"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// ScheduleCreator creates scheduled payments.
type ScheduleCreator interface {
	Execute(ctx context.Context, input schedule.CreateScheduledPaymentInput) (*schedule.CreateScheduledPaymentOutput, error)
}

// Options tunes the assistant orchestrator.
type Options struct {
	ParserTimeout time.Duration
	RecentLimit   int
}

// SendMessageInput represents a user message sent to a session.
type SendMessageInput struct {
	SessionID uuid.UUID
	UserID    string
	Text      string
}

// SendMessageOutput represents the assistant reply. Exactly one of the optional
// result fields is set depending on the handled intent.
type SendMessageOutput struct {
	SessionID uuid.UUID
	Class     entity.IntentClass
	Function  entity.FunctionName
	Reply     string
	Error     *ReplyError

	Pending           *entity.PendingTransaction
	ScheduledPayment  *finance.PaymentProjection
	Balance           *finance.Balance
	Credit            *finance.CreditStatus
	Summary           *finance.MonthlySummary
	Transactions      []*entity.Transaction
	ScheduledPayments []finance.PaymentProjection
}

// SendMessageUseCase routes a message to local schedule parsing or to the intent parser.
type SendMessageUseCase struct {
	sessions        adapter.SessionStore
	parser          adapter.IntentParser
	scheduler       ScheduleCreator
	transactionRepo adapter.TransactionRepository
	builder         *contextBuilder
	options         Options
}

// NewSendMessageUseCase creates a new SendMessageUseCase instance. parser may be nil.
func NewSendMessageUseCase(
	sessions adapter.SessionStore,
	parser adapter.IntentParser,
	scheduler ScheduleCreator,
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	paymentRepo adapter.ScheduledPaymentRepository,
	guard *credit.CycleGuard,
	clock adapter.Clock,
	options Options,
) *SendMessageUseCase {
	if options.ParserTimeout <= 0 {
		options.ParserTimeout = 20 * time.Second
	}
	if options.RecentLimit <= 0 {
		options.RecentLimit = 10
	}

	return &SendMessageUseCase{
		sessions:        sessions,
		parser:          parser,
		scheduler:       scheduler,
		transactionRepo: transactionRepo,
		builder: &contextBuilder{
			profileRepo:     profileRepo,
			transactionRepo: transactionRepo,
			paymentRepo:     paymentRepo,
			guard:           guard,
			clock:           clock,
			recentLimit:     options.RecentLimit,
		},
		options: options,
	}
}

// Execute handles one message. Parser failures are returned in Output.Error,
// never as an error, and leave the session untouched.
func (uc *SendMessageUseCase) Execute(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domainerror.NewAssistantError(
			domainerror.ErrCodeEmptyMessage,
			"message is empty",
			domainerror.ErrEmptyMessage,
		)
	}

	if _, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID); err != nil {
		return nil, err
	}

	release, err := lockSession(ctx, uc.sessions, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Reload under the lock so a concurrent confirm is not overwritten.
	session, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &SendMessageOutput{
		SessionID: session.ID,
		Class:     Classify(text),
	}

	if output.Class == entity.IntentClassSchedule {
		if err := uc.handleSchedule(ctx, session, text, output); err != nil {
			return nil, err
		}
		return output, nil
	}

	if uc.parser == nil || !uc.parser.IsAvailable() {
		output.Error = replyError(ReplyErrorUnavailable, "")
		output.Reply = output.Error.Message
		return output, nil
	}

	snap, err := uc.builder.load(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	request := adapter.IntentRequest{
		Message: text,
		Context: snap.financialContext(),
	}
	if output.Class == entity.IntentClassTransaction {
		request.ForceFunction = entity.FunctionRecordTransaction
	}

	parseCtx, cancel := context.WithTimeout(ctx, uc.options.ParserTimeout)
	defer cancel()

	result, err := uc.parser.Parse(parseCtx, request)
	if err != nil {
		output.Error = classifyParserError(err)
		output.Reply = output.Error.Message
		slog.Warn("intent parser failed",
			"user_id", session.UserID,
			"kind", output.Error.Kind,
			"error", err,
		)
		return output, nil
	}

	output.Reply = result.Message
	if result.FunctionCall == nil {
		if output.Reply == "" {
			output.Reply = "Não entendi. Pode reformular?"
		}
		return output, nil
	}

	output.Function = result.FunctionCall.Name
	if err := uc.dispatch(ctx, session, snap, result.FunctionCall, output); err != nil {
		return nil, err
	}
	return output, nil
}

func (uc *SendMessageUseCase) handleSchedule(ctx context.Context, session *entity.Session, text string, output *SendMessageOutput) error {
	cmd, err := ParseScheduleCommand(text, uc.builder.clock.Now())
	if err != nil {
		if msg, ok := userMessage(err); ok {
			output.Error = replyError(ReplyErrorInvalidCommand, msg)
			output.Reply = msg
			return nil
		}
		return err
	}

	created, err := uc.scheduler.Execute(ctx, schedule.CreateScheduledPaymentInput{
		UserID:        session.UserID,
		Name:          cmd.Name,
		Amount:        cmd.Amount,
		DueDay:        cmd.DueDay,
		IsRecurring:   cmd.IsRecurring,
		SpecificMonth: cmd.SpecificMonth,
		Category:      cmd.Category,
	})
	if err != nil {
		if msg, ok := userMessage(err); ok {
			output.Error = replyError(ReplyErrorInvalidCommand, msg)
			output.Reply = msg
			return nil
		}
		return err
	}

	output.ScheduledPayment = &created.Projection
	output.Reply = scheduledReply(created.Payment)
	return nil
}

// dispatch executes a parsed intent. Queries are answered from local data;
// record_transaction only stages a pending confirmation.
func (uc *SendMessageUseCase) dispatch(
	ctx context.Context,
	session *entity.Session,
	snap *snapshot,
	call *entity.FunctionCall,
	output *SendMessageOutput,
) error {
	switch call.Name {
	case entity.FunctionRecordTransaction:
		pending, err := pendingFromArgs(call.Args, snap.Today)
		if err != nil {
			msg, _ := userMessage(err)
			output.Error = replyError(ReplyErrorInvalidCommand, msg)
			output.Reply = output.Error.Message
			return nil
		}
		session.Pending = pending
		session.UpdatedAt = time.Now().UTC()
		if err := uc.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		output.Pending = pending
		output.Reply = pendingReply(pending)

	case entity.FunctionGetCurrentBalance:
		output.Balance = &snap.Balance
		output.Credit = &snap.Credit
		output.Reply = balanceReply(snap.Balance, snap.Credit)

	case entity.FunctionGetFinancialSummary:
		summary := finance.ProjectMonth(
			snap.Balance.Balance,
			finance.IncomeScheduleOf(snap.Profile),
			snap.Payments,
			snap.Today,
		)
		output.Summary = &summary
		output.Reply = summaryReply(summary)

	case entity.FunctionGetDayTransactions:
		day := dayFromArgs(call.Args, snap.Today)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, snap.Today.Location())
		end := start.AddDate(0, 0, 1)
		result, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
			UserID:    session.UserID,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			return fmt.Errorf("failed to list day transactions: %w", err)
		}
		output.Transactions = result.Transactions
		output.Reply = dayTransactionsReply(start, result.Transactions)

	case entity.FunctionGetScheduledPayments:
		projections := make([]finance.PaymentProjection, 0, len(snap.Payments))
		for _, p := range snap.Payments {
			projections = append(projections, finance.ProjectPayment(p, snap.Today))
		}
		output.ScheduledPayments = projections
		output.Reply = scheduledPaymentsReply(projections)

	default:
		slog.Warn("intent parser returned unknown function", "function", call.Name)
		if output.Reply == "" {
			output.Reply = "Não entendi. Pode reformular?"
		}
	}

	return nil
}
