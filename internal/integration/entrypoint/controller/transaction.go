package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/assistant/internal/application/usecase/transaction"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	recordUseCase *transaction.RecordTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	dayUseCase    *transaction.GetDayTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	recordUseCase *transaction.RecordTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	dayUseCase *transaction.GetDayTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
		dayUseCase:    dayUseCase,
	}
}

// Record handles POST /transactions requests.
func (c *TransactionController) Record(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.RecordTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: err.Error(),
		})
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), transaction.RecordTransactionInput{
		UserID:        userID,
		Amount:        req.Amount,
		Type:          entity.TransactionType(req.Type),
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Category:      normalizeCategory(req.Category),
		Description:   req.Description,
		Date:          date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecordTransactionResponse(output))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	if raw := ctx.Query("start_date"); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			c.invalidDate(ctx, "start_date")
			return
		}
		input.StartDate = &start
	}
	if raw := ctx.Query("end_date"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			c.invalidDate(ctx, "end_date")
			return
		}
		// The query is inclusive of the end day.
		end = end.AddDate(0, 0, 1)
		input.EndDate = &end
	}
	if raw := ctx.Query("type"); raw != "" {
		txType := entity.TransactionType(raw)
		if !txType.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "type must be income or expense",
				Code:  string(domainerror.ErrCodeInvalidTransactionType),
			})
			return
		}
		input.Type = &txType
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid limit",
			})
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
		Total:        output.Total,
	})
}

// Day handles GET /transactions/day requests.
func (c *TransactionController) Day(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	date, err := parseDate(ctx.Query("date"))
	if err != nil {
		c.invalidDate(ctx, "date")
		return
	}

	output, err := c.dayUseCase.Execute(ctx.Request.Context(), transaction.GetDayTransactionsInput{
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDayTransactionsResponse(output))
}

func (c *TransactionController) invalidDate(ctx *gin.Context, field string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid " + field + ", expected YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidTransactionDate),
	})
}

// normalizeCategory accepts Portuguese aliases and leaves unknown labels for the use case to reject.
func normalizeCategory(raw string) entity.Category {
	if category, ok := entity.ParseCategory(raw); ok {
		return category
	}
	return entity.Category(raw)
}
