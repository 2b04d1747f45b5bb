package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/assistant/internal/application/usecase/schedule"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
)

// ScheduleController handles scheduled payment endpoints.
type ScheduleController struct {
	createUseCase    *schedule.CreateScheduledPaymentUseCase
	listUseCase      *schedule.ListScheduledPaymentsUseCase
	updateUseCase    *schedule.UpdateScheduledPaymentUseCase
	deleteUseCase    *schedule.DeleteScheduledPaymentUseCase
	markPaidUseCase  *schedule.MarkScheduledPaymentPaidUseCase
	summaryUseCase   *schedule.GetMonthlySummaryUseCase
	daysUntilUseCase *schedule.DaysUntilUseCase
}

// NewScheduleController creates a new schedule controller instance.
func NewScheduleController(
	createUseCase *schedule.CreateScheduledPaymentUseCase,
	listUseCase *schedule.ListScheduledPaymentsUseCase,
	updateUseCase *schedule.UpdateScheduledPaymentUseCase,
	deleteUseCase *schedule.DeleteScheduledPaymentUseCase,
	markPaidUseCase *schedule.MarkScheduledPaymentPaidUseCase,
	summaryUseCase *schedule.GetMonthlySummaryUseCase,
	daysUntilUseCase *schedule.DaysUntilUseCase,
) *ScheduleController {
	return &ScheduleController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		markPaidUseCase:  markPaidUseCase,
		summaryUseCase:   summaryUseCase,
		daysUntilUseCase: daysUntilUseCase,
	}
}

// List handles GET /scheduled-payments requests.
func (c *ScheduleController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	c.list(ctx, userID)
}

// ListAll handles GET /admin/scheduled-payments requests.
func (c *ScheduleController) ListAll(ctx *gin.Context) {
	c.list(ctx, ctx.Query("user_id"))
}

func (c *ScheduleController) list(ctx *gin.Context, userID string) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), schedule.ListScheduledPaymentsInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ScheduledPaymentListResponse{
		Payments: dto.ToScheduledPaymentResponses(output.Payments),
	})
}

// Create handles POST /scheduled-payments requests.
func (c *ScheduleController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateScheduledPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidScheduleBody(ctx, err)
		return
	}

	input, ok := toCreateScheduledPaymentInput(ctx, userID, req)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToScheduledPaymentResponse(output.Projection))
}

// Update handles PATCH /scheduled-payments/:id requests.
func (c *ScheduleController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	c.update(ctx, userID)
}

// UpdateAny handles PATCH /admin/scheduled-payments/:id requests.
func (c *ScheduleController) UpdateAny(ctx *gin.Context) {
	c.update(ctx, "")
}

func (c *ScheduleController) update(ctx *gin.Context, userID string) {
	paymentID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduledPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidScheduleBody(ctx, err)
		return
	}

	month, err := parseOptionalMonth(req.SpecificMonth)
	if err != nil {
		invalidSpecificMonth(ctx)
		return
	}

	input := schedule.UpdateScheduledPaymentInput{
		UserID:        userID,
		PaymentID:     paymentID,
		Name:          req.Name,
		Amount:        req.Amount,
		DueDay:        req.DueDay,
		IsRecurring:   req.IsRecurring,
		SpecificMonth: month,
	}
	if req.Category != nil {
		category := normalizeCategory(*req.Category)
		input.Category = &category
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduledPaymentResponse(output.Projection))
}

// Delete handles DELETE /scheduled-payments/:id requests.
func (c *ScheduleController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	c.delete(ctx, userID)
}

// DeleteAny handles DELETE /admin/scheduled-payments/:id requests.
func (c *ScheduleController) DeleteAny(ctx *gin.Context) {
	c.delete(ctx, "")
}

func (c *ScheduleController) delete(ctx *gin.Context, userID string) {
	paymentID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), schedule.DeleteScheduledPaymentInput{
		UserID:    userID,
		PaymentID: paymentID,
	}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Pay handles POST /scheduled-payments/:id/pay requests.
func (c *ScheduleController) Pay(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	paymentID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayScheduledPaymentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidScheduleBody(ctx, err)
			return
		}
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), schedule.MarkScheduledPaymentPaidInput{
		UserID:        userID,
		PaymentID:     paymentID,
		RecordExpense: req.RecordExpense,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPayScheduledPaymentResponse(output))
}

// Summary handles GET /scheduled-payments/summary requests.
func (c *ScheduleController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), schedule.GetMonthlySummaryInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output.Summary))
}

// DaysUntil handles GET /scheduled-payments/days-until/:day requests.
func (c *ScheduleController) DaysUntil(ctx *gin.Context) {
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "day must be a number between 1 and 31",
			Code:  string(domainerror.ErrCodeInvalidPaymentDueDay),
		})
		return
	}

	output, err := c.daysUntilUseCase.Execute(day)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDaysUntilResponse(output))
}

func toCreateScheduledPaymentInput(
	ctx *gin.Context,
	userID string,
	req dto.CreateScheduledPaymentRequest,
) (schedule.CreateScheduledPaymentInput, bool) {
	month, err := parseOptionalMonth(req.SpecificMonth)
	if err != nil {
		invalidSpecificMonth(ctx)
		return schedule.CreateScheduledPaymentInput{}, false
	}

	var category entity.Category
	if req.Category != "" {
		category = normalizeCategory(req.Category)
	}

	return schedule.CreateScheduledPaymentInput{
		UserID:        userID,
		Name:          req.Name,
		Amount:        req.Amount,
		DueDay:        req.DueDay,
		IsRecurring:   req.IsRecurring,
		SpecificMonth: month,
		Category:      category,
	}, true
}

func invalidScheduleBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeMissingScheduleFields),
		Details: err.Error(),
	})
}

func invalidSpecificMonth(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid specific_month, expected YYYY-MM",
		Code:  string(domainerror.ErrCodeMissingSpecificMonth),
	})
}
