package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/assistant/internal/application/usecase/balance"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/application/usecase/profile"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
)

// ProfileController handles profile, balance and credit endpoints.
type ProfileController struct {
	getUseCase       *profile.GetProfileUseCase
	updateUseCase    *profile.UpdateProfileUseCase
	balanceUseCase   *balance.GetBalanceUseCase
	reconcileUseCase *balance.ReconcileBalanceUseCase
	creditUseCase    *credit.GetCreditStatusUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	getUseCase *profile.GetProfileUseCase,
	updateUseCase *profile.UpdateProfileUseCase,
	balanceUseCase *balance.GetBalanceUseCase,
	reconcileUseCase *balance.ReconcileBalanceUseCase,
	creditUseCase *credit.GetCreditStatusUseCase,
) *ProfileController {
	return &ProfileController{
		getUseCase:       getUseCase,
		updateUseCase:    updateUseCase,
		balanceUseCase:   balanceUseCase,
		reconcileUseCase: reconcileUseCase,
		creditUseCase:    creditUseCase,
	}
}

// Get handles GET /profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileWithBalanceResponse{
		Profile: dto.ToProfileResponse(output.Profile),
		Balance: dto.ToBalanceResponse(output.Balance),
	})
}

// Update handles PATCH /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	c.update(ctx, userID)
}

// UpdateUser handles PATCH /admin/users/:user_id requests.
func (c *ProfileController) UpdateUser(ctx *gin.Context) {
	c.update(ctx, ctx.Param("user_id"))
}

func (c *ProfileController) update(ctx *gin.Context, userID string) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingProfileFields),
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		UserID:        userID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		CreditLimit:   req.CreditLimit,
		CreditDueDay:  req.CreditDueDay,
		SalaryAmount:  req.SalaryAmount,
		SalaryDay:     req.SalaryDay,
		AdvanceAmount: req.AdvanceAmount,
		AdvanceDay:    req.AdvanceDay,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// Balance handles GET /balance requests.
func (c *ProfileController) Balance(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.balanceUseCase.Execute(ctx.Request.Context(), balance.GetBalanceInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGetBalanceResponse(output))
}

// Reconcile handles POST /balance/reconcile requests.
func (c *ProfileController) Reconcile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.reconcileUseCase.Execute(ctx.Request.Context(), balance.ReconcileBalanceInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReconcileResponse{
		Stored:     dto.ToBalanceResponse(output.Stored),
		Recomputed: dto.ToBalanceResponse(output.Recomputed),
		Drift:      output.Drift,
	})
}

// Credit handles GET /credit requests.
func (c *ProfileController) Credit(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.creditUseCase.Execute(ctx.Request.Context(), credit.GetCreditStatusInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditStatusResponse(output.Status))
}
