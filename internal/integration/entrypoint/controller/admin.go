package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/assistant/internal/application/usecase/admin"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
)

// AdminController handles the admin console endpoints.
type AdminController struct {
	listUsersUseCase     *admin.ListUsersUseCase
	getUserUseCase       *admin.GetUserUseCase
	deleteUserUseCase    *admin.DeleteUserUseCase
	createPaymentUseCase *admin.CreateUserPaymentUseCase
	reportUseCase        *admin.GetReportUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(
	listUsersUseCase *admin.ListUsersUseCase,
	getUserUseCase *admin.GetUserUseCase,
	deleteUserUseCase *admin.DeleteUserUseCase,
	createPaymentUseCase *admin.CreateUserPaymentUseCase,
	reportUseCase *admin.GetReportUseCase,
) *AdminController {
	return &AdminController{
		listUsersUseCase:     listUsersUseCase,
		getUserUseCase:       getUserUseCase,
		deleteUserUseCase:    deleteUserUseCase,
		createPaymentUseCase: createPaymentUseCase,
		reportUseCase:        reportUseCase,
	}
}

// ListUsers handles GET /admin/users requests.
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, err := queryInt(ctx, "page")
	if err != nil {
		c.invalidPagination(ctx)
		return
	}
	pageSize, err := queryInt(ctx, "page_size")
	if err != nil {
		c.invalidPagination(ctx)
		return
	}

	output, err := c.listUsersUseCase.Execute(ctx.Request.Context(), admin.ListUsersInput{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output))
}

// GetUser handles GET /admin/users/:user_id requests.
func (c *AdminController) GetUser(ctx *gin.Context) {
	output, err := c.getUserUseCase.Execute(ctx.Request.Context(), admin.GetUserInput{
		UserID: ctx.Param("user_id"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserDetailResponse(output))
}

// DeleteUser handles DELETE /admin/users/:user_id requests.
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.deleteUserUseCase.Execute(ctx.Request.Context(), admin.DeleteUserInput{
		UserID: ctx.Param("user_id"),
	}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreatePayment handles POST /admin/scheduled-payments requests.
func (c *AdminController) CreatePayment(ctx *gin.Context) {
	var req dto.AdminCreateScheduledPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidScheduleBody(ctx, err)
		return
	}

	input, ok := toCreateScheduledPaymentInput(ctx, req.UserID, req.CreateScheduledPaymentRequest)
	if !ok {
		return
	}

	output, err := c.createPaymentUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToScheduledPaymentResponse(output.Projection))
}

// Report handles GET /admin/reports/summary requests.
func (c *AdminController) Report(ctx *gin.Context) {
	output, err := c.reportUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(output))
}

func (c *AdminController) invalidPagination(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "page and page_size must be positive numbers",
		Code:  string(domainerror.ErrCodeInvalidPagination),
	})
}

func queryInt(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
