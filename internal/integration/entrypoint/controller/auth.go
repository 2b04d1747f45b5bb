// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/assistant/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase   *auth.RegisterProfileUseCase
	loginUseCase      *auth.LoginUserUseCase
	adminLoginUseCase *auth.AdminLoginUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterProfileUseCase,
	loginUseCase *auth.LoginUserUseCase,
	adminLoginUseCase *auth.AdminLoginUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:   registerUseCase,
		loginUseCase:      loginUseCase,
		adminLoginUseCase: adminLoginUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingProfileFields),
			Details: err.Error(),
		})
		return
	}

	input := auth.RegisterProfileInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		CreditDueDay:   req.CreditDueDay,
		SalaryAmount:   req.SalaryAmount,
		SalaryDay:      req.SalaryDay,
		AdvanceAmount:  req.AdvanceAmount,
		AdvanceDay:     req.AdvanceDay,
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		AccessToken: output.AccessToken.Token,
		ExpiresAt:   output.AccessToken.ExpiresAt,
		Profile:     dto.ToProfileResponse(output.Profile),
	})
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "A user ID must have exactly 8 digits",
			Code:  string(domainerror.ErrCodeInvalidCredentials),
		})
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		UserID: req.UserID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: output.AccessToken.Token,
		ExpiresAt:   output.AccessToken.ExpiresAt,
		Profile:     dto.ToProfileResponse(output.Profile),
	})
}

// AdminLogin handles POST /admin/login requests.
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidCredentials),
		})
		return
	}

	output, err := c.adminLoginUseCase.Execute(ctx.Request.Context(), auth.AdminLoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: output.AccessToken.Token,
		ExpiresAt:   output.AccessToken.ExpiresAt,
	})
}
