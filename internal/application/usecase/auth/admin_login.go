package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// AdminCredentials is the configured admin console account.
type AdminCredentials struct {
	Username     string
	PasswordHash string // bcrypt; empty disables the console
}

// AdminLoginInput represents the input for admin login.
type AdminLoginInput struct {
	Username string
	Password string
}

// AdminLoginOutput represents the output of admin login.
type AdminLoginOutput struct {
	AccessToken *adapter.AccessToken
}

// AdminLoginUseCase authenticates the admin console operator.
type AdminLoginUseCase struct {
	credentials     AdminCredentials
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewAdminLoginUseCase creates a new AdminLoginUseCase instance.
func NewAdminLoginUseCase(
	credentials AdminCredentials,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *AdminLoginUseCase {
	return &AdminLoginUseCase{
		credentials:     credentials,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the admin login.
func (uc *AdminLoginUseCase) Execute(ctx context.Context, input AdminLoginInput) (*AdminLoginOutput, error) {
	if uc.credentials.PasswordHash == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAdminDisabled,
			"admin console is disabled",
			domainerror.ErrAdminDisabled,
		)
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(uc.credentials.Username)) == 1
	passwordErr := uc.passwordService.VerifyPassword(uc.credentials.PasswordHash, input.Password)
	if !usernameOK || passwordErr != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, uc.credentials.Username, adapter.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AdminLoginOutput{
		AccessToken: token,
	}, nil
}
