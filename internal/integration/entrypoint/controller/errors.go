// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/middleware"
)

// handleDomainError maps coded domain errors to HTTP responses.
func handleDomainError(ctx *gin.Context, err error) {
	var (
		profileErr     *domainerror.ProfileError
		transactionErr *domainerror.TransactionError
		creditErr      *domainerror.CreditError
		scheduleErr    *domainerror.ScheduleError
		goalErr        *domainerror.GoalError
		assistantErr   *domainerror.AssistantError
		authErr        *domainerror.AuthError
		adminErr       *domainerror.AdminError
	)

	switch {
	case errors.As(err, &profileErr):
		writeError(ctx, getStatusCodeForProfileError(profileErr.Code), profileErr.Message, string(profileErr.Code))
	case errors.As(err, &transactionErr):
		writeError(ctx, getStatusCodeForTransactionError(transactionErr.Code), transactionErr.Message, string(transactionErr.Code))
	case errors.As(err, &creditErr):
		writeError(ctx, getStatusCodeForCreditError(creditErr.Code), creditErr.Message, string(creditErr.Code))
	case errors.As(err, &scheduleErr):
		writeError(ctx, getStatusCodeForScheduleError(scheduleErr.Code), scheduleErr.Message, string(scheduleErr.Code))
	case errors.As(err, &goalErr):
		writeError(ctx, getStatusCodeForGoalError(goalErr.Code), goalErr.Message, string(goalErr.Code))
	case errors.As(err, &assistantErr):
		writeError(ctx, getStatusCodeForAssistantError(assistantErr.Code), assistantErr.Message, string(assistantErr.Code))
	case errors.As(err, &authErr):
		writeError(ctx, getStatusCodeForAuthError(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &adminErr):
		writeError(ctx, getStatusCodeForAdminError(adminErr.Code), adminErr.Message, string(adminErr.Code))
	default:
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func getStatusCodeForProfileError(code domainerror.ProfileErrorCode) int {
	switch code {
	case domainerror.ErrCodeProfileNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingFullName,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeInvalidProfileAmount,
		domainerror.ErrCodeInvalidProfileDay,
		domainerror.ErrCodeMissingProfileFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionProfileNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForCreditError(code domainerror.CreditErrorCode) int {
	switch code {
	case domainerror.ErrCodeInsufficientCredit:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidCreditLimit,
		domainerror.ErrCodeCreditLimitBelowUsage,
		domainerror.ErrCodeInvalidDueDay:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForScheduleError(code domainerror.ScheduleErrorCode) int {
	switch code {
	case domainerror.ErrCodeScheduledPaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedPaymentAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeAlreadyPaid:
		return http.StatusConflict
	case domainerror.ErrCodeMissingPaymentName,
		domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidPaymentDueDay,
		domainerror.ErrCodeMissingSpecificMonth,
		domainerror.ErrCodeInvalidPaymentCategory,
		domainerror.ErrCodeMissingScheduleFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidContribution,
		domainerror.ErrCodeMissingGoalTitle,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForAssistantError(code domainerror.AssistantErrorCode) int {
	switch code {
	case domainerror.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedSessionAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeSessionBusy,
		domainerror.ErrCodeNoPendingTransaction:
		return http.StatusConflict
	case domainerror.ErrCodeEmptyMessage,
		domainerror.ErrCodeInvalidAmountText,
		domainerror.ErrCodeMissingScheduleDay:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAdminDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForAdminError(code domainerror.AdminErrorCode) int {
	switch code {
	case domainerror.ErrCodeAdminUserNotFound, domainerror.ErrCodeAdminPaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPagination:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireUserID reads the authenticated user or writes a 401.
func requireUserID(ctx *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", false
	}
	return userID, true
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + " format",
		})
		return 0, false
	}
	return uint(id), true
}

// parseDate parses a YYYY-MM-DD value as a UTC civil date.
func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, raw, time.UTC)
}

// parseMonth parses a YYYY-MM value as the first day of that month.
func parseMonth(raw string) (time.Time, error) {
	return time.ParseInLocation(dto.MonthLayout, raw, time.UTC)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalMonth(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseMonth(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
