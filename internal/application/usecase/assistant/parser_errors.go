package assistant

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/finance-tracker/assistant/internal/application/adapter"
)

// ReplyErrorKind identifies a recoverable assistant failure.
type ReplyErrorKind string

const (
	ReplyErrorRateLimited    ReplyErrorKind = "rate_limited"
	ReplyErrorQuotaExceeded  ReplyErrorKind = "quota_exceeded"
	ReplyErrorTimeout        ReplyErrorKind = "timeout"
	ReplyErrorUnavailable    ReplyErrorKind = "unavailable"
	ReplyErrorInvalidCommand ReplyErrorKind = "invalid_command"
	ReplyErrorFailed         ReplyErrorKind = "failed"
)

// replyMessages contains the Portuguese message shown for each failure kind.
var replyMessages = map[ReplyErrorKind]string{
	ReplyErrorRateLimited:    "Muitas solicitações no momento. Aguarde alguns instantes e tente novamente.",
	ReplyErrorQuotaExceeded:  "O limite de uso do assistente foi atingido. Tente novamente mais tarde.",
	ReplyErrorTimeout:        "O assistente demorou demais para responder. Tente novamente.",
	ReplyErrorUnavailable:    "O assistente não está disponível no momento.",
	ReplyErrorInvalidCommand: "Não consegui entender o comando. Tente novamente.",
	ReplyErrorFailed:         "Desculpe, não consegui processar sua mensagem. Tente novamente.",
}

// ReplyError is a non-fatal failure surfaced to the user. Session state is untouched.
type ReplyError struct {
	Kind    ReplyErrorKind
	Message string
}

// classifyParserError converts an intent parser failure into a user-facing reply error.
func classifyParserError(err error) *ReplyError {
	kind := ReplyErrorFailed

	var statusErr *adapter.ParserStatusError
	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		kind = ReplyErrorTimeout
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests:
		kind = ReplyErrorRateLimited
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusPaymentRequired:
		kind = ReplyErrorQuotaExceeded
	case strings.Contains(errStr, "quota"):
		kind = ReplyErrorQuotaExceeded
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "resource exhausted"):
		kind = ReplyErrorRateLimited
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline"):
		kind = ReplyErrorTimeout
	}

	return &ReplyError{
		Kind:    kind,
		Message: replyMessages[kind],
	}
}

func replyError(kind ReplyErrorKind, message string) *ReplyError {
	if message == "" {
		message = replyMessages[kind]
	}
	return &ReplyError{Kind: kind, Message: message}
}
