package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/assistant/internal/application/usecase/assistant"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/entrypoint/dto"
)

// AssistantController handles the conversational assistant endpoints.
type AssistantController struct {
	createSessionUseCase *assistant.CreateSessionUseCase
	getSessionUseCase    *assistant.GetSessionUseCase
	sendMessageUseCase   *assistant.SendMessageUseCase
	confirmUseCase       *assistant.ConfirmPendingUseCase
	cancelUseCase        *assistant.CancelPendingUseCase
}

// NewAssistantController creates a new assistant controller instance.
func NewAssistantController(
	createSessionUseCase *assistant.CreateSessionUseCase,
	getSessionUseCase *assistant.GetSessionUseCase,
	sendMessageUseCase *assistant.SendMessageUseCase,
	confirmUseCase *assistant.ConfirmPendingUseCase,
	cancelUseCase *assistant.CancelPendingUseCase,
) *AssistantController {
	return &AssistantController{
		createSessionUseCase: createSessionUseCase,
		getSessionUseCase:    getSessionUseCase,
		sendMessageUseCase:   sendMessageUseCase,
		confirmUseCase:       confirmUseCase,
		cancelUseCase:        cancelUseCase,
	}
}

// CreateSession handles POST /assistant/sessions requests.
func (c *AssistantController) CreateSession(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.createSessionUseCase.Execute(ctx.Request.Context(), assistant.CreateSessionInput{UserID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(output.Session))
}

// GetSession handles GET /assistant/sessions/:id requests.
func (c *AssistantController) GetSession(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	output, err := c.getSessionUseCase.Execute(ctx.Request.Context(), assistant.GetSessionInput{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(output.Session))
}

// SendMessage handles POST /assistant/sessions/:id/messages requests.
// Parser failures are part of the reply, not an HTTP error.
func (c *AssistantController) SendMessage(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Message text is required",
			Code:  string(domainerror.ErrCodeEmptyMessage),
		})
		return
	}

	output, err := c.sendMessageUseCase.Execute(ctx.Request.Context(), assistant.SendMessageInput{
		SessionID: sessionID,
		UserID:    userID,
		Text:      req.Text,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssistantReplyResponse(output))
}

// Confirm handles POST /assistant/sessions/:id/confirm requests.
func (c *AssistantController) Confirm(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	var req dto.ConfirmPendingRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid request body",
				Details: err.Error(),
			})
			return
		}
	}

	input := assistant.ConfirmPendingInput{
		SessionID: sessionID,
		UserID:    userID,
		Amount:    req.Amount,
	}
	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}
	if req.Category != nil {
		category := normalizeCategory(*req.Category)
		input.Category = &category
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToConfirmPendingResponse(output))
}

// Cancel handles POST /assistant/sessions/:id/cancel requests.
func (c *AssistantController) Cancel(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), assistant.CancelPendingInput{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Reply})
}

// Classify handles POST /assistant/classify requests.
func (c *AssistantController) Classify(ctx *gin.Context) {
	var req dto.ClassifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Text is required",
			Code:  string(domainerror.ErrCodeEmptyMessage),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ClassifyResponse{
		Class: string(assistant.Classify(req.Text)),
	})
}

func (c *AssistantController) sessionParams(ctx *gin.Context) (string, uuid.UUID, bool) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return "", uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Session not found",
			Code:  string(domainerror.ErrCodeSessionNotFound),
		})
		return "", uuid.Nil, false
	}

	return userID, sessionID, true
}
