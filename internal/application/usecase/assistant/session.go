package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

// CreateSessionInput represents the input for opening an assistant session.
type CreateSessionInput struct {
	UserID string
}

// SessionOutput represents an assistant session.
type SessionOutput struct {
	Session *entity.Session
}

// CreateSessionUseCase opens a new assistant session.
type CreateSessionUseCase struct {
	sessions adapter.SessionStore
}

// NewCreateSessionUseCase creates a new CreateSessionUseCase instance.
func NewCreateSessionUseCase(sessions adapter.SessionStore) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		sessions: sessions,
	}
}

// Execute creates and stores an empty session.
func (uc *CreateSessionUseCase) Execute(ctx context.Context, input CreateSessionInput) (*SessionOutput, error) {
	session := entity.NewSession(input.UserID)
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &SessionOutput{Session: session}, nil
}

// GetSessionInput represents the input for reading a session.
type GetSessionInput struct {
	SessionID uuid.UUID
	UserID    string
}

// GetSessionUseCase reads a session and its pending confirmation.
type GetSessionUseCase struct {
	sessions adapter.SessionStore
}

// NewGetSessionUseCase creates a new GetSessionUseCase instance.
func NewGetSessionUseCase(sessions adapter.SessionStore) *GetSessionUseCase {
	return &GetSessionUseCase{
		sessions: sessions,
	}
}

// Execute performs the lookup.
func (uc *GetSessionUseCase) Execute(ctx context.Context, input GetSessionInput) (*SessionOutput, error) {
	session, err := loadSession(ctx, uc.sessions, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Session: session}, nil
}

// loadSession reads a session and checks it belongs to the user.
func loadSession(ctx context.Context, sessions adapter.SessionStore, id uuid.UUID, userID string) (*entity.Session, error) {
	session, err := sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return nil, domainerror.NewAssistantError(
				domainerror.ErrCodeSessionNotFound,
				"assistant session not found",
				domainerror.ErrSessionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.UserID != userID {
		return nil, domainerror.NewAssistantError(
			domainerror.ErrCodeUnauthorizedSessionAccess,
			"session does not belong to user",
			domainerror.ErrUnauthorizedSessionAccess,
		)
	}
	return session, nil
}

// lockSession acquires the input lock. The returned release func must be deferred.
func lockSession(ctx context.Context, sessions adapter.SessionStore, id uuid.UUID) (func(), error) {
	token, locked, err := sessions.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if !locked {
		return nil, domainerror.NewAssistantError(
			domainerror.ErrCodeSessionBusy,
			"a message is still being processed",
			domainerror.ErrSessionBusy,
		)
	}

	return func() {
		_ = sessions.Unlock(context.WithoutCancel(ctx), id, token)
	}, nil
}
