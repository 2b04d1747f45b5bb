// Package session implements assistant session stores.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// sessionRecord is the stored form of an assistant session.
type sessionRecord struct {
	ID        uuid.UUID      `json:"id"`
	UserID    string         `json:"user_id"`
	Pending   *pendingRecord `json:"pending,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type pendingRecord struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"payment_method"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}

func recordFromEntity(s *entity.Session) *sessionRecord {
	r := &sessionRecord{
		ID:        s.ID,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if p := s.Pending; p != nil {
		r.Pending = &pendingRecord{
			ID:            p.ID,
			Amount:        p.Amount,
			Type:          string(p.Type),
			PaymentMethod: string(p.PaymentMethod),
			Category:      string(p.Category),
			Description:   p.Description,
			CreatedAt:     p.CreatedAt,
		}
	}
	return r
}

func (r *sessionRecord) toEntity() *entity.Session {
	s := &entity.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if p := r.Pending; p != nil {
		s.Pending = &entity.PendingTransaction{
			ID:            p.ID,
			Amount:        p.Amount,
			Type:          entity.TransactionType(p.Type),
			PaymentMethod: entity.PaymentMethod(p.PaymentMethod),
			Category:      entity.Category(p.Category),
			Description:   p.Description,
			CreatedAt:     p.CreatedAt,
		}
	}
	return s
}
