// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// ScheduledPaymentRepository defines the interface for scheduled payment persistence operations.
type ScheduledPaymentRepository interface {
	// Create creates a new scheduled payment in the database.
	Create(ctx context.Context, payment *entity.ScheduledPayment) error

	// FindByID retrieves a scheduled payment by its ID.
	FindByID(ctx context.Context, id uint) (*entity.ScheduledPayment, error)

	// FindByUserID retrieves all scheduled payments of a user ordered by due day.
	FindByUserID(ctx context.Context, userID string) ([]*entity.ScheduledPayment, error)

	// FindAll retrieves every scheduled payment.
	FindAll(ctx context.Context) ([]*entity.ScheduledPayment, error)

	// Update updates an existing scheduled payment.
	Update(ctx context.Context, payment *entity.ScheduledPayment) error

	// Delete removes a scheduled payment.
	Delete(ctx context.Context, id uint) error
}
