// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/persistence/model"
)

// scheduledPaymentRepository implements the adapter.ScheduledPaymentRepository interface.
type scheduledPaymentRepository struct {
	db *gorm.DB
}

// NewScheduledPaymentRepository creates a new scheduled payment repository instance.
func NewScheduledPaymentRepository(db *gorm.DB) adapter.ScheduledPaymentRepository {
	return &scheduledPaymentRepository{
		db: db,
	}
}

// Create creates a new scheduled payment in the database.
func (r *scheduledPaymentRepository) Create(ctx context.Context, payment *entity.ScheduledPayment) error {
	paymentModel := model.ScheduledPaymentFromEntity(payment)
	if err := r.db.WithContext(ctx).Create(paymentModel).Error; err != nil {
		return err
	}
	payment.ID = paymentModel.ID
	return nil
}

// FindByID retrieves a scheduled payment by its ID.
func (r *scheduledPaymentRepository) FindByID(ctx context.Context, id uint) (*entity.ScheduledPayment, error) {
	var paymentModel model.ScheduledPaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrScheduledPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByUserID retrieves all scheduled payments of a user ordered by due day.
func (r *scheduledPaymentRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.ScheduledPayment, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindAll retrieves every scheduled payment.
func (r *scheduledPaymentRepository) FindAll(ctx context.Context) ([]*entity.ScheduledPayment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *scheduledPaymentRepository) find(query *gorm.DB) ([]*entity.ScheduledPayment, error) {
	var paymentModels []model.ScheduledPaymentModel
	if err := query.Order("due_day ASC, id ASC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*entity.ScheduledPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToEntity()
	}
	return payments, nil
}

// Update updates an existing scheduled payment.
func (r *scheduledPaymentRepository) Update(ctx context.Context, payment *entity.ScheduledPayment) error {
	paymentModel := model.ScheduledPaymentFromEntity(payment)
	return r.db.WithContext(ctx).Save(paymentModel).Error
}

// Delete removes a scheduled payment.
func (r *scheduledPaymentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ScheduledPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrScheduledPaymentNotFound
	}
	return nil
}
