// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/assistant/internal/domain/entity"
)

// ProfileModel represents the profiles table in the database.
type ProfileModel struct {
	ID             uint             `gorm:"primaryKey;autoIncrement"`
	UserID         string           `gorm:"type:varchar(16);uniqueIndex;not null"`
	FullName       string           `gorm:"type:varchar(150);not null"`
	Email          *string          `gorm:"type:varchar(255)"`
	Phone          *string          `gorm:"type:varchar(30)"`
	InitialBalance decimal.Decimal  `gorm:"type:numeric(15,2);not null;default:0"`
	CreditLimit    decimal.Decimal  `gorm:"type:numeric(15,2);not null;default:0"`
	CreditUsed     decimal.Decimal  `gorm:"type:numeric(15,2);not null;default:0"`
	CreditDueDay   int              `gorm:"not null"`
	SalaryAmount   *decimal.Decimal `gorm:"type:numeric(15,2)"`
	SalaryDay      *int
	AdvanceAmount  *decimal.Decimal `gorm:"type:numeric(15,2)"`
	AdvanceDay     *int

	// Additive columns: running totals and the credit-cycle marker.
	TotalIncome       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalExpense      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	DebitExpense      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	LastCreditResetAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	var lastReset *time.Time
	if m.LastCreditResetAt != nil {
		t := m.LastCreditResetAt.UTC()
		lastReset = &t
	}

	return &entity.Profile{
		ID:                m.ID,
		UserID:            m.UserID,
		FullName:          m.FullName,
		Email:             m.Email,
		Phone:             m.Phone,
		InitialBalance:    money(m.InitialBalance),
		CreditLimit:       money(m.CreditLimit),
		CreditUsed:        money(m.CreditUsed),
		CreditDueDay:      m.CreditDueDay,
		SalaryAmount:      moneyPtr(m.SalaryAmount),
		SalaryDay:         m.SalaryDay,
		AdvanceAmount:     moneyPtr(m.AdvanceAmount),
		AdvanceDay:        m.AdvanceDay,
		TotalIncome:       money(m.TotalIncome),
		TotalExpense:      money(m.TotalExpense),
		DebitExpense:      money(m.DebitExpense),
		LastCreditResetAt: lastReset,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileFromEntity(p *entity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:                p.ID,
		UserID:            p.UserID,
		FullName:          p.FullName,
		Email:             p.Email,
		Phone:             p.Phone,
		InitialBalance:    p.InitialBalance,
		CreditLimit:       p.CreditLimit,
		CreditUsed:        p.CreditUsed,
		CreditDueDay:      p.CreditDueDay,
		SalaryAmount:      p.SalaryAmount,
		SalaryDay:         p.SalaryDay,
		AdvanceAmount:     p.AdvanceAmount,
		AdvanceDay:        p.AdvanceDay,
		TotalIncome:       p.TotalIncome,
		TotalExpense:      p.TotalExpense,
		DebitExpense:      p.DebitExpense,
		LastCreditResetAt: p.LastCreditResetAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
