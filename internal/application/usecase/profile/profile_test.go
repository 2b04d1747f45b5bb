package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
	"github.com/finance-tracker/assistant/internal/application/usecase/profile"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/integration/persistence"
	"github.com/finance-tracker/assistant/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func newUpdateProfile(profiles adapter.ProfileRepository, today time.Time) *profile.UpdateProfileUseCase {
	return profile.NewUpdateProfileUseCase(profiles, credit.NewCycleGuard(profiles), &testutil.FixedClock{T: today})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	uc := profile.NewGetProfileUseCase(profiles)

	day := testutil.Date(2024, 3, 12)
	testutil.SeedProfile(t, profiles, "10000001", decimal.NewFromInt(100), decimal.NewFromInt(500), 10, &day)
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(30), entity.TransactionTypeExpense, entity.PaymentMethodDebit, entity.CategoryFood, "", day)))

	out, err := uc.Execute(ctx, profile.GetProfileInput{UserID: "10000001"})
	require.NoError(t, err)
	assert.Equal(t, "10000001", out.Profile.UserID)
	assert.Equal(t, "70.00", out.Balance.Balance.StringFixed(2))

	_, err = uc.Execute(ctx, profile.GetProfileInput{UserID: "99999999"})
	var profileErr *domainerror.ProfileError
	require.True(t, errors.As(err, &profileErr))
	assert.Equal(t, domainerror.ErrCodeProfileNotFound, profileErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	uc := newUpdateProfile(profiles, testutil.Date(2024, 3, 15))

	testutil.SeedProfile(t, profiles, "10000001", decimal.Zero, decimal.NewFromInt(500), 10, nil)

	out, err := uc.Execute(ctx, profile.UpdateProfileInput{
		UserID:       "10000001",
		FullName:     ptr("  Maria Souza "),
		Email:        ptr("maria@example.com"),
		CreditLimit:  ptr(decimal.RequireFromString("1500.555")),
		SalaryAmount: ptr(decimal.NewFromInt(4000)),
		SalaryDay:    ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", out.Profile.FullName)
	assert.Equal(t, "1500.56", out.Profile.CreditLimit.StringFixed(2))

	stored, err := profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", stored.FullName)
	require.NotNil(t, stored.Email)
	assert.Equal(t, "maria@example.com", *stored.Email)
	require.NotNil(t, stored.SalaryDay)
	assert.Equal(t, 5, *stored.SalaryDay)
	assert.Equal(t, 10, stored.CreditDueDay, "fields left nil are unchanged")

	cleared, err := uc.Execute(ctx, profile.UpdateProfileInput{UserID: "10000001", Email: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Profile.Email)
}

func TestUpdateProfile_Validation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	uc := newUpdateProfile(profiles, testutil.Date(2024, 3, 15))

	day := testutil.Date(2024, 3, 12)
	testutil.SeedProfile(t, profiles, "10000001", decimal.Zero, decimal.NewFromInt(500), 10, &day)
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(200), entity.TransactionTypeExpense, entity.PaymentMethodCredit, entity.CategoryShopping, "", day)))

	tests := []struct {
		name  string
		input profile.UpdateProfileInput
		want  error
	}{
		{
			name:  "blank name",
			input: profile.UpdateProfileInput{FullName: ptr("   ")},
			want:  domainerror.ErrMissingFullName,
		},
		{
			name:  "bad email",
			input: profile.UpdateProfileInput{Email: ptr("not-an-email")},
			want:  domainerror.ErrInvalidEmail,
		},
		{
			name:  "due day out of range",
			input: profile.UpdateProfileInput{CreditDueDay: ptr(32)},
			want:  domainerror.ErrInvalidDueDay,
		},
		{
			name:  "negative limit",
			input: profile.UpdateProfileInput{CreditLimit: ptr(decimal.NewFromInt(-1))},
			want:  domainerror.ErrInvalidCreditLimit,
		},
		{
			name:  "limit below usage",
			input: profile.UpdateProfileInput{CreditLimit: ptr(decimal.NewFromInt(150))},
			want:  domainerror.ErrCreditLimitBelowUsage,
		},
		{
			name:  "negative salary",
			input: profile.UpdateProfileInput{SalaryAmount: ptr(decimal.NewFromInt(-10))},
			want:  domainerror.ErrInvalidAmount,
		},
		{
			name:  "advance day zero",
			input: profile.UpdateProfileInput{AdvanceDay: ptr(0)},
			want:  domainerror.ErrInvalidDueDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = "10000001"
			_, err := uc.Execute(ctx, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	stored, err := profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "500.00", stored.CreditLimit.StringFixed(2))
	assert.Equal(t, "200.00", stored.CreditUsed.StringFixed(2))
}

func TestUpdateProfile_LimitEqualToUsage(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	uc := newUpdateProfile(profiles, testutil.Date(2024, 3, 15))

	day := testutil.Date(2024, 3, 12)
	testutil.SeedProfile(t, profiles, "10000001", decimal.Zero, decimal.NewFromInt(500), 10, &day)
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(200), entity.TransactionTypeExpense, entity.PaymentMethodCredit, entity.CategoryShopping, "", day)))

	out, err := uc.Execute(ctx, profile.UpdateProfileInput{UserID: "10000001", CreditLimit: ptr(decimal.NewFromInt(200))})
	require.NoError(t, err)
	assert.Equal(t, "200.00", out.Profile.CreditLimit.StringFixed(2))
}

func TestUpdateProfile_LimitCheckedAfterCycleReset(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	transactions := persistence.NewTransactionRepository(db)

	marker := testutil.Date(2024, 2, 10)
	testutil.SeedProfile(t, profiles, "10000001", decimal.Zero, decimal.NewFromInt(1000), 10, &marker)
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(800), entity.TransactionTypeExpense, entity.PaymentMethodCredit, entity.CategoryShopping, "", testutil.Date(2024, 2, 20))))

	uc := newUpdateProfile(profiles, testutil.Date(2024, 3, 15))
	out, err := uc.Execute(ctx, profile.UpdateProfileInput{UserID: "10000001", CreditLimit: ptr(decimal.NewFromInt(500))})
	require.NoError(t, err)
	assert.Equal(t, "500.00", out.Profile.CreditLimit.StringFixed(2))
	assert.True(t, out.Profile.CreditUsed.IsZero())

	stored, err := profiles.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, "500.00", stored.CreditLimit.StringFixed(2))
	assert.True(t, stored.CreditUsed.IsZero())
	require.NotNil(t, stored.LastCreditResetAt)
	assert.True(t, stored.LastCreditResetAt.Equal(testutil.Date(2024, 3, 10)))
}
