package admin_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/application/usecase/admin"
	"github.com/finance-tracker/assistant/internal/application/usecase/schedule"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
	"github.com/finance-tracker/assistant/internal/integration/persistence"
	"github.com/finance-tracker/assistant/internal/testutil"
)

func TestListUsers_Pagination(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	uc := admin.NewListUsersUseCase(profiles)

	for i := 1; i <= 5; i++ {
		testutil.SeedProfile(t, profiles, fmt.Sprintf("1000000%d", i), decimal.NewFromInt(int64(i*100)), decimal.Zero, 10, nil)
		time.Sleep(time.Millisecond)
	}

	first, err := uc.Execute(ctx, admin.ListUsersInput{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.Total)
	require.Len(t, first.Users, 2)
	assert.Equal(t, "10000001", first.Users[0].Profile.UserID)
	assert.Equal(t, "100.00", first.Users[0].Balance.StringFixed(2))

	last, err := uc.Execute(ctx, admin.ListUsersInput{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, last.Users, 1)
	assert.Equal(t, "10000005", last.Users[0].Profile.UserID)

	defaults, err := uc.Execute(ctx, admin.ListUsersInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, admin.DefaultPageSize, defaults.PageSize)
	assert.Len(t, defaults.Users, 5)

	for _, input := range []admin.ListUsersInput{
		{Page: -1, PageSize: 10},
		{Page: 1, PageSize: admin.MaxPageSize + 1},
	} {
		_, err := uc.Execute(ctx, input)
		var adminErr *domainerror.AdminError
		require.True(t, errors.As(err, &adminErr))
		assert.Equal(t, domainerror.ErrCodeInvalidPagination, adminErr.Code)
	}
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	payments := persistence.NewScheduledPaymentRepository(db)
	clock := &testutil.FixedClock{T: testutil.Date(2024, 3, 15)}
	createPayment := schedule.NewCreateScheduledPaymentUseCase(payments, clock)
	uc := admin.NewGetUserUseCase(profiles, payments, clock)

	marker := testutil.Date(2024, 3, 10)
	testutil.SeedProfile(t, profiles, "10000001", decimal.NewFromInt(300), decimal.NewFromInt(1000), 10, &marker)
	_, err := createPayment.Execute(ctx, schedule.CreateScheduledPaymentInput{
		UserID:      "10000001",
		Name:        "Aluguel",
		Amount:      decimal.NewFromInt(900),
		DueDay:      20,
		IsRecurring: true,
		Category:    entity.CategoryBills,
	})
	require.NoError(t, err)

	out, err := uc.Execute(ctx, admin.GetUserInput{UserID: "10000001"})
	require.NoError(t, err)
	assert.Equal(t, "300.00", out.User.Balance.StringFixed(2))
	assert.Equal(t, "1000.00", out.Credit.Available.StringFixed(2))
	assert.Equal(t, testutil.Date(2024, 4, 10), out.Credit.NextDueDate)
	require.Len(t, out.ScheduledPayments, 1)
	assert.True(t, out.ScheduledPayments[0].DueThisMonth)
	assert.Equal(t, finance.PaymentStatusPending, out.ScheduledPayments[0].Status)

	_, err = uc.Execute(ctx, admin.GetUserInput{UserID: "99999999"})
	var adminErr *domainerror.AdminError
	require.True(t, errors.As(err, &adminErr))
	assert.Equal(t, domainerror.ErrCodeAdminUserNotFound, adminErr.Code)
}

func TestDeleteUser_Cascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	goals := persistence.NewGoalRepository(db)
	uc := admin.NewDeleteUserUseCase(profiles)

	day := testutil.Date(2024, 3, 12)
	testutil.SeedProfile(t, profiles, "10000001", decimal.Zero, decimal.Zero, 10, &day)
	testutil.SeedProfile(t, profiles, "10000002", decimal.Zero, decimal.Zero, 10, &day)
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(10), entity.TransactionTypeIncome, "", entity.CategoryOther, "", day)))
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000002", decimal.NewFromInt(20), entity.TransactionTypeIncome, "", entity.CategoryOther, "", day)))
	require.NoError(t, goals.Create(ctx, entity.NewGoal("10000001", "Carro", decimal.NewFromInt(100), decimal.Zero, day)))

	require.NoError(t, uc.Execute(ctx, admin.DeleteUserInput{UserID: "10000001"}))

	_, err := profiles.FindByUserID(ctx, "10000001")
	assert.ErrorIs(t, err, domainerror.ErrProfileNotFound)
	remaining, err := transactions.FindByUser(ctx, "10000001")
	require.NoError(t, err)
	assert.Empty(t, remaining)
	ownGoals, err := goals.FindByUserID(ctx, "10000001")
	require.NoError(t, err)
	assert.Empty(t, ownGoals)

	other, err := transactions.FindByUser(ctx, "10000002")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	err = uc.Execute(ctx, admin.DeleteUserInput{UserID: "10000001"})
	assert.ErrorIs(t, err, domainerror.ErrProfileNotFound)
}

func TestGetReport(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	profiles := persistence.NewProfileRepository(db)
	transactions := persistence.NewTransactionRepository(db)
	payments := persistence.NewScheduledPaymentRepository(db)
	clock := &testutil.FixedClock{T: testutil.Date(2024, 3, 15)}
	createPayment := admin.NewCreateUserPaymentUseCase(profiles, schedule.NewCreateScheduledPaymentUseCase(payments, clock))
	uc := admin.NewGetReportUseCase(profiles, transactions, payments, clock)

	day := testutil.Date(2024, 3, 12)
	testutil.SeedProfile(t, profiles, "10000001", decimal.Zero, decimal.NewFromInt(1000), 10, &day)
	testutil.SeedProfile(t, profiles, "10000002", decimal.Zero, decimal.NewFromInt(500), 10, &day)
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(3000), entity.TransactionTypeIncome, "", entity.CategorySalary, "", day)))
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000001", decimal.NewFromInt(30), entity.TransactionTypeExpense, entity.PaymentMethodDebit, entity.CategoryFood, "", day)))
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000002", decimal.NewFromInt(20), entity.TransactionTypeExpense, entity.PaymentMethodCredit, entity.CategoryFood, "", day)))
	require.NoError(t, transactions.Record(ctx, entity.NewTransaction("10000002", decimal.NewFromInt(15), entity.TransactionTypeExpense, entity.PaymentMethodDebit, entity.CategoryTransport, "", day)))

	_, err := createPayment.Execute(ctx, schedule.CreateScheduledPaymentInput{
		UserID: "10000001", Name: "Internet", Amount: decimal.NewFromInt(100), DueDay: 20, IsRecurring: true, Category: entity.CategoryBills,
	})
	require.NoError(t, err)
	april := testutil.Date(2024, 4, 1)
	_, err = createPayment.Execute(ctx, schedule.CreateScheduledPaymentInput{
		UserID: "10000002", Name: "IPVA", Amount: decimal.NewFromInt(700), DueDay: 5, SpecificMonth: &april, Category: entity.CategoryTransport,
	})
	require.NoError(t, err)
	_, err = createPayment.Execute(ctx, schedule.CreateScheduledPaymentInput{
		UserID: "99999999", Name: "Fantasma", Amount: decimal.NewFromInt(1), DueDay: 5, IsRecurring: true, Category: entity.CategoryOther,
	})
	assert.ErrorIs(t, err, domainerror.ErrProfileNotFound)

	out, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.UserCount)
	assert.Equal(t, int64(4), out.TransactionCount)
	assert.Equal(t, "3000.00", out.TotalIncome.StringFixed(2))
	assert.Equal(t, "65.00", out.TotalExpense.StringFixed(2))
	assert.Equal(t, "20.00", out.TotalCreditUsed.StringFixed(2))
	assert.Equal(t, "1500.00", out.TotalCreditLimit.StringFixed(2))
	assert.Equal(t, "100.00", out.ObligationsDue.StringFixed(2))
	assert.Equal(t, 1, out.ObligationsDueCount)

	byCategory := map[entity.Category]string{}
	for _, c := range out.ExpenseByCategory {
		byCategory[c.Category] = c.Total.StringFixed(2)
	}
	assert.Equal(t, "50.00", byCategory[entity.CategoryFood])
	assert.Equal(t, "15.00", byCategory[entity.CategoryTransport])
}
