package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

func TestCheckCreditAvailable(t *testing.T) {
	limit := dec("5000")

	t.Run("first charge fits", func(t *testing.T) {
		assert.NoError(t, CheckCreditAvailable(limit, decimal.Zero, dec("300")))
	})

	t.Run("charge exceeding the remaining credit is rejected", func(t *testing.T) {
		err := CheckCreditAvailable(limit, dec("300"), dec("4800"))
		assert.ErrorIs(t, err, domainerror.ErrInsufficientCredit)
	})

	t.Run("charge using exactly the remaining credit is accepted", func(t *testing.T) {
		assert.NoError(t, CheckCreditAvailable(limit, dec("300"), dec("4700")))
	})
}

func TestCreditConservation(t *testing.T) {
	limit := dec("1000")
	used := decimal.Zero
	accepted := decimal.Zero

	for _, amount := range []string{"100", "250.50", "700", "649.50", "0.01"} {
		a := dec(amount)
		if err := CheckCreditAvailable(limit, used, a); err != nil {
			continue
		}
		used = used.Add(a)
		accepted = accepted.Add(a)
		assert.True(t, used.LessThanOrEqual(limit), "used %s exceeds limit", used)
	}

	assert.True(t, used.Equal(accepted))
	assert.True(t, used.Equal(dec("1000")), "used = %s", used)
}

func TestApplyCycleReset(t *testing.T) {
	newProfile := func(lastReset *time.Time, used string) *entity.Profile {
		p := entity.NewProfile("12345678", "Ana", decimal.Zero, dec("5000"), 5)
		p.CreditUsed = dec(used)
		p.LastCreditResetAt = lastReset
		return p
	}

	t.Run("resets once after the due date passes", func(t *testing.T) {
		previous := date(2026, 9, 5)
		p := newProfile(&previous, "300")
		today := date(2026, 10, 10)

		changed, reset := ApplyCycleReset(p, today)
		require.True(t, changed)
		require.True(t, reset)
		assert.True(t, p.CreditUsed.IsZero())
		assert.Equal(t, date(2026, 10, 5), *p.LastCreditResetAt)

		p.CreditUsed = dec("120")

		changed, reset = ApplyCycleReset(p, today)
		assert.False(t, changed)
		assert.False(t, reset)
		assert.True(t, p.CreditUsed.Equal(dec("120")), "second check must not reset again")

		changed, _ = ApplyCycleReset(p, date(2026, 11, 4))
		assert.False(t, changed)
		assert.True(t, p.CreditUsed.Equal(dec("120")))
	})

	t.Run("due day itself opens the new cycle", func(t *testing.T) {
		previous := date(2026, 9, 5)
		p := newProfile(&previous, "300")

		_, reset := ApplyCycleReset(p, date(2026, 10, 5))

		assert.True(t, reset)
		assert.True(t, p.CreditUsed.IsZero())
	})

	t.Run("several skipped cycles reset only once", func(t *testing.T) {
		previous := date(2026, 6, 5)
		p := newProfile(&previous, "800")

		_, reset := ApplyCycleReset(p, date(2026, 10, 10))
		assert.True(t, reset)

		_, reset = ApplyCycleReset(p, date(2026, 10, 10))
		assert.False(t, reset)
	})

	t.Run("missing marker is initialized without reset", func(t *testing.T) {
		p := newProfile(nil, "450")

		changed, reset := ApplyCycleReset(p, date(2026, 10, 10))

		assert.True(t, changed)
		assert.False(t, reset)
		assert.True(t, p.CreditUsed.Equal(dec("450")))
		assert.Equal(t, "2026-10-05", p.BillingCycle())
	})
}

func TestCreditStatusFor(t *testing.T) {
	marker := date(2026, 10, 5)
	p := entity.NewProfile("12345678", "Ana", decimal.Zero, dec("5000"), 5)
	p.CreditUsed = dec("1250")
	p.LastCreditResetAt = &marker

	status := CreditStatusFor(p, date(2026, 10, 10))

	assert.True(t, status.Available.Equal(dec("3750")))
	assert.True(t, status.Utilization.Equal(dec("0.25")), "utilization = %s", status.Utilization)
	assert.Equal(t, date(2026, 11, 5), status.NextDueDate)
	assert.Equal(t, 26, status.DaysUntilDue)
	assert.Equal(t, "2026-10-05", status.BillingCycle)
}

func TestCreditStatusWithoutLimit(t *testing.T) {
	p := entity.NewProfile("12345678", "Ana", decimal.Zero, decimal.Zero, 10)

	status := CreditStatusFor(p, date(2026, 10, 10))

	assert.True(t, status.Utilization.IsZero())
	assert.True(t, status.Available.IsZero())
	assert.Equal(t, 0, status.DaysUntilDue)
}
