// Package credit contains credit-line use cases.
package credit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// CycleGuard applies the lazy credit-cycle reset before credit state is read or charged.
type CycleGuard struct {
	profileRepo adapter.ProfileRepository
}

// NewCycleGuard creates a new CycleGuard instance.
func NewCycleGuard(profileRepo adapter.ProfileRepository) *CycleGuard {
	return &CycleGuard{
		profileRepo: profileRepo,
	}
}

// Apply moves the profile into the cycle open on today, persisting the marker and
// zeroing credit used when a due date elapsed. The profile is updated in place.
// It reports whether this call performed a reset.
func (g *CycleGuard) Apply(ctx context.Context, profile *entity.Profile, today time.Time) (bool, error) {
	marker, reset := finance.CycleResetDecision(profile.LastCreditResetAt, today, profile.CreditDueDay)
	if profile.LastCreditResetAt != nil && !reset {
		return false, nil
	}

	changed, err := g.profileRepo.ApplyCycleReset(ctx, profile.UserID, marker, reset)
	if err != nil {
		return false, fmt.Errorf("failed to apply credit cycle reset: %w", err)
	}

	if !changed {
		// Another request moved the marker first; adopt what it stored.
		fresh, err := g.profileRepo.FindByUserID(ctx, profile.UserID)
		if err != nil {
			return false, fmt.Errorf("failed to reload profile: %w", err)
		}
		*profile = *fresh
		return false, nil
	}

	finance.ApplyCycleReset(profile, today)

	if reset {
		slog.Info("credit cycle reset",
			"user_id", profile.UserID,
			"billing_cycle", marker.Format(entity.BillingCycleLayout),
		)
	}
	return reset, nil
}
