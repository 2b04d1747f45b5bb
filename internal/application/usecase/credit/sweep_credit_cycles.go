package credit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/assistant/internal/application/adapter"
)

const sweepPageSize = 100

// SweepCreditCyclesOutput represents the output of a credit cycle sweep.
type SweepCreditCyclesOutput struct {
	Checked int
	Reset   int
}

// SweepCreditCyclesUseCase applies the credit-cycle reset to every profile.
// Running it more than once per cycle changes nothing.
type SweepCreditCyclesUseCase struct {
	profileRepo adapter.ProfileRepository
	guard       *CycleGuard
	clock       adapter.Clock
}

// NewSweepCreditCyclesUseCase creates a new SweepCreditCyclesUseCase instance.
func NewSweepCreditCyclesUseCase(
	profileRepo adapter.ProfileRepository,
	guard *CycleGuard,
	clock adapter.Clock,
) *SweepCreditCyclesUseCase {
	return &SweepCreditCyclesUseCase{
		profileRepo: profileRepo,
		guard:       guard,
		clock:       clock,
	}
}

// Execute walks all profiles page by page.
func (uc *SweepCreditCyclesUseCase) Execute(ctx context.Context) (*SweepCreditCyclesOutput, error) {
	today := uc.clock.Now()
	output := &SweepCreditCyclesOutput{}

	for offset := 0; ; offset += sweepPageSize {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		profiles, _, err := uc.profileRepo.List(ctx, offset, sweepPageSize)
		if err != nil {
			return output, fmt.Errorf("failed to list profiles: %w", err)
		}

		for _, profile := range profiles {
			reset, err := uc.guard.Apply(ctx, profile, today)
			if err != nil {
				slog.Error("credit cycle sweep failed for profile",
					"user_id", profile.UserID,
					"error", err,
				)
				continue
			}
			output.Checked++
			if reset {
				output.Reset++
			}
		}

		if len(profiles) < sweepPageSize {
			break
		}
	}

	slog.Info("credit cycle sweep finished", "checked", output.Checked, "reset", output.Reset)
	return output, nil
}
