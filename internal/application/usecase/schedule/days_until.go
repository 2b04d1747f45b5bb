package schedule

import (
	"time"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
	"github.com/finance-tracker/assistant/internal/domain/finance"
)

// DaysUntilOutput represents the next occurrence of a day of month.
type DaysUntilOutput struct {
	Day       int
	NextDate  time.Time
	DaysUntil int
}

// DaysUntilUseCase counts the days until the next occurrence of a day of month.
type DaysUntilUseCase struct {
	clock adapter.Clock
}

// NewDaysUntilUseCase creates a new DaysUntilUseCase instance.
func NewDaysUntilUseCase(clock adapter.Clock) *DaysUntilUseCase {
	return &DaysUntilUseCase{
		clock: clock,
	}
}

// Execute returns 0 when day is today and rolls to next month once it has passed.
func (uc *DaysUntilUseCase) Execute(day int) (*DaysUntilOutput, error) {
	if day < 1 || day > 31 {
		return nil, domainerror.NewScheduleError(
			domainerror.ErrCodeInvalidPaymentDueDay,
			"day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	today := uc.clock.Now()
	return &DaysUntilOutput{
		Day:       day,
		NextDate:  finance.NextOccurrence(today, day),
		DaysUntil: finance.DaysUntil(today, day),
	}, nil
}
