// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finance-tracker/assistant/internal/application/usecase/credit"
)

// CreditSweeper applies pending credit-cycle resets.
type CreditSweeper interface {
	Execute(ctx context.Context) (*credit.SweepCreditCyclesOutput, error)
}

// Cleaner drops expired in-memory state.
type Cleaner interface {
	Cleanup()
}

// Config holds the job schedules.
type Config struct {
	CreditSweepSpec string
	CleanupSpec     string
	JobTimeout      time.Duration
}

// DefaultConfig returns the default schedules.
func DefaultConfig() Config {
	return Config{
		CreditSweepSpec: "5 0 * * *",
		CleanupSpec:     "@every 5m",
		JobTimeout:      5 * time.Minute,
	}
}

// Scheduler owns a cron runner with the credit sweep and cleanup jobs.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  CreditSweeper
	cleaners []Cleaner
	config   Config
}

// New creates a scheduler. Jobs are registered but not started.
func New(sweeper CreditSweeper, cleaners []Cleaner, config Config, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		sweeper:  sweeper,
		cleaners: cleaners,
		config:   config,
	}

	if _, err := s.cron.AddFunc(config.CreditSweepSpec, s.runCreditSweep); err != nil {
		return nil, fmt.Errorf("invalid credit sweep schedule %q: %w", config.CreditSweepSpec, err)
	}
	if len(cleaners) > 0 {
		if _, err := s.cron.AddFunc(config.CleanupSpec, s.runCleanup); err != nil {
			return nil, fmt.Errorf("invalid cleanup schedule %q: %w", config.CleanupSpec, err)
		}
	}

	return s, nil
}

// Start runs one sweep immediately, then the cron jobs. It blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Scheduler started",
		"credit_sweep_spec", s.config.CreditSweepSpec,
		"cleanup_spec", s.config.CleanupSpec,
	)

	s.runCreditSweep()
	s.cron.Start()

	<-ctx.Done()

	slog.Info("Scheduler shutting down")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runCreditSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	started := time.Now()
	output, err := s.sweeper.Execute(ctx)
	if err != nil {
		slog.Error("Credit cycle sweep failed", "error", err)
		return
	}

	slog.Debug("Credit cycle sweep job done",
		"reset", output.Reset,
		"duration", time.Since(started),
	)
}

func (s *Scheduler) runCleanup() {
	for _, c := range s.cleaners {
		c.Cleanup()
	}
}
