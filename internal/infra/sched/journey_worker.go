package sched

import (
	"context"
	"time"

	"levefit-companion/internal/infra/metrics"
	"levefit-companion/internal/usecase"

	"github.com/rs/zerolog"
)

// JourneySweepWorker periodically counts validated profiles with an unshown
// journey message and publishes the number as a gauge. Delivery itself stays
// pull-based; the sweep only feeds observability.
type JourneySweepWorker struct {
	interval  time.Duration
	journeyUC usecase.JourneyUseCase
	log       *zerolog.Logger
}

func NewJourneySweepWorker(interval time.Duration, journeyUC usecase.JourneyUseCase, logger *zerolog.Logger) *JourneySweepWorker {
	compLog := logger.With().Str("component", "JourneySweepWorker").Logger()
	return &JourneySweepWorker{
		interval:  interval,
		journeyUC: journeyUC,
		log:       &compLog,
	}
}

func (w *JourneySweepWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting journey sweep worker")
	// Run once on startup, then on every tick
	w.runSweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping journey sweep worker")
			return ctx.Err()
		case <-ticker.C:
			w.runSweep(ctx)
		}
	}
}

func (w *JourneySweepWorker) runSweep(ctx context.Context) {
	due, err := w.journeyUC.CountDueToday(ctx, time.Now())
	if err != nil {
		w.log.Error().Err(err).Msg("journey sweep failed")
		return
	}
	metrics.SetJourneyDue(due)
	if due > 0 {
		w.log.Info().Int("count", due).Msg("profiles with unshown journey message")
	}
}
