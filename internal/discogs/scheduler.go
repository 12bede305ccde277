package discogs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler runs an initial sync and then repeats on a fixed interval until
// the context is cancelled.
type Scheduler struct {
	Service  *SyncService
	Interval time.Duration
}

// Run blocks; callers start it on its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().Dur("interval", s.Interval).Msg("Scheduler started")

	s.runOnce(ctx)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	log.Info().Msg("Starting scheduled sync")
	stats, err := s.Service.SyncAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error during scheduled sync")
		return
	}
	log.Info().Int("added", stats.Added).Int("updated", stats.Updated).Int("removed", stats.Removed).Int("total", stats.Total).Msg("Scheduled sync completed")
}
