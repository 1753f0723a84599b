package auth

import (
	"context"
	"log"
	"time"

	"epochzone/internal/repository"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically deactivates API keys whose expiry has passed, so the
// key listing reflects reality without waiting for the next validation.
type Sweeper struct {
	repo repository.APIKeyRepository
	cron *cron.Cron
}

// NewSweeper creates a sweeper running on the given cron schedule
// (standard 5-field format, e.g. "0 * * * *" for hourly).
func NewSweeper(repo repository.APIKeyRepository, schedule string) (*Sweeper, error) {
	// Create a new cron scheduler with seconds disabled
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	s := &Sweeper{repo: repo, cron: c}

	if _, err := c.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop stops the scheduler; running sweeps complete.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

func (s *Sweeper) sweep() {
	n, err := s.repo.DeactivateExpired(context.Background(), time.Now())
	if err != nil {
		log.Printf("API key sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Deactivated %d expired API key(s)", n)
	}
}
