package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/allisson/cardguard/internal/errors"
	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

type counter struct {
	mu     sync.Mutex
	repo   StatsRepository
	logger *slog.Logger
	now    func() time.Time

	stats *usageDomain.Stats
}

// NewCounter creates a Counter backed by repo.
func NewCounter(repo StatsRepository, logger *slog.Logger) Counter {
	return &counter{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (c *counter) Increment(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return err
	}

	c.stats.Record(c.now())
	c.logger.Debug("launch recorded", slog.Int("total_launches", c.stats.TotalLaunches))

	return c.save(ctx)
}

func (c *counter) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return 0, err
	}
	return c.stats.TotalLaunches, nil
}

func (c *counter) Statistics(ctx context.Context) (*usageDomain.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.stats.Clone(), nil
}

func (c *counter) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = usageDomain.NewStats(c.now())
	c.logger.Info("usage statistics reset")

	return c.save(ctx)
}

// load reads the statistics once. Missing or corrupt statistics start fresh at now.
func (c *counter) load(ctx context.Context) error {
	if c.stats != nil {
		return nil
	}

	stats, err := c.repo.LoadStats(ctx)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrCorrupt) {
			return apperrors.Storage(err, "failed to load usage statistics")
		}
		c.logger.Warn("usage statistics are corrupt, starting fresh", slog.Any("error", err))
		stats = nil
	}
	if stats == nil {
		stats = usageDomain.NewStats(c.now())
	}
	if stats.FirstLaunch.IsZero() {
		stats.FirstLaunch = c.now()
	}
	if stats.History == nil {
		stats.History = []time.Time{}
	}

	c.stats = stats
	return nil
}

func (c *counter) save(ctx context.Context) error {
	if err := c.repo.SaveStats(ctx, c.stats.Clone()); err != nil {
		c.logger.Error("failed to persist usage statistics", slog.Any("error", err))
		return apperrors.Storage(err, "failed to persist usage statistics")
	}
	return nil
}
