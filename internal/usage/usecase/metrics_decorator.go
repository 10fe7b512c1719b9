package usecase

import (
	"context"
	"time"

	"github.com/allisson/cardguard/internal/metrics"
	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

// counterWithMetrics decorates Counter with metrics instrumentation.
type counterWithMetrics struct {
	next    Counter
	metrics metrics.BusinessMetrics
}

// NewCounterWithMetrics wraps a Counter with metrics recording.
func NewCounterWithMetrics(counter Counter, m metrics.BusinessMetrics) Counter {
	return &counterWithMetrics{
		next:    counter,
		metrics: m,
	}
}

func (c *counterWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, metrics.DomainUsage, operation, start, metrics.StatusOf(err))
}

func (c *counterWithMetrics) Increment(ctx context.Context) error {
	start := time.Now()
	err := c.next.Increment(ctx)
	c.observe(ctx, "increment", start, err)
	return err
}

func (c *counterWithMetrics) Count(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := c.next.Count(ctx)
	c.observe(ctx, "count", start, err)
	return count, err
}

func (c *counterWithMetrics) Statistics(ctx context.Context) (*usageDomain.Stats, error) {
	start := time.Now()
	stats, err := c.next.Statistics(ctx)
	c.observe(ctx, "statistics", start, err)
	return stats, err
}

func (c *counterWithMetrics) Reset(ctx context.Context) error {
	start := time.Now()
	err := c.next.Reset(ctx)
	c.observe(ctx, "reset", start, err)
	return err
}
