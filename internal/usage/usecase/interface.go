// Package usecase implements the launch counter.
package usecase

import (
	"context"

	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

// StatsRepository persists launch statistics. LoadStats returns nil, nil when nothing has
// been stored yet.
type StatsRepository interface {
	LoadStats(ctx context.Context) (*usageDomain.Stats, error)
	SaveStats(ctx context.Context, stats *usageDomain.Stats) error
}

// Counter counts engine launches.
type Counter interface {
	// Increment records one launch.
	Increment(ctx context.Context) error

	// Count returns the total number of launches.
	Count(ctx context.Context) (int, error)

	// Statistics returns a copy of the current statistics.
	Statistics(ctx context.Context) (*usageDomain.Stats, error)

	// Reset discards every launch and restarts tracking now.
	Reset(ctx context.Context) error
}
