package usecase

import (
	"context"
	"time"

	"github.com/allisson/cardguard/internal/metrics"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// registryWithMetrics decorates Registry with metrics instrumentation.
type registryWithMetrics struct {
	next    Registry
	metrics metrics.BusinessMetrics
}

// NewRegistryWithMetrics wraps a Registry with metrics recording.
func NewRegistryWithMetrics(registry Registry, m metrics.BusinessMetrics) Registry {
	return &registryWithMetrics{
		next:    registry,
		metrics: m,
	}
}

func (r *registryWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, r.metrics, metrics.DomainResource, operation, start, metrics.StatusOf(err))
}

func (r *registryWithMetrics) Lock(ctx context.Context, resources []resourceDomain.Resource) error {
	start := time.Now()
	err := r.next.Lock(ctx, resources)
	r.observe(ctx, "lock", start, err)
	return err
}

func (r *registryWithMetrics) UnlockAll(ctx context.Context) error {
	start := time.Now()
	err := r.next.UnlockAll(ctx)
	r.observe(ctx, "unlock_all", start, err)
	return err
}

func (r *registryWithMetrics) Unlock(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := r.next.Unlock(ctx, name)
	r.observe(ctx, "unlock", start, err)
	return ok, err
}

func (r *registryWithMetrics) IsLocked(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := r.next.IsLocked(ctx, name)
	r.observe(ctx, "is_locked", start, err)
	return ok, err
}

func (r *registryWithMetrics) ListLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	start := time.Now()
	locked, err := r.next.ListLocked(ctx)
	r.observe(ctx, "list_locked", start, err)
	return locked, err
}
