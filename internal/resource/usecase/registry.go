package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	apperrors "github.com/allisson/cardguard/internal/errors"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

type registry struct {
	mu     sync.Mutex
	repo   LockedResourceRepository
	logger *slog.Logger
	now    func() time.Time

	loaded bool
	locked []*resourceDomain.LockedResource
}

// NewRegistry creates a Registry backed by repo.
func NewRegistry(repo LockedResourceRepository, logger *slog.Logger) Registry {
	return &registry{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *registry) Lock(ctx context.Context, resources []resourceDomain.Resource) error {
	for _, resource := range resources {
		if strings.TrimSpace(resource.Name) == "" {
			return resourceDomain.ErrBlankResourceName
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return err
	}

	lockedAt := r.now()
	added := 0
	for _, resource := range resources {
		if r.indexOf(resource.Name) >= 0 {
			continue
		}
		path := resource.Path
		if path == "" {
			path = resource.Name
		}
		r.locked = append(r.locked, &resourceDomain.LockedResource{
			Name:     resource.Name,
			Path:     path,
			LockedAt: lockedAt,
		})
		added++
	}
	if added == 0 {
		return nil
	}

	r.logger.Info("resources locked", slog.Int("added", added), slog.Int("locked", len(r.locked)))

	return r.save(ctx)
}

func (r *registry) UnlockAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return err
	}

	if len(r.locked) == 0 {
		return nil
	}

	count := len(r.locked)
	r.locked = nil
	r.logger.Info("all resources unlocked", slog.Int("unlocked", count))

	return r.save(ctx)
}

func (r *registry) Unlock(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return false, err
	}

	i := r.indexOf(name)
	if i < 0 {
		return false, nil
	}

	r.locked = slices.Delete(r.locked, i, i+1)
	r.logger.Info("resource unlocked", slog.String("name", name))

	return true, r.save(ctx)
}

func (r *registry) IsLocked(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return false, err
	}
	return r.indexOf(name) >= 0, nil
}

func (r *registry) ListLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	locked := make([]*resourceDomain.LockedResource, 0, len(r.locked))
	for _, l := range r.locked {
		c := *l
		locked = append(locked, &c)
	}
	return locked, nil
}

// load reads the locked set once, dropping repeated names. A corrupt document is
// replaced by an empty set; any other failure leaves the registry unloaded.
func (r *registry) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	stored, err := r.repo.LoadLocked(ctx)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrCorrupt) {
			return apperrors.Storage(err, "failed to load locked resources")
		}
		r.logger.Warn("locked resources document is corrupt, starting unlocked", slog.Any("error", err))
		stored = nil
	}

	// Locked sets written without timestamps count as locked from the first load.
	loadedAt := r.now()
	r.locked = nil
	for _, l := range stored {
		if r.indexOf(l.Name) >= 0 {
			continue
		}
		if l.LockedAt.IsZero() {
			l.LockedAt = loadedAt
		}
		r.locked = append(r.locked, l)
	}
	r.loaded = true
	return nil
}

func (r *registry) indexOf(name string) int {
	return slices.IndexFunc(r.locked, func(l *resourceDomain.LockedResource) bool {
		return l.Name == name
	})
}

func (r *registry) save(ctx context.Context) error {
	locked := make([]*resourceDomain.LockedResource, 0, len(r.locked))
	for _, l := range r.locked {
		c := *l
		locked = append(locked, &c)
	}
	if err := r.repo.SaveLocked(ctx, locked); err != nil {
		r.logger.Error("failed to persist locked resources", slog.Any("error", err))
		return apperrors.Storage(err, "failed to persist locked resources")
	}
	return nil
}
