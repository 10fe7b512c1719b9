// Package usecase implements the locked resource registry and name resolution.
package usecase

import (
	"context"

	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// LockedResourceRepository persists the locked set.
type LockedResourceRepository interface {
	// LoadLocked returns the locked set in insertion order, empty when none is stored.
	// A document that cannot be decoded yields an error wrapping ErrCorrupt.
	LoadLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error)

	// SaveLocked replaces the stored locked set.
	SaveLocked(ctx context.Context, locked []*resourceDomain.LockedResource) error
}

// Registry owns the set of locked resources, keyed by name.
//
// Mutations are written through; on a failed write the in-memory change is kept and the
// returned error wraps ErrStorage.
type Registry interface {
	// Lock adds resources to the set. Names already locked keep their original entry.
	Lock(ctx context.Context, resources []resourceDomain.Resource) error

	// UnlockAll empties the set. Nothing is written when it is already empty.
	UnlockAll(ctx context.Context) error

	// Unlock removes one name. Returns false when it was not locked.
	Unlock(ctx context.Context, name string) (bool, error)

	// IsLocked reports whether name is in the set.
	IsLocked(ctx context.Context, name string) (bool, error)

	// ListLocked returns copies of the locked entries in insertion order.
	ListLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error)
}

// Resolver maps requested names to resource descriptors.
type Resolver interface {
	// Resolve returns descriptors for the names it knows, in request order.
	Resolve(ctx context.Context, names []string) ([]resourceDomain.Resource, error)
}
