// Package usecase implements the access controller: the authorization decision procedure
// and the lock state machine over the locked resource registry.
package usecase

import (
	"context"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// Controller decides whether a presented card (and PIN) may unlock protected resources.
//
// The checks run in a fixed order: suspicious card data, unregistered card, missing PIN,
// wrong PIN. Only a Granted decision from an Authorize method changes state. Errors are
// reserved for storage and system faults.
type Controller interface {
	// LockApps resolves names and adds them to the locked set. No authorization is required.
	// It returns the resources that were resolved and locked; names the resolver skips are absent.
	LockApps(ctx context.Context, names []string) ([]resourceDomain.Resource, error)

	// AuthorizeUnlock evaluates the card and PIN and, when granted, unlocks everything.
	// A nil pin means no PIN was presented.
	AuthorizeUnlock(ctx context.Context, cardID string, pin *string) (accessDomain.Decision, error)

	// AuthorizeUnlockResource is AuthorizeUnlock for a single resource name.
	AuthorizeUnlockResource(ctx context.Context, cardID string, pin *string, name string) (accessDomain.Decision, error)

	// VerifyAccess reports whether the card and PIN would be granted, without side effects.
	VerifyAccess(ctx context.Context, cardID string, pin *string) (bool, error)

	// Evaluate returns the decision for the card and PIN without side effects.
	Evaluate(ctx context.Context, cardID string, pin *string) (accessDomain.Decision, error)

	// State reports Locked when at least one resource is locked.
	State(ctx context.Context) (accessDomain.State, error)
}
