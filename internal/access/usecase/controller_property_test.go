package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	accessUseCase "github.com/allisson/cardguard/internal/access/usecase"
	credentialRepository "github.com/allisson/cardguard/internal/credential/repository"
	credentialService "github.com/allisson/cardguard/internal/credential/service"
	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
	resourceRepository "github.com/allisson/cardguard/internal/resource/repository"
	resourceUseCase "github.com/allisson/cardguard/internal/resource/usecase"
	"github.com/allisson/cardguard/internal/testutil"
	threatRepository "github.com/allisson/cardguard/internal/threat/repository"
	threatUseCase "github.com/allisson/cardguard/internal/threat/usecase"
)

// engine is the full component graph over JSON documents in one directory.
type engine struct {
	controller  accessUseCase.Controller
	credentials credentialUseCase.CredentialStore
	threats     threatUseCase.ThreatDetector
	registry    resourceUseCase.Registry
}

func newEngine(t *testing.T, dir string) *engine {
	t.Helper()

	logger := testutil.DiscardLogger()
	hasher, err := credentialService.NewPinHasher()
	require.NoError(t, err)

	credentials := credentialUseCase.NewCredentialStore(
		credentialRepository.NewFileCredentialRepository(dir), hasher, 4, logger,
	)
	threats := threatUseCase.NewThreatDetector(threatRepository.NewFileBlacklistRepository(dir), logger)
	registry := resourceUseCase.NewRegistry(resourceRepository.NewFileLockedResourceRepository(dir), logger)
	controller := accessUseCase.NewController(
		threats, credentials, registry, resourceUseCase.NewIdentityResolver(), logger,
	)

	return &engine{
		controller:  controller,
		credentials: credentials,
		threats:     threats,
		registry:    registry,
	}
}

func pinOf(s string) *string { return &s }

func lockApps(t *testing.T, e *engine, names ...string) {
	t.Helper()

	_, err := e.controller.LockApps(context.Background(), names)
	require.NoError(t, err)
}

func TestRegistrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	ok, err := e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)
	assert.False(t, ok)

	cards, err := e.credentials.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestBuiltinPatternsAlwaysSuspicious(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	for _, data := range []string{"CARD-INVALID-0001", "card-invalid-0001", "xx-Error", "prefix00000000suffix", "ffffffff", "MalFormed!"} {
		suspicious, err := e.threats.IsSuspicious(ctx, data)
		require.NoError(t, err)
		assert.True(t, suspicious, data)
	}
}

func TestBlacklistRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	_, err := e.threats.AddToBlacklist(ctx, "X", "")
	require.NoError(t, err)

	suspicious, err := e.threats.IsSuspicious(ctx, "X")
	require.NoError(t, err)
	assert.True(t, suspicious)

	require.NoError(t, e.threats.RemoveFromBlacklist(ctx, "X"))

	suspicious, err = e.threats.IsSuspicious(ctx, "X")
	require.NoError(t, err)
	assert.False(t, suspicious)
}

func TestPinGating(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	_, err := e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)

	decision, err := e.controller.AuthorizeUnlock(ctx, "C1", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Granted, decision)

	require.NoError(t, e.credentials.SetPin(ctx, "1234"))

	decision, err = e.controller.AuthorizeUnlock(ctx, "C1", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedPinRequired, decision)

	decision, err = e.controller.AuthorizeUnlock(ctx, "C1", pinOf("9999"))
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedWrongPin, decision)

	decision, err = e.controller.AuthorizeUnlock(ctx, "C1", pinOf("1234"))
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Granted, decision)
}

func TestLockUnlockStateMachine(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	_, err := e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)

	lockApps(t, e, "A", "B")

	locked, err := e.registry.ListLocked(ctx)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, "A", locked[0].Name)
	assert.Equal(t, "B", locked[1].Name)

	state, err := e.controller.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Locked, state)

	decision, err := e.controller.AuthorizeUnlock(ctx, "C1", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Granted, decision)

	locked, err = e.registry.ListLocked(ctx)
	require.NoError(t, err)
	assert.Empty(t, locked)

	require.NoError(t, e.registry.UnlockAll(ctx))

	state, err = e.controller.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Unlocked, state)
}

func TestUnregisteredCardIsDenied(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	lockApps(t, e, "A")

	decision, err := e.controller.AuthorizeUnlock(ctx, "UNKNOWN", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedUnregisteredCard, decision)

	locked, err := e.registry.IsLocked(ctx, "A")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestThreatCheckPrecedesRegistration(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	decision, err := e.controller.AuthorizeUnlock(ctx, "CORRUPT-CARD", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedSuspicious, decision)

	// A registered card that is blacklisted is still denied as suspicious.
	_, err = e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)
	_, err = e.threats.AddToBlacklist(ctx, "C1", "Stolen")
	require.NoError(t, err)

	decision, err = e.controller.AuthorizeUnlock(ctx, "C1", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedSuspicious, decision)
}

func TestVerifyAccessHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	_, err := e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)
	lockApps(t, e, "A")

	ok, err := e.controller.VerifyAccess(ctx, "C1", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	state, err := e.controller.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Locked, state)
}

func TestStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := newEngine(t, dir)
	_, err := first.credentials.RegisterCard(ctx, "C1", "Office")
	require.NoError(t, err)
	require.NoError(t, first.credentials.SetPin(ctx, "1234"))
	_, err = first.threats.AddToBlacklist(ctx, "C2", "Lost")
	require.NoError(t, err)
	require.NoError(t, first.threats.AddSuspiciousPattern(ctx, "dead"))
	lockApps(t, first, "A", "B")

	second := newEngine(t, dir)

	registered, err := second.credentials.IsRegistered(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, registered)

	suspicious, err := second.threats.IsSuspicious(ctx, "C2")
	require.NoError(t, err)
	assert.True(t, suspicious)

	suspicious, err = second.threats.IsSuspicious(ctx, "BEEFDEAD")
	require.NoError(t, err)
	assert.True(t, suspicious)

	state, err := second.controller.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Locked, state)

	decision, err := second.controller.AuthorizeUnlock(ctx, "C1", pinOf("1234"))
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Granted, decision)
}

func TestAuthorizeUnlockResource(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	_, err := e.credentials.RegisterCard(ctx, "C1", "")
	require.NoError(t, err)
	lockApps(t, e, "A", "B")

	decision, err := e.controller.AuthorizeUnlockResource(ctx, "UNKNOWN", nil, "A")
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedUnregisteredCard, decision)

	decision, err = e.controller.AuthorizeUnlockResource(ctx, "C1", nil, "A")
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Granted, decision)

	locked, err := e.registry.ListLocked(ctx)
	require.NoError(t, err)
	require.Len(t, locked, 1)
	assert.Equal(t, "B", locked[0].Name)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	e := newEngine(t, dir)

	const workers = 50

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			if _, err := e.credentials.RegisterCard(ctx, fmt.Sprintf("C%d", i%10), ""); err != nil {
				return err
			}
			if _, err := e.threats.AddToBlacklist(ctx, fmt.Sprintf("STOLEN-%d", i), ""); err != nil {
				return err
			}
			if _, err := e.controller.LockApps(ctx, []string{fmt.Sprintf("app%d", i%5)}); err != nil {
				return err
			}
			_, err := e.controller.VerifyAccess(ctx, fmt.Sprintf("C%d", i%10), nil)
			return err
		})
	}
	require.NoError(t, g.Wait())

	cards, err := e.credentials.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 10)

	reloaded := newEngine(t, dir)

	cards, err = reloaded.credentials.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 10)

	locked, err := reloaded.registry.ListLocked(ctx)
	require.NoError(t, err)
	assert.Len(t, locked, 5)

	blacklist, err := reloaded.threats.Blacklist(ctx)
	require.NoError(t, err)
	assert.Len(t, blacklist.Entries, workers)
}

func TestEmptyAndWhitespaceCardIDs(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, t.TempDir())

	lockApps(t, e, "A")

	decision, err := e.controller.Evaluate(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.DeniedSuspicious, decision)

	ok, err := e.credentials.RegisterCard(ctx, "   ", "")
	require.NoError(t, err)
	assert.True(t, ok)

	decision, err = e.controller.AuthorizeUnlock(ctx, "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, accessDomain.Granted, decision)
}
