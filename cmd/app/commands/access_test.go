package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	accessMocks "github.com/allisson/cardguard/internal/access/usecase/mocks"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
	resourceMocks "github.com/allisson/cardguard/internal/resource/usecase/mocks"
	"github.com/allisson/cardguard/internal/testutil"
)

func TestRunLockApps(t *testing.T) {
	ctx := context.Background()
	logger := testutil.DiscardLogger()

	t.Run("text-output", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("LockApps", ctx, []string{"mail", "bank"}).Return([]resourceDomain.Resource{
			{Name: "mail", Path: "/usr/bin/mail"},
			{Name: "bank", Path: "/opt/bank"},
		}, nil)

		var out bytes.Buffer
		require.NoError(t, RunLockApps(ctx, controller, logger, &out, []string{"mail", "bank"}, "text"))
		assert.Equal(t, "Locked: mail, bank\n", out.String())
	})

	t.Run("json-output", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("LockApps", ctx, []string{"mail"}).Return([]resourceDomain.Resource{{Name: "mail", Path: "mail"}}, nil)

		var out bytes.Buffer
		require.NoError(t, RunLockApps(ctx, controller, logger, &out, []string{"mail"}, "json"))
		assert.JSONEq(t, `{"locked":["mail"],"skipped":[]}`, out.String())
	})

	t.Run("unknown-names-are-skipped", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("LockApps", ctx, []string{"mail", "games", "games"}).
			Return([]resourceDomain.Resource{{Name: "mail", Path: "/usr/bin/mail"}}, nil)

		var out bytes.Buffer
		require.NoError(t, RunLockApps(ctx, controller, logger, &out, []string{"mail", "games", "games"}, "text"))
		assert.Equal(t, "Locked: mail\nSkipped: games\n", out.String())
	})

	t.Run("nothing-resolved-json", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("LockApps", ctx, []string{"games"}).Return([]resourceDomain.Resource{}, nil)

		var out bytes.Buffer
		require.NoError(t, RunLockApps(ctx, controller, logger, &out, []string{"games"}, "json"))
		assert.JSONEq(t, `{"locked":[],"skipped":["games"]}`, out.String())
	})

	t.Run("nothing-resolved-text", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("LockApps", ctx, []string{"games"}).Return([]resourceDomain.Resource{}, nil)

		var out bytes.Buffer
		require.NoError(t, RunLockApps(ctx, controller, logger, &out, []string{"games"}, "text"))
		assert.Equal(t, "No resources locked\nSkipped: games\n", out.String())
	})

	t.Run("no-names", func(t *testing.T) {
		controller := &accessMocks.MockController{}

		err := RunLockApps(ctx, controller, logger, &bytes.Buffer{}, nil, "text")
		require.Error(t, err)
		controller.AssertNotCalled(t, "LockApps", mock.Anything, mock.Anything)
	})
}

func TestRunListLocked(t *testing.T) {
	ctx := context.Background()
	lockedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("locked", func(t *testing.T) {
		registry := &resourceMocks.MockRegistry{}
		registry.On("ListLocked", ctx).Return([]*resourceDomain.LockedResource{
			{Name: "mail", Path: "/usr/bin/mail", LockedAt: lockedAt},
		}, nil)

		var out bytes.Buffer
		require.NoError(t, RunListLocked(ctx, registry, &out, "text"))
		assert.Equal(t, "State: locked\n  mail\t/usr/bin/mail\t2024-03-01T12:00:00Z\n", out.String())
	})

	t.Run("unlocked-json", func(t *testing.T) {
		registry := &resourceMocks.MockRegistry{}
		registry.On("ListLocked", ctx).Return([]*resourceDomain.LockedResource{}, nil)

		var out bytes.Buffer
		require.NoError(t, RunListLocked(ctx, registry, &out, "json"))
		assert.JSONEq(t, `{"state":"unlocked","resources":[]}`, out.String())
	})
}

func TestRunUnlock(t *testing.T) {
	ctx := context.Background()
	logger := testutil.DiscardLogger()
	pin := "1234"

	t.Run("granted", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("AuthorizeUnlock", ctx, "04A1B2C3", &pin).Return(accessDomain.Granted, nil)

		var out bytes.Buffer
		require.NoError(t, RunUnlock(ctx, controller, logger, &out, "04A1B2C3", &pin, "", "text"))
		assert.Equal(t, "Access granted\n", out.String())
	})

	t.Run("single-resource", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("AuthorizeUnlockResource", ctx, "04A1B2C3", &pin, "mail").Return(accessDomain.Granted, nil)

		var out bytes.Buffer
		require.NoError(t, RunUnlock(ctx, controller, logger, &out, "04A1B2C3", &pin, "mail", "json"))
		assert.JSONEq(t, `{"decision":"granted","granted":true}`, out.String())
		controller.AssertNotCalled(t, "AuthorizeUnlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("denied-without-pin", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("AuthorizeUnlock", ctx, "04A1B2C3", (*string)(nil)).Return(accessDomain.DeniedPinRequired, nil)

		var out bytes.Buffer
		err := RunUnlock(ctx, controller, logger, &out, "04A1B2C3", nil, "", "text")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, "Access denied: denied_pin_required\n", out.String())
	})

	t.Run("storage-error", func(t *testing.T) {
		controller := &accessMocks.MockController{}
		controller.On("AuthorizeUnlock", ctx, "04A1B2C3", &pin).Return(accessDomain.Granted, errors.New("disk full"))

		var out bytes.Buffer
		err := RunUnlock(ctx, controller, logger, &out, "04A1B2C3", &pin, "", "text")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, out.String())
	})
}
