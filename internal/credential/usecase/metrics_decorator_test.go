package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/credential/usecase"
	"github.com/allisson/cardguard/internal/credential/usecase/mocks"
	apperrors "github.com/allisson/cardguard/internal/errors"
	"github.com/allisson/cardguard/internal/testutil"
)

func TestCredentialStoreWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterCard success", func(t *testing.T) {
		next := &mocks.MockCredentialStore{}
		m := &testutil.MockBusinessMetrics{}
		store := usecase.NewCredentialStoreWithMetrics(next, m)

		next.On("RegisterCard", ctx, "C1", "").Return(true, nil).Once()
		m.ExpectOperation("credential", "register_card", "success")

		ok, err := store.RegisterCard(ctx, "C1", "")
		assert.NoError(t, err)
		assert.True(t, ok)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("RegisterCard invalid", func(t *testing.T) {
		next := &mocks.MockCredentialStore{}
		m := &testutil.MockBusinessMetrics{}
		store := usecase.NewCredentialStoreWithMetrics(next, m)

		next.On("RegisterCard", ctx, "", "").Return(false, credentialDomain.ErrEmptyCardID).Once()
		m.ExpectOperation("credential", "register_card", "invalid")

		_, err := store.RegisterCard(ctx, "", "")
		assert.ErrorIs(t, err, credentialDomain.ErrEmptyCardID)
		m.AssertExpectations(t)
	})

	t.Run("SetPin storage error", func(t *testing.T) {
		next := &mocks.MockCredentialStore{}
		m := &testutil.MockBusinessMetrics{}
		store := usecase.NewCredentialStoreWithMetrics(next, m)

		storageErr := apperrors.Storage(errors.New("disk full"), "failed to persist pin credential")
		next.On("SetPin", ctx, "1234").Return(storageErr).Once()
		m.ExpectOperation("credential", "set_pin", "storage_error")

		err := store.SetPin(ctx, "1234")
		assert.ErrorIs(t, err, storageErr)
		m.AssertExpectations(t)
	})

	t.Run("VerifyPin mismatch", func(t *testing.T) {
		next := &mocks.MockCredentialStore{}
		m := &testutil.MockBusinessMetrics{}
		store := usecase.NewCredentialStoreWithMetrics(next, m)

		next.On("VerifyPin", ctx, "9999").Return(false, nil).Once()
		m.ExpectOperation("credential", "verify_pin", "mismatch")

		ok, err := store.VerifyPin(ctx, "9999")
		assert.NoError(t, err)
		assert.False(t, ok)
		m.AssertExpectations(t)
	})

	t.Run("Remaining operations delegate", func(t *testing.T) {
		next := &mocks.MockCredentialStore{}
		m := &testutil.MockBusinessMetrics{}
		store := usecase.NewCredentialStoreWithMetrics(next, m)

		cards := []*credentialDomain.Card{{ID: "C1", Name: "Card 1"}}
		next.On("UnregisterCard", ctx, "C1").Return(true, nil).Once()
		next.On("IsRegistered", ctx, "C1").Return(false, nil).Once()
		next.On("ListCards", ctx).Return(cards, nil).Once()
		next.On("RemoveFirstCard", ctx).Return(false, nil).Once()
		next.On("DisablePin", ctx).Return(nil).Once()
		next.On("HasPin", ctx).Return(false, nil).Once()
		for _, op := range []string{
			"unregister_card", "is_registered", "list_cards", "remove_first_card", "disable_pin", "has_pin",
		} {
			m.ExpectOperation("credential", op, "success")
		}

		ok, err := store.UnregisterCard(ctx, "C1")
		assert.NoError(t, err)
		assert.True(t, ok)
		_, err = store.IsRegistered(ctx, "C1")
		assert.NoError(t, err)
		got, err := store.ListCards(ctx)
		assert.NoError(t, err)
		assert.Equal(t, cards, got)
		_, err = store.RemoveFirstCard(ctx)
		assert.NoError(t, err)
		assert.NoError(t, store.DisablePin(ctx))
		_, err = store.HasPin(ctx)
		assert.NoError(t, err)

		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}
