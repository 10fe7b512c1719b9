// Package mocks provides testify mocks for the credential use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
)

// MockCredentialStore is a mock implementation of CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) RegisterCard(ctx context.Context, cardID, name string) (bool, error) {
	args := m.Called(ctx, cardID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialStore) UnregisterCard(ctx context.Context, cardID string) (bool, error) {
	args := m.Called(ctx, cardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialStore) IsRegistered(ctx context.Context, cardID string) (bool, error) {
	args := m.Called(ctx, cardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialStore) ListCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Card), args.Error(1)
}

func (m *MockCredentialStore) RemoveFirstCard(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialStore) SetPin(ctx context.Context, pin string) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockCredentialStore) VerifyPin(ctx context.Context, pin string) (bool, error) {
	args := m.Called(ctx, pin)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialStore) DisablePin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCredentialStore) HasPin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) LoadCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Card), args.Error(1)
}

func (m *MockCredentialRepository) SaveCards(ctx context.Context, cards []*credentialDomain.Card) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockCredentialRepository) LoadPin(ctx context.Context) (*credentialDomain.PinCredential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.PinCredential), args.Error(1)
}

func (m *MockCredentialRepository) SavePin(ctx context.Context, pin *credentialDomain.PinCredential) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

// MockPinHasher is a mock implementation of service.PinHasher.
type MockPinHasher struct {
	mock.Mock
}

func (m *MockPinHasher) Hash(pin string) (string, error) {
	args := m.Called(pin)
	return args.String(0), args.Error(1)
}

func (m *MockPinHasher) Verify(pin, hash string) bool {
	args := m.Called(pin, hash)
	return args.Bool(0)
}
