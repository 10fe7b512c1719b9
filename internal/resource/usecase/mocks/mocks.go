// Package mocks provides testify mocks for the resource use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// MockRegistry is a mock implementation of Registry.
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Lock(ctx context.Context, resources []resourceDomain.Resource) error {
	args := m.Called(ctx, resources)
	return args.Error(0)
}

func (m *MockRegistry) UnlockAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRegistry) Unlock(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistry) IsLocked(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistry) ListLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resourceDomain.LockedResource), args.Error(1)
}

// MockLockedResourceRepository is a mock implementation of LockedResourceRepository.
type MockLockedResourceRepository struct {
	mock.Mock
}

func (m *MockLockedResourceRepository) LoadLocked(ctx context.Context) ([]*resourceDomain.LockedResource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resourceDomain.LockedResource), args.Error(1)
}

func (m *MockLockedResourceRepository) SaveLocked(ctx context.Context, locked []*resourceDomain.LockedResource) error {
	args := m.Called(ctx, locked)
	return args.Error(0)
}

// MockResolver is a mock implementation of Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, names []string) ([]resourceDomain.Resource, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]resourceDomain.Resource), args.Error(1)
}
