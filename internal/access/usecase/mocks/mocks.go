// Package mocks provides testify mocks for the access use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// MockController is a mock implementation of Controller.
type MockController struct {
	mock.Mock
}

func (m *MockController) LockApps(ctx context.Context, names []string) ([]resourceDomain.Resource, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]resourceDomain.Resource), args.Error(1)
}

func (m *MockController) AuthorizeUnlock(
	ctx context.Context,
	cardID string,
	pin *string,
) (accessDomain.Decision, error) {
	args := m.Called(ctx, cardID, pin)
	return args.Get(0).(accessDomain.Decision), args.Error(1)
}

func (m *MockController) AuthorizeUnlockResource(
	ctx context.Context,
	cardID string,
	pin *string,
	name string,
) (accessDomain.Decision, error) {
	args := m.Called(ctx, cardID, pin, name)
	return args.Get(0).(accessDomain.Decision), args.Error(1)
}

func (m *MockController) VerifyAccess(ctx context.Context, cardID string, pin *string) (bool, error) {
	args := m.Called(ctx, cardID, pin)
	return args.Bool(0), args.Error(1)
}

func (m *MockController) Evaluate(ctx context.Context, cardID string, pin *string) (accessDomain.Decision, error) {
	args := m.Called(ctx, cardID, pin)
	return args.Get(0).(accessDomain.Decision), args.Error(1)
}

func (m *MockController) State(ctx context.Context) (accessDomain.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(accessDomain.State), args.Error(1)
}
