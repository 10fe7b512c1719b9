// Package mocks provides testify mocks for the threat use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

// MockThreatDetector is a mock implementation of ThreatDetector.
type MockThreatDetector struct {
	mock.Mock
}

func (m *MockThreatDetector) IsSuspicious(ctx context.Context, cardData string) (bool, error) {
	args := m.Called(ctx, cardData)
	return args.Bool(0), args.Error(1)
}

func (m *MockThreatDetector) Classify(ctx context.Context, cardData string) (*threatDomain.Verdict, error) {
	args := m.Called(ctx, cardData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threatDomain.Verdict), args.Error(1)
}

func (m *MockThreatDetector) AddToBlacklist(ctx context.Context, cardData, reason string) (bool, error) {
	args := m.Called(ctx, cardData, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockThreatDetector) RemoveFromBlacklist(ctx context.Context, cardData string) error {
	args := m.Called(ctx, cardData)
	return args.Error(0)
}

func (m *MockThreatDetector) AddSuspiciousPattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockThreatDetector) ClearBlacklist(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockThreatDetector) Blacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threatDomain.Blacklist), args.Error(1)
}

// MockBlacklistRepository is a mock implementation of BlacklistRepository.
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) LoadBlacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threatDomain.Blacklist), args.Error(1)
}

func (m *MockBlacklistRepository) SaveBlacklist(ctx context.Context, blacklist *threatDomain.Blacklist) error {
	args := m.Called(ctx, blacklist)
	return args.Error(0)
}
