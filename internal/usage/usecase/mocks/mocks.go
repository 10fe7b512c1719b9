// Package mocks provides testify mocks for the usage use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	usageDomain "github.com/allisson/cardguard/internal/usage/domain"
)

// MockCounter is a mock implementation of Counter.
type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) Increment(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCounter) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCounter) Statistics(ctx context.Context) (*usageDomain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usageDomain.Stats), args.Error(1)
}

func (m *MockCounter) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStatsRepository is a mock implementation of StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) LoadStats(ctx context.Context) (*usageDomain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usageDomain.Stats), args.Error(1)
}

func (m *MockStatsRepository) SaveStats(ctx context.Context, stats *usageDomain.Stats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}
