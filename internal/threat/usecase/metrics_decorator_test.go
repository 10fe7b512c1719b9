package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/cardguard/internal/errors"
	"github.com/allisson/cardguard/internal/testutil"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
	"github.com/allisson/cardguard/internal/threat/usecase"
	"github.com/allisson/cardguard/internal/threat/usecase/mocks"
)

func TestThreatDetectorWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("IsSuspicious records suspicious", func(t *testing.T) {
		next := &mocks.MockThreatDetector{}
		m := &testutil.MockBusinessMetrics{}
		detector := usecase.NewThreatDetectorWithMetrics(next, m)

		next.On("IsSuspicious", ctx, "ERROR").Return(true, nil).Once()
		m.ExpectOperation("threat", "is_suspicious", "suspicious")

		suspicious, err := detector.IsSuspicious(ctx, "ERROR")
		assert.NoError(t, err)
		assert.True(t, suspicious)
		m.AssertExpectations(t)
	})

	t.Run("IsSuspicious records success for clean data", func(t *testing.T) {
		next := &mocks.MockThreatDetector{}
		m := &testutil.MockBusinessMetrics{}
		detector := usecase.NewThreatDetectorWithMetrics(next, m)

		next.On("IsSuspicious", ctx, "12345678").Return(false, nil).Once()
		m.ExpectOperation("threat", "is_suspicious", "success")

		_, err := detector.IsSuspicious(ctx, "12345678")
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Classify records rule", func(t *testing.T) {
		next := &mocks.MockThreatDetector{}
		m := &testutil.MockBusinessMetrics{}
		detector := usecase.NewThreatDetectorWithMetrics(next, m)

		verdict := &threatDomain.Verdict{Suspicious: true, Rule: threatDomain.RuleBlacklist, Match: "Lost"}
		next.On("Classify", ctx, "C1").Return(verdict, nil).Once()
		m.ExpectOperation("threat", "classify", "blacklist")

		got, err := detector.Classify(ctx, "C1")
		assert.NoError(t, err)
		assert.Equal(t, verdict, got)
		m.AssertExpectations(t)
	})

	t.Run("AddToBlacklist storage error", func(t *testing.T) {
		next := &mocks.MockThreatDetector{}
		m := &testutil.MockBusinessMetrics{}
		detector := usecase.NewThreatDetectorWithMetrics(next, m)

		storageErr := apperrors.Storage(errors.New("disk full"), "failed to persist blacklist")
		next.On("AddToBlacklist", ctx, "C1", "").Return(true, storageErr).Once()
		m.ExpectOperation("threat", "add_to_blacklist", "storage_error")

		_, err := detector.AddToBlacklist(ctx, "C1", "")
		assert.ErrorIs(t, err, storageErr)
		m.AssertExpectations(t)
	})

	t.Run("AddSuspiciousPattern invalid", func(t *testing.T) {
		next := &mocks.MockThreatDetector{}
		m := &testutil.MockBusinessMetrics{}
		detector := usecase.NewThreatDetectorWithMetrics(next, m)

		next.On("AddSuspiciousPattern", ctx, "").Return(threatDomain.ErrBlankPattern).Once()
		m.ExpectOperation("threat", "add_suspicious_pattern", "invalid")

		assert.Error(t, detector.AddSuspiciousPattern(ctx, ""))
		m.AssertExpectations(t)
	})

	t.Run("RemoveFromBlacklist ClearBlacklist and Blacklist", func(t *testing.T) {
		next := &mocks.MockThreatDetector{}
		m := &testutil.MockBusinessMetrics{}
		detector := usecase.NewThreatDetectorWithMetrics(next, m)

		next.On("RemoveFromBlacklist", ctx, "C1").Return(nil).Once()
		next.On("ClearBlacklist", ctx).Return(nil).Once()
		next.On("Blacklist", ctx).Return(&threatDomain.Blacklist{}, nil).Once()
		m.ExpectOperation("threat", "remove_from_blacklist", "success")
		m.ExpectOperation("threat", "clear_blacklist", "success")
		m.ExpectOperation("threat", "blacklist", "success")

		assert.NoError(t, detector.RemoveFromBlacklist(ctx, "C1"))
		assert.NoError(t, detector.ClearBlacklist(ctx))
		_, err := detector.Blacklist(ctx)
		assert.NoError(t, err)

		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}
