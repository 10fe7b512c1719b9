package usecase

import (
	"context"
	"time"

	"github.com/allisson/cardguard/internal/metrics"
	threatDomain "github.com/allisson/cardguard/internal/threat/domain"
)

// threatDetectorWithMetrics decorates ThreatDetector with metrics instrumentation.
type threatDetectorWithMetrics struct {
	next    ThreatDetector
	metrics metrics.BusinessMetrics
}

// NewThreatDetectorWithMetrics wraps a ThreatDetector with metrics recording.
func NewThreatDetectorWithMetrics(detector ThreatDetector, m metrics.BusinessMetrics) ThreatDetector {
	return &threatDetectorWithMetrics{
		next:    detector,
		metrics: m,
	}
}

func (t *threatDetectorWithMetrics) observe(ctx context.Context, operation string, start time.Time, status string) {
	metrics.Observe(ctx, t.metrics, metrics.DomainThreat, operation, start, status)
}

// IsSuspicious records "suspicious" for a positive classification.
func (t *threatDetectorWithMetrics) IsSuspicious(ctx context.Context, cardData string) (bool, error) {
	start := time.Now()
	suspicious, err := t.next.IsSuspicious(ctx, cardData)
	status := metrics.StatusOf(err)
	if err == nil && suspicious {
		status = "suspicious"
	}
	t.observe(ctx, "is_suspicious", start, status)
	return suspicious, err
}

// Classify records the matched rule as status.
func (t *threatDetectorWithMetrics) Classify(ctx context.Context, cardData string) (*threatDomain.Verdict, error) {
	start := time.Now()
	verdict, err := t.next.Classify(ctx, cardData)
	status := metrics.StatusOf(err)
	if err == nil && verdict.Suspicious {
		status = string(verdict.Rule)
	}
	t.observe(ctx, "classify", start, status)
	return verdict, err
}

func (t *threatDetectorWithMetrics) AddToBlacklist(ctx context.Context, cardData, reason string) (bool, error) {
	start := time.Now()
	added, err := t.next.AddToBlacklist(ctx, cardData, reason)
	t.observe(ctx, "add_to_blacklist", start, metrics.StatusOf(err))
	return added, err
}

func (t *threatDetectorWithMetrics) RemoveFromBlacklist(ctx context.Context, cardData string) error {
	start := time.Now()
	err := t.next.RemoveFromBlacklist(ctx, cardData)
	t.observe(ctx, "remove_from_blacklist", start, metrics.StatusOf(err))
	return err
}

func (t *threatDetectorWithMetrics) AddSuspiciousPattern(ctx context.Context, pattern string) error {
	start := time.Now()
	err := t.next.AddSuspiciousPattern(ctx, pattern)
	t.observe(ctx, "add_suspicious_pattern", start, metrics.StatusOf(err))
	return err
}

func (t *threatDetectorWithMetrics) ClearBlacklist(ctx context.Context) error {
	start := time.Now()
	err := t.next.ClearBlacklist(ctx)
	t.observe(ctx, "clear_blacklist", start, metrics.StatusOf(err))
	return err
}

func (t *threatDetectorWithMetrics) Blacklist(ctx context.Context) (*threatDomain.Blacklist, error) {
	start := time.Now()
	blacklist, err := t.next.Blacklist(ctx)
	t.observe(ctx, "blacklist", start, metrics.StatusOf(err))
	return blacklist, err
}
