package usecase

import (
	"context"
	"time"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/metrics"
)

// credentialStoreWithMetrics decorates CredentialStore with metrics instrumentation.
type credentialStoreWithMetrics struct {
	next    CredentialStore
	metrics metrics.BusinessMetrics
}

// NewCredentialStoreWithMetrics wraps a CredentialStore with metrics recording.
func NewCredentialStoreWithMetrics(store CredentialStore, m metrics.BusinessMetrics) CredentialStore {
	return &credentialStoreWithMetrics{
		next:    store,
		metrics: m,
	}
}

func (c *credentialStoreWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, metrics.DomainCredential, operation, start, metrics.StatusOf(err))
}

func (c *credentialStoreWithMetrics) RegisterCard(ctx context.Context, cardID, name string) (bool, error) {
	start := time.Now()
	ok, err := c.next.RegisterCard(ctx, cardID, name)
	c.observe(ctx, "register_card", start, err)
	return ok, err
}

func (c *credentialStoreWithMetrics) UnregisterCard(ctx context.Context, cardID string) (bool, error) {
	start := time.Now()
	ok, err := c.next.UnregisterCard(ctx, cardID)
	c.observe(ctx, "unregister_card", start, err)
	return ok, err
}

func (c *credentialStoreWithMetrics) IsRegistered(ctx context.Context, cardID string) (bool, error) {
	start := time.Now()
	ok, err := c.next.IsRegistered(ctx, cardID)
	c.observe(ctx, "is_registered", start, err)
	return ok, err
}

func (c *credentialStoreWithMetrics) ListCards(ctx context.Context) ([]*credentialDomain.Card, error) {
	start := time.Now()
	cards, err := c.next.ListCards(ctx)
	c.observe(ctx, "list_cards", start, err)
	return cards, err
}

func (c *credentialStoreWithMetrics) RemoveFirstCard(ctx context.Context) (bool, error) {
	start := time.Now()
	ok, err := c.next.RemoveFirstCard(ctx)
	c.observe(ctx, "remove_first_card", start, err)
	return ok, err
}

func (c *credentialStoreWithMetrics) SetPin(ctx context.Context, pin string) error {
	start := time.Now()
	err := c.next.SetPin(ctx, pin)
	c.observe(ctx, "set_pin", start, err)
	return err
}

// VerifyPin labels mismatches as "mismatch" so failed PIN attempts are visible.
func (c *credentialStoreWithMetrics) VerifyPin(ctx context.Context, pin string) (bool, error) {
	start := time.Now()
	ok, err := c.next.VerifyPin(ctx, pin)

	status := metrics.StatusOf(err)
	if err == nil && !ok {
		status = "mismatch"
	}
	metrics.Observe(ctx, c.metrics, metrics.DomainCredential, "verify_pin", start, status)

	return ok, err
}

func (c *credentialStoreWithMetrics) DisablePin(ctx context.Context) error {
	start := time.Now()
	err := c.next.DisablePin(ctx)
	c.observe(ctx, "disable_pin", start, err)
	return err
}

func (c *credentialStoreWithMetrics) HasPin(ctx context.Context) (bool, error) {
	start := time.Now()
	ok, err := c.next.HasPin(ctx)
	c.observe(ctx, "has_pin", start, err)
	return ok, err
}
