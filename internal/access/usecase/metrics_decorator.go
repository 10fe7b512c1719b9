package usecase

import (
	"context"
	"time"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	"github.com/allisson/cardguard/internal/metrics"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// controllerWithMetrics decorates Controller with metrics instrumentation.
// Authorization outcomes are recorded with the decision name as status.
type controllerWithMetrics struct {
	next    Controller
	metrics metrics.BusinessMetrics
}

// NewControllerWithMetrics wraps a Controller with metrics recording.
func NewControllerWithMetrics(controller Controller, m metrics.BusinessMetrics) Controller {
	return &controllerWithMetrics{
		next:    controller,
		metrics: m,
	}
}

func (c *controllerWithMetrics) observe(ctx context.Context, operation string, start time.Time, status string) {
	metrics.Observe(ctx, c.metrics, metrics.DomainAccess, operation, start, status)
}

func decisionStatus(decision accessDomain.Decision, err error) string {
	if err != nil {
		return metrics.StatusOf(err)
	}
	return decision.String()
}

func (c *controllerWithMetrics) LockApps(ctx context.Context, names []string) ([]resourceDomain.Resource, error) {
	start := time.Now()
	resources, err := c.next.LockApps(ctx, names)
	c.observe(ctx, "lock_apps", start, metrics.StatusOf(err))
	return resources, err
}

func (c *controllerWithMetrics) AuthorizeUnlock(
	ctx context.Context,
	cardID string,
	pin *string,
) (accessDomain.Decision, error) {
	start := time.Now()
	decision, err := c.next.AuthorizeUnlock(ctx, cardID, pin)
	c.observe(ctx, "authorize_unlock", start, decisionStatus(decision, err))
	return decision, err
}

func (c *controllerWithMetrics) AuthorizeUnlockResource(
	ctx context.Context,
	cardID string,
	pin *string,
	name string,
) (accessDomain.Decision, error) {
	start := time.Now()
	decision, err := c.next.AuthorizeUnlockResource(ctx, cardID, pin, name)
	c.observe(ctx, "authorize_unlock_resource", start, decisionStatus(decision, err))
	return decision, err
}

func (c *controllerWithMetrics) VerifyAccess(ctx context.Context, cardID string, pin *string) (bool, error) {
	start := time.Now()
	ok, err := c.next.VerifyAccess(ctx, cardID, pin)
	status := metrics.StatusOf(err)
	if err == nil && !ok {
		status = "denied"
	}
	c.observe(ctx, "verify_access", start, status)
	return ok, err
}

func (c *controllerWithMetrics) Evaluate(
	ctx context.Context,
	cardID string,
	pin *string,
) (accessDomain.Decision, error) {
	start := time.Now()
	decision, err := c.next.Evaluate(ctx, cardID, pin)
	c.observe(ctx, "evaluate", start, decisionStatus(decision, err))
	return decision, err
}

func (c *controllerWithMetrics) State(ctx context.Context) (accessDomain.State, error) {
	start := time.Now()
	state, err := c.next.State(ctx)
	c.observe(ctx, "state", start, metrics.StatusOf(err))
	return state, err
}
