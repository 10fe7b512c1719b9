package usecase

import (
	"context"
	"log/slog"

	accessDomain "github.com/allisson/cardguard/internal/access/domain"
	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
	resourceUseCase "github.com/allisson/cardguard/internal/resource/usecase"
	threatUseCase "github.com/allisson/cardguard/internal/threat/usecase"
)

type controller struct {
	threats     threatUseCase.ThreatDetector
	credentials credentialUseCase.CredentialStore
	registry    resourceUseCase.Registry
	resolver    resourceUseCase.Resolver
	logger      *slog.Logger
}

// NewController creates a Controller over the three stateful components.
func NewController(
	threats threatUseCase.ThreatDetector,
	credentials credentialUseCase.CredentialStore,
	registry resourceUseCase.Registry,
	resolver resourceUseCase.Resolver,
	logger *slog.Logger,
) Controller {
	return &controller{
		threats:     threats,
		credentials: credentials,
		registry:    registry,
		resolver:    resolver,
		logger:      logger,
	}
}

func (c *controller) LockApps(ctx context.Context, names []string) ([]resourceDomain.Resource, error) {
	resources, err := c.resolver.Resolve(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(resources) < len(names) {
		c.logger.Warn("some resources could not be resolved",
			slog.Int("requested", len(names)),
			slog.Int("resolved", len(resources)),
		)
	}
	if len(resources) == 0 {
		return resources, nil
	}
	if err := c.registry.Lock(ctx, resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (c *controller) AuthorizeUnlock(
	ctx context.Context,
	cardID string,
	pin *string,
) (accessDomain.Decision, error) {
	decision, err := c.Evaluate(ctx, cardID, pin)
	if err != nil {
		return decision, err
	}
	c.logDecision("unlock all", cardID, decision)
	if !decision.IsGranted() {
		return decision, nil
	}
	return decision, c.registry.UnlockAll(ctx)
}

func (c *controller) AuthorizeUnlockResource(
	ctx context.Context,
	cardID string,
	pin *string,
	name string,
) (accessDomain.Decision, error) {
	decision, err := c.Evaluate(ctx, cardID, pin)
	if err != nil {
		return decision, err
	}
	c.logDecision("unlock resource", cardID, decision, slog.String("resource", name))
	if !decision.IsGranted() {
		return decision, nil
	}
	_, err = c.registry.Unlock(ctx, name)
	return decision, err
}

func (c *controller) VerifyAccess(ctx context.Context, cardID string, pin *string) (bool, error) {
	decision, err := c.Evaluate(ctx, cardID, pin)
	if err != nil {
		return false, err
	}
	return decision.IsGranted(), nil
}

// Evaluate never returns Granted together with an error; on error the decision is a denial.
func (c *controller) Evaluate(ctx context.Context, cardID string, pin *string) (accessDomain.Decision, error) {
	suspicious, err := c.threats.IsSuspicious(ctx, cardID)
	if err != nil {
		return accessDomain.DeniedSuspicious, err
	}
	if suspicious {
		return accessDomain.DeniedSuspicious, nil
	}

	registered, err := c.credentials.IsRegistered(ctx, cardID)
	if err != nil {
		return accessDomain.DeniedUnregisteredCard, err
	}
	if !registered {
		return accessDomain.DeniedUnregisteredCard, nil
	}

	hasPin, err := c.credentials.HasPin(ctx)
	if err != nil {
		return accessDomain.DeniedPinRequired, err
	}
	if !hasPin {
		return accessDomain.Granted, nil
	}
	if pin == nil {
		return accessDomain.DeniedPinRequired, nil
	}

	ok, err := c.credentials.VerifyPin(ctx, *pin)
	if err != nil {
		return accessDomain.DeniedWrongPin, err
	}
	if !ok {
		return accessDomain.DeniedWrongPin, nil
	}
	return accessDomain.Granted, nil
}

func (c *controller) State(ctx context.Context) (accessDomain.State, error) {
	locked, err := c.registry.ListLocked(ctx)
	if err != nil {
		return accessDomain.Unlocked, err
	}
	if len(locked) > 0 {
		return accessDomain.Locked, nil
	}
	return accessDomain.Unlocked, nil
}

func (c *controller) logDecision(action, cardID string, decision accessDomain.Decision, attrs ...any) {
	attrs = append(attrs,
		slog.String("card", credentialDomain.MaskCardID(cardID)),
		slog.String("decision", decision.String()),
	)
	if decision.IsGranted() {
		c.logger.Info("access granted: "+action, attrs...)
		return
	}
	c.logger.Warn("access denied: "+action, attrs...)
}
