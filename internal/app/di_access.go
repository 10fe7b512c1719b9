package app

import (
	"fmt"

	accessHTTP "github.com/allisson/cardguard/internal/access/http"
	accessUseCase "github.com/allisson/cardguard/internal/access/usecase"
)

// AccessController returns the access controller.
func (c *Container) AccessController() (accessUseCase.Controller, error) {
	var err error
	c.controllerInit.Do(func() {
		c.controller, err = c.initAccessController()
		if err != nil {
			c.initErrors["controller"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["controller"]; exists {
		return nil, storedErr
	}
	return c.controller, nil
}

// AccessHandler returns the HTTP handler for authorization and locking.
func (c *Container) AccessHandler() (*accessHTTP.AccessHandler, error) {
	var err error
	c.accessHandlerInit.Do(func() {
		var controller accessUseCase.Controller
		controller, err = c.AccessController()
		if err != nil {
			err = fmt.Errorf("failed to get access controller for access handler: %w", err)
			c.initErrors["accessHandler"] = err
			return
		}
		c.accessHandler = accessHTTP.NewAccessHandler(controller, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessHandler"]; exists {
		return nil, storedErr
	}
	return c.accessHandler, nil
}

// initAccessController shares the container's components with the controller, so the
// HTTP handlers and the controller observe the same state.
func (c *Container) initAccessController() (accessUseCase.Controller, error) {
	threats, err := c.ThreatDetector()
	if err != nil {
		return nil, fmt.Errorf("failed to get threat detector for access controller: %w", err)
	}

	credentials, err := c.CredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential store for access controller: %w", err)
	}

	registry, err := c.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry for access controller: %w", err)
	}

	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for access controller: %w", err)
	}

	controller := accessUseCase.NewController(threats, credentials, registry, resolver, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access controller: %w", err)
		}
		return accessUseCase.NewControllerWithMetrics(controller, businessMetrics), nil
	}

	return controller, nil
}
