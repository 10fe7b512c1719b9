package app

import (
	"fmt"

	"github.com/allisson/cardguard/internal/config"
	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
	resourceHTTP "github.com/allisson/cardguard/internal/resource/http"
	resourceRepository "github.com/allisson/cardguard/internal/resource/repository"
	resourceUseCase "github.com/allisson/cardguard/internal/resource/usecase"
)

// LockedResourceRepository returns the locked set repository for the storage driver.
func (c *Container) LockedResourceRepository() (resourceUseCase.LockedResourceRepository, error) {
	var err error
	c.lockedRepositoryInit.Do(func() {
		c.lockedRepository, err = c.initLockedResourceRepository()
		if err != nil {
			c.initErrors["lockedRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["lockedRepository"]; exists {
		return nil, storedErr
	}
	return c.lockedRepository, nil
}

// Registry returns the locked resource registry.
func (c *Container) Registry() (resourceUseCase.Registry, error) {
	var err error
	c.registryInit.Do(func() {
		c.registry, err = c.initRegistry()
		if err != nil {
			c.initErrors["registry"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registry"]; exists {
		return nil, storedErr
	}
	return c.registry, nil
}

// Resolver returns the catalogue resolver when RESOURCE_CATALOG is set, otherwise the
// identity resolver.
func (c *Container) Resolver() (resourceUseCase.Resolver, error) {
	var err error
	c.resolverInit.Do(func() {
		c.resolver, err = c.initResolver()
		if err != nil {
			c.initErrors["resolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.resolver, nil
}

// ResourceHandler returns the HTTP handler for locked resource queries.
func (c *Container) ResourceHandler() (*resourceHTTP.ResourceHandler, error) {
	var err error
	c.resourceHandlerInit.Do(func() {
		var registry resourceUseCase.Registry
		registry, err = c.Registry()
		if err != nil {
			err = fmt.Errorf("failed to get registry for resource handler: %w", err)
			c.initErrors["resourceHandler"] = err
			return
		}
		c.resourceHandler = resourceHTTP.NewResourceHandler(registry, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resourceHandler"]; exists {
		return nil, storedErr
	}
	return c.resourceHandler, nil
}

func (c *Container) initLockedResourceRepository() (resourceUseCase.LockedResourceRepository, error) {
	if c.config.StorageDriver == config.StorageDriverFile {
		return resourceRepository.NewFileLockedResourceRepository(c.config.StorageDir), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for locked resource repository: %w", err)
	}

	switch c.config.StorageDriver {
	case config.StorageDriverPostgres:
		return resourceRepository.NewPostgreSQLLockedResourceRepository(db), nil
	case config.StorageDriverMySQL, config.StorageDriverSQLite:
		return resourceRepository.NewMySQLLockedResourceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", c.config.StorageDriver)
	}
}

func (c *Container) initRegistry() (resourceUseCase.Registry, error) {
	repo, err := c.LockedResourceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get locked resource repository for registry: %w", err)
	}

	registry := resourceUseCase.NewRegistry(repo, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for registry: %w", err)
		}
		return resourceUseCase.NewRegistryWithMetrics(registry, businessMetrics), nil
	}

	return registry, nil
}

func (c *Container) initResolver() (resourceUseCase.Resolver, error) {
	if c.config.ResourceCatalog == "" {
		return resourceUseCase.NewIdentityResolver(), nil
	}

	catalog, err := resourceDomain.ParseCatalog(c.config.ResourceCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resource catalog: %w", err)
	}
	return resourceUseCase.NewStaticResolver(catalog), nil
}
