package app

import (
	"fmt"

	"github.com/allisson/cardguard/internal/config"
	usageHTTP "github.com/allisson/cardguard/internal/usage/http"
	usageRepository "github.com/allisson/cardguard/internal/usage/repository"
	usageUseCase "github.com/allisson/cardguard/internal/usage/usecase"
)

// StatsRepository returns the launch statistics repository for the storage driver.
func (c *Container) StatsRepository() (usageUseCase.StatsRepository, error) {
	var err error
	c.statsRepositoryInit.Do(func() {
		c.statsRepository, err = c.initStatsRepository()
		if err != nil {
			c.initErrors["statsRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["statsRepository"]; exists {
		return nil, storedErr
	}
	return c.statsRepository, nil
}

// UsageCounter returns the launch counter.
func (c *Container) UsageCounter() (usageUseCase.Counter, error) {
	var err error
	c.counterInit.Do(func() {
		c.counter, err = c.initUsageCounter()
		if err != nil {
			c.initErrors["counter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["counter"]; exists {
		return nil, storedErr
	}
	return c.counter, nil
}

// UsageHandler returns the HTTP handler for launch statistics.
func (c *Container) UsageHandler() (*usageHTTP.UsageHandler, error) {
	var err error
	c.usageHandlerInit.Do(func() {
		var counter usageUseCase.Counter
		counter, err = c.UsageCounter()
		if err != nil {
			err = fmt.Errorf("failed to get usage counter for usage handler: %w", err)
			c.initErrors["usageHandler"] = err
			return
		}
		c.usageHandler = usageHTTP.NewUsageHandler(counter, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["usageHandler"]; exists {
		return nil, storedErr
	}
	return c.usageHandler, nil
}

func (c *Container) initStatsRepository() (usageUseCase.StatsRepository, error) {
	if c.config.StorageDriver == config.StorageDriverFile {
		return usageRepository.NewFileStatsRepository(c.config.StorageDir), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for stats repository: %w", err)
	}

	switch c.config.StorageDriver {
	case config.StorageDriverPostgres:
		return usageRepository.NewPostgreSQLStatsRepository(db), nil
	case config.StorageDriverMySQL, config.StorageDriverSQLite:
		return usageRepository.NewMySQLStatsRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", c.config.StorageDriver)
	}
}

func (c *Container) initUsageCounter() (usageUseCase.Counter, error) {
	repo, err := c.StatsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats repository for usage counter: %w", err)
	}

	counter := usageUseCase.NewCounter(repo, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for usage counter: %w", err)
		}
		return usageUseCase.NewCounterWithMetrics(counter, businessMetrics), nil
	}

	return counter, nil
}
