package app

import (
	"fmt"

	"github.com/allisson/cardguard/internal/config"
	threatHTTP "github.com/allisson/cardguard/internal/threat/http"
	threatRepository "github.com/allisson/cardguard/internal/threat/repository"
	threatUseCase "github.com/allisson/cardguard/internal/threat/usecase"
)

// BlacklistRepository returns the blacklist repository for the storage driver.
func (c *Container) BlacklistRepository() (threatUseCase.BlacklistRepository, error) {
	var err error
	c.blacklistRepositoryInit.Do(func() {
		c.blacklistRepository, err = c.initBlacklistRepository()
		if err != nil {
			c.initErrors["blacklistRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blacklistRepository"]; exists {
		return nil, storedErr
	}
	return c.blacklistRepository, nil
}

// ThreatDetector returns the threat detector.
func (c *Container) ThreatDetector() (threatUseCase.ThreatDetector, error) {
	var err error
	c.threatDetectorInit.Do(func() {
		c.threatDetector, err = c.initThreatDetector()
		if err != nil {
			c.initErrors["threatDetector"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["threatDetector"]; exists {
		return nil, storedErr
	}
	return c.threatDetector, nil
}

// ThreatHandler returns the HTTP handler for classification and blacklist management.
func (c *Container) ThreatHandler() (*threatHTTP.ThreatHandler, error) {
	var err error
	c.threatHandlerInit.Do(func() {
		var detector threatUseCase.ThreatDetector
		detector, err = c.ThreatDetector()
		if err != nil {
			err = fmt.Errorf("failed to get threat detector for threat handler: %w", err)
			c.initErrors["threatHandler"] = err
			return
		}
		c.threatHandler = threatHTTP.NewThreatHandler(detector, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["threatHandler"]; exists {
		return nil, storedErr
	}
	return c.threatHandler, nil
}

func (c *Container) initBlacklistRepository() (threatUseCase.BlacklistRepository, error) {
	if c.config.StorageDriver == config.StorageDriverFile {
		return threatRepository.NewFileBlacklistRepository(c.config.StorageDir), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for blacklist repository: %w", err)
	}

	switch c.config.StorageDriver {
	case config.StorageDriverPostgres:
		return threatRepository.NewPostgreSQLBlacklistRepository(db), nil
	case config.StorageDriverMySQL, config.StorageDriverSQLite:
		return threatRepository.NewMySQLBlacklistRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", c.config.StorageDriver)
	}
}

func (c *Container) initThreatDetector() (threatUseCase.ThreatDetector, error) {
	repo, err := c.BlacklistRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get blacklist repository for threat detector: %w", err)
	}

	detector := threatUseCase.NewThreatDetector(repo, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for threat detector: %w", err)
		}
		return threatUseCase.NewThreatDetectorWithMetrics(detector, businessMetrics), nil
	}

	return detector, nil
}
