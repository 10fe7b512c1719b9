package app

import (
	"fmt"

	"github.com/allisson/cardguard/internal/config"
	credentialHTTP "github.com/allisson/cardguard/internal/credential/http"
	credentialRepository "github.com/allisson/cardguard/internal/credential/repository"
	credentialService "github.com/allisson/cardguard/internal/credential/service"
	credentialUseCase "github.com/allisson/cardguard/internal/credential/usecase"
)

// CredentialRepository returns the card and PIN repository for the storage driver.
func (c *Container) CredentialRepository() (credentialUseCase.CredentialRepository, error) {
	var err error
	c.credentialRepositoryInit.Do(func() {
		c.credentialRepository, err = c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialRepository"]; exists {
		return nil, storedErr
	}
	return c.credentialRepository, nil
}

// PinHasher returns the Argon2id PIN hasher.
func (c *Container) PinHasher() (credentialService.PinHasher, error) {
	var err error
	c.pinHasherInit.Do(func() {
		c.pinHasher, err = credentialService.NewPinHasher()
		if err != nil {
			err = fmt.Errorf("failed to create pin hasher: %w", err)
			c.initErrors["pinHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pinHasher"]; exists {
		return nil, storedErr
	}
	return c.pinHasher, nil
}

// CredentialStore returns the credential store.
func (c *Container) CredentialStore() (credentialUseCase.CredentialStore, error) {
	var err error
	c.credentialStoreInit.Do(func() {
		c.credentialStore, err = c.initCredentialStore()
		if err != nil {
			c.initErrors["credentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialStore"]; exists {
		return nil, storedErr
	}
	return c.credentialStore, nil
}

// CredentialHandler returns the HTTP handler for cards and the PIN.
func (c *Container) CredentialHandler() (*credentialHTTP.CredentialHandler, error) {
	var err error
	c.credentialHandlerInit.Do(func() {
		var store credentialUseCase.CredentialStore
		store, err = c.CredentialStore()
		if err != nil {
			err = fmt.Errorf("failed to get credential store for credential handler: %w", err)
			c.initErrors["credentialHandler"] = err
			return
		}
		c.credentialHandler = credentialHTTP.NewCredentialHandler(store, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialHandler"]; exists {
		return nil, storedErr
	}
	return c.credentialHandler, nil
}

func (c *Container) initCredentialRepository() (credentialUseCase.CredentialRepository, error) {
	if c.config.StorageDriver == config.StorageDriverFile {
		return credentialRepository.NewFileCredentialRepository(c.config.StorageDir), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.StorageDriver {
	case config.StorageDriverPostgres:
		return credentialRepository.NewPostgreSQLCredentialRepository(db), nil
	case config.StorageDriverMySQL, config.StorageDriverSQLite:
		return credentialRepository.NewMySQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", c.config.StorageDriver)
	}
}

func (c *Container) initCredentialStore() (credentialUseCase.CredentialStore, error) {
	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential store: %w", err)
	}

	hasher, err := c.PinHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get pin hasher for credential store: %w", err)
	}

	store := credentialUseCase.NewCredentialStore(repo, hasher, c.config.PinMinLength, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for credential store: %w", err)
		}
		return credentialUseCase.NewCredentialStoreWithMetrics(store, businessMetrics), nil
	}

	return store, nil
}
