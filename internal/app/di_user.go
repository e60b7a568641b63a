package app

import (
	"fmt"
	"sync"

	"github.com/allisson/authkit/internal/config"
	userHTTP "github.com/allisson/authkit/internal/user/http"
	userRepository "github.com/allisson/authkit/internal/user/repository"
	userUseCase "github.com/allisson/authkit/internal/user/usecase"
)

type userComponents struct {
	memoryUserRepo *userRepository.MemoryUserRepository
	userRepo       userUseCase.UserRepository
	userUseCase    userUseCase.UserUseCase
	userHandler    *userHTTP.UserHandler

	memoryUserRepoInit sync.Once
	userRepoInit       sync.Once
	userUseCaseInit    sync.Once
	userHandlerInit    sync.Once
}

// MemoryUserRepository returns the in-process user store, seeded from MEMORY_USERS_FILE when set.
func (c *Container) MemoryUserRepository() (*userRepository.MemoryUserRepository, error) {
	var err error
	c.memoryUserRepoInit.Do(func() {
		c.memoryUserRepo, err = c.initMemoryUserRepository()
		if err != nil {
			c.initErrors["memoryUserRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["memoryUserRepo"]; exists {
		return nil, storedErr
	}
	return c.memoryUserRepo, nil
}

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the user management use case wrapped with metrics.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// UserHandler returns the HTTP handler for user endpoints.
func (c *Container) UserHandler() *userHTTP.UserHandler {
	c.userHandlerInit.Do(func() {
		c.userHandler = userHTTP.NewUserHandler(c.Logger())
	})
	return c.userHandler
}

func (c *Container) initMemoryUserRepository() (*userRepository.MemoryUserRepository, error) {
	if c.config.MemoryUsersFile == "" {
		return userRepository.NewMemoryUserRepository(), nil
	}

	repo, err := userRepository.LoadMemoryUserRepository(c.config.MemoryUsersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory users file: %w", err)
	}
	return repo, nil
}

func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	if c.config.DBDriver == config.DriverMemory {
		return c.MemoryUserRepository()
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverMySQL:
		return userRepository.NewMySQLUserRepository(db), nil
	case config.DriverPostgres:
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	useCase := userUseCase.NewUserUseCase(txManager, userRepo, hasher)
	return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}
