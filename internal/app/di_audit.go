package app

import (
	"fmt"

	auditHTTP "github.com/allisson/gatekeeper/internal/audit/http"
	auditRepository "github.com/allisson/gatekeeper/internal/audit/repository"
	auditService "github.com/allisson/gatekeeper/internal/audit/service"
	auditUseCase "github.com/allisson/gatekeeper/internal/audit/usecase"
	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
)

// AuditSigner returns the HMAC signer for audit records.
func (c *Container) AuditSigner() auditService.AuditSigner {
	c.auditSignerInit.Do(func() {
		c.auditSigner = auditService.NewAuditSigner()
	})
	return c.auditSigner
}

// AuditRecordRepository returns the audit record repository based on database driver.
func (c *Container) AuditRecordRepository() (auditUseCase.AuditRecordRepository, error) {
	var err error
	c.auditRecordRepositoryInit.Do(func() {
		c.auditRecordRepository, err = c.initAuditRecordRepository()
		if err != nil {
			c.setInitError("auditRecordRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditRecordRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditRecordRepository, nil
}

// AuditRecorder returns the recorder that persists audit records in their own transaction.
func (c *Container) AuditRecorder() (auditUseCase.Recorder, error) {
	var err error
	c.auditRecorderInit.Do(func() {
		c.auditRecorder, err = c.initAuditRecorder()
		if err != nil {
			c.setInitError("auditRecorder", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditRecorder"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditRecorder, nil
}

// AuditInterceptor returns the interceptor used by the audit decorators.
func (c *Container) AuditInterceptor() (auditUseCase.Interceptor, error) {
	var err error
	c.auditInterceptorInit.Do(func() {
		c.auditInterceptor, err = c.initAuditInterceptor()
		if err != nil {
			c.setInitError("auditInterceptor", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditInterceptor"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditInterceptor, nil
}

// AuditLogUseCase returns the audit log listing, retention and verification use case.
func (c *Container) AuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUseCaseInit.Do(func() {
		var repo auditUseCase.AuditRecordRepository
		repo, err = c.AuditRecordRepository()
		if err != nil {
			err = fmt.Errorf("failed to get audit record repository for audit log use case: %w", err)
			c.setInitError("auditLogUseCase", err)
			return
		}
		c.auditLogUseCase = auditUseCase.NewAuditLogUseCase(repo, c.AuditSigner(), c.auditSigningKey())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditLogUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditLogUseCase, nil
}

// AuditLogHandler returns the HTTP handler for audit log listing.
func (c *Container) AuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	var err error
	c.auditLogHandlerInit.Do(func() {
		var useCase auditUseCase.AuditLogUseCase
		useCase, err = c.AuditLogUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
			c.setInitError("auditLogHandler", err)
			return
		}
		c.auditLogHandler = auditHTTP.NewAuditLogHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditLogHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditLogHandler, nil
}

// auditSigningKey returns nil when signing is disabled.
func (c *Container) auditSigningKey() []byte {
	if c.config.AuditSigningKey == "" {
		return nil
	}
	return []byte(c.config.AuditSigningKey)
}

// initAuditRecordRepository creates the audit record repository for the configured driver.
func (c *Container) initAuditRecordRepository() (auditUseCase.AuditRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLAuditRecordRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLAuditRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditRecorder creates the recorder.
func (c *Container) initAuditRecorder() (auditUseCase.Recorder, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for audit recorder: %w", err)
	}

	repo, err := c.AuditRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit record repository for audit recorder: %w", err)
	}

	auditMetrics, err := c.AuditMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit metrics for audit recorder: %w", err)
	}

	return auditUseCase.NewRecorder(
		txManager,
		repo,
		c.AuditSigner(),
		c.auditSigningKey(),
		auditMetrics,
		c.Logger(),
	), nil
}

// initAuditInterceptor creates the interceptor. The authenticated principal is read from
// the request context populated by the authentication middleware.
func (c *Container) initAuditInterceptor() (auditUseCase.Interceptor, error) {
	recorder, err := c.AuditRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit recorder for audit interceptor: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for audit interceptor: %w", err)
	}

	return auditUseCase.NewInterceptor(
		recorder,
		principalRepo,
		authHTTP.AuthenticatedUsername,
		c.Logger(),
	), nil
}
