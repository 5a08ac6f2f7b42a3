package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
	authRepository "github.com/allisson/gatekeeper/internal/auth/repository"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
)

// KMSService returns the KMS service used to unwrap the JWT signing secret.
func (c *Container) KMSService() authService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = authService.NewKMSService()
	})
	return c.kmsService
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// RefreshTokenService returns the refresh token generator.
func (c *Container) RefreshTokenService() authService.RefreshTokenService {
	c.refreshTokenServiceInit.Do(func() {
		c.refreshTokenService = authService.NewRefreshTokenService()
	})
	return c.refreshTokenService
}

// AccessTokenService returns the JWT access token service.
// The signing secret is decrypted through KMS when AUTH_JWT_SECRET_KMS_KEY_URI is set.
func (c *Container) AccessTokenService(ctx context.Context) (authService.AccessTokenService, error) {
	var err error
	c.accessTokenServiceInit.Do(func() {
		c.accessTokenService, err = c.initAccessTokenService(ctx)
		if err != nil {
			c.setInitError("accessTokenService", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("accessTokenService"); storedErr != nil {
		return nil, storedErr
	}
	return c.accessTokenService, nil
}

// RefreshTokenRepository returns the refresh token repository based on database driver.
func (c *Container) RefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	var err error
	c.refreshTokenRepositoryInit.Do(func() {
		c.refreshTokenRepository, err = c.initRefreshTokenRepository()
		if err != nil {
			c.setInitError("refreshTokenRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("refreshTokenRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.refreshTokenRepository, nil
}

// Authenticator returns the username and password authenticator.
func (c *Container) Authenticator() (authUseCase.Authenticator, error) {
	var err error
	c.authenticatorInit.Do(func() {
		c.authenticator, err = c.initAuthenticator()
		if err != nil {
			c.setInitError("authenticator", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("authenticator"); storedErr != nil {
		return nil, storedErr
	}
	return c.authenticator, nil
}

// RefreshTokenUseCase returns the refresh token ledger.
func (c *Container) RefreshTokenUseCase() (authUseCase.RefreshTokenUseCase, error) {
	var err error
	c.refreshTokenUseCaseInit.Do(func() {
		c.refreshTokenUseCase, err = c.initRefreshTokenUseCase()
		if err != nil {
			c.setInitError("refreshTokenUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("refreshTokenUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.refreshTokenUseCase, nil
}

// SessionUseCase returns the session orchestrator (login, refresh, me).
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.setInitError("sessionUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the HTTP handler for the session endpoints.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		var useCase authUseCase.SessionUseCase
		useCase, err = c.SessionUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get session use case for session handler: %w", err)
			c.setInitError("sessionHandler", err)
			return
		}
		c.sessionHandler = authHTTP.NewSessionHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// initAccessTokenService resolves the signing secret and creates the JWT service.
func (c *Container) initAccessTokenService(ctx context.Context) (authService.AccessTokenService, error) {
	secret, err := c.jwtSecret(ctx)
	if err != nil {
		return nil, err
	}

	service, err := authService.NewAccessTokenService(
		secret,
		c.config.AuthJWTIssuer,
		c.config.AuthAccessTokenExpiration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token service: %w", err)
	}
	return service, nil
}

// jwtSecret returns AUTH_JWT_SECRET, decrypting it with the configured KMS key when set.
func (c *Container) jwtSecret(ctx context.Context) ([]byte, error) {
	if c.config.AuthJWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	if c.config.AuthJWTSecretKMSKeyURI == "" {
		return []byte(c.config.AuthJWTSecret), nil
	}

	secret, err := c.KMSService().DecryptSecret(ctx, c.config.AuthJWTSecretKMSKeyURI, c.config.AuthJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt jwt secret: %w", err)
	}
	return secret, nil
}

// initRefreshTokenRepository creates the refresh token repository for the configured driver.
func (c *Container) initRefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refresh token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLRefreshTokenRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLRefreshTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthenticator creates the authenticator.
func (c *Container) initAuthenticator() (authUseCase.Authenticator, error) {
	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for authenticator: %w", err)
	}
	return authUseCase.NewAuthenticator(principalRepo, c.PasswordService()), nil
}

// initRefreshTokenUseCase creates the refresh token use case, wrapped with metrics if enabled.
func (c *Container) initRefreshTokenUseCase() (authUseCase.RefreshTokenUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for refresh token use case: %w", err)
	}

	refreshTokenRepo, err := c.RefreshTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token repository for refresh token use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for refresh token use case: %w", err)
	}

	baseUseCase := authUseCase.NewRefreshTokenUseCase(
		txManager,
		refreshTokenRepo,
		principalRepo,
		c.RefreshTokenService(),
		c.config.AuthRefreshTokenExpiration,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for refresh token use case: %w", err)
		}
		return authUseCase.NewRefreshTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSessionUseCase creates the session use case. Login is audited, and the audited use
// case is wrapped with metrics if enabled.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	authenticator, err := c.Authenticator()
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticator for session use case: %w", err)
	}

	accessTokenService, err := c.AccessTokenService(c.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token service for session use case: %w", err)
	}

	refreshTokenUseCase, err := c.RefreshTokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token use case for session use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for session use case: %w", err)
	}

	permissionResolver, err := c.PermissionResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission resolver for session use case: %w", err)
	}

	interceptor, err := c.AuditInterceptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit interceptor for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(
		authenticator,
		accessTokenService,
		refreshTokenUseCase,
		principalRepo,
		permissionResolver,
	)
	useCase := authUseCase.NewSessionUseCaseWithAudit(baseUseCase, interceptor)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}
