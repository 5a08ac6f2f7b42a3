package app

import (
	"fmt"

	rbacHTTP "github.com/allisson/gatekeeper/internal/rbac/http"
	rbacRepository "github.com/allisson/gatekeeper/internal/rbac/repository"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// PrincipalRepository returns the principal repository based on database driver.
func (c *Container) PrincipalRepository() (rbacUseCase.PrincipalRepository, error) {
	var err error
	c.principalRepositoryInit.Do(func() {
		c.principalRepository, err = c.initPrincipalRepository()
		if err != nil {
			c.setInitError("principalRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("principalRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.principalRepository, nil
}

// RoleRepository returns the role repository based on database driver.
func (c *Container) RoleRepository() (rbacUseCase.RoleRepository, error) {
	var err error
	c.roleRepositoryInit.Do(func() {
		c.roleRepository, err = c.initRoleRepository()
		if err != nil {
			c.setInitError("roleRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("roleRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.roleRepository, nil
}

// PermissionRepository returns the permission repository based on database driver.
func (c *Container) PermissionRepository() (rbacUseCase.PermissionRepository, error) {
	var err error
	c.permissionRepositoryInit.Do(func() {
		c.permissionRepository, err = c.initPermissionRepository()
		if err != nil {
			c.setInitError("permissionRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("permissionRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.permissionRepository, nil
}

// PermissionResolver returns the permission resolver.
func (c *Container) PermissionResolver() (rbacUseCase.PermissionResolver, error) {
	var err error
	c.permissionResolverInit.Do(func() {
		c.permissionResolver, err = c.initPermissionResolver()
		if err != nil {
			c.setInitError("permissionResolver", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("permissionResolver"); storedErr != nil {
		return nil, storedErr
	}
	return c.permissionResolver, nil
}

// PrincipalUseCase returns the audited principal use case.
func (c *Container) PrincipalUseCase() (rbacUseCase.PrincipalUseCase, error) {
	var err error
	c.principalUseCaseInit.Do(func() {
		c.principalUseCase, err = c.initPrincipalUseCase()
		if err != nil {
			c.setInitError("principalUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("principalUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.principalUseCase, nil
}

// RoleUseCase returns the role catalog use case.
func (c *Container) RoleUseCase() (rbacUseCase.RoleUseCase, error) {
	var err error
	c.roleUseCaseInit.Do(func() {
		var roleRepo rbacUseCase.RoleRepository
		roleRepo, err = c.RoleRepository()
		if err != nil {
			err = fmt.Errorf("failed to get role repository for role use case: %w", err)
			c.setInitError("roleUseCase", err)
			return
		}
		c.roleUseCase = rbacUseCase.NewRoleUseCase(roleRepo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("roleUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

// PermissionUseCase returns the permission catalog use case.
func (c *Container) PermissionUseCase() (rbacUseCase.PermissionUseCase, error) {
	var err error
	c.permissionUseCaseInit.Do(func() {
		var permissionRepo rbacUseCase.PermissionRepository
		permissionRepo, err = c.PermissionRepository()
		if err != nil {
			err = fmt.Errorf("failed to get permission repository for permission use case: %w", err)
			c.setInitError("permissionUseCase", err)
			return
		}
		c.permissionUseCase = rbacUseCase.NewPermissionUseCase(permissionRepo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("permissionUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.permissionUseCase, nil
}

// BootstrapUseCase returns the use case seeding roles, permissions and the first administrator.
func (c *Container) BootstrapUseCase() (rbacUseCase.BootstrapUseCase, error) {
	var err error
	c.bootstrapUseCaseInit.Do(func() {
		c.bootstrapUseCase, err = c.initBootstrapUseCase()
		if err != nil {
			c.setInitError("bootstrapUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("bootstrapUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.bootstrapUseCase, nil
}

// PrincipalHandler returns the HTTP handler for user management.
func (c *Container) PrincipalHandler() (*rbacHTTP.PrincipalHandler, error) {
	var err error
	c.principalHandlerInit.Do(func() {
		var useCase rbacUseCase.PrincipalUseCase
		useCase, err = c.PrincipalUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get principal use case for principal handler: %w", err)
			c.setInitError("principalHandler", err)
			return
		}
		c.principalHandler = rbacHTTP.NewPrincipalHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("principalHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.principalHandler, nil
}

// RoleHandler returns the HTTP handler for the role catalog.
func (c *Container) RoleHandler() (*rbacHTTP.RoleHandler, error) {
	var err error
	c.roleHandlerInit.Do(func() {
		var useCase rbacUseCase.RoleUseCase
		useCase, err = c.RoleUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get role use case for role handler: %w", err)
			c.setInitError("roleHandler", err)
			return
		}
		c.roleHandler = rbacHTTP.NewRoleHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("roleHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.roleHandler, nil
}

// PermissionHandler returns the HTTP handler for the permission catalog.
func (c *Container) PermissionHandler() (*rbacHTTP.PermissionHandler, error) {
	var err error
	c.permissionHandlerInit.Do(func() {
		var useCase rbacUseCase.PermissionUseCase
		useCase, err = c.PermissionUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get permission use case for permission handler: %w", err)
			c.setInitError("permissionHandler", err)
			return
		}
		c.permissionHandler = rbacHTTP.NewPermissionHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("permissionHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.permissionHandler, nil
}

// initPrincipalRepository creates the principal repository for the configured driver.
func (c *Container) initPrincipalRepository() (rbacUseCase.PrincipalRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for principal repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return rbacRepository.NewMySQLPrincipalRepository(db), nil
	case "postgres":
		return rbacRepository.NewPostgreSQLPrincipalRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRoleRepository creates the role repository for the configured driver.
func (c *Container) initRoleRepository() (rbacUseCase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return rbacRepository.NewMySQLRoleRepository(db), nil
	case "postgres":
		return rbacRepository.NewPostgreSQLRoleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPermissionRepository creates the permission repository for the configured driver.
func (c *Container) initPermissionRepository() (rbacUseCase.PermissionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for permission repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return rbacRepository.NewMySQLPermissionRepository(db), nil
	case "postgres":
		return rbacRepository.NewPostgreSQLPermissionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPermissionResolver creates the resolver, wrapped with metrics if enabled.
func (c *Container) initPermissionResolver() (rbacUseCase.PermissionResolver, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for permission resolver: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for permission resolver: %w", err)
	}

	permissionRepo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for permission resolver: %w", err)
	}

	resolver := rbacUseCase.NewPermissionResolver(txManager, roleRepo, permissionRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for permission resolver: %w", err)
		}
		return rbacUseCase.NewPermissionResolverWithMetrics(resolver, businessMetrics), nil
	}

	return resolver, nil
}

// initPrincipalUseCase creates the principal use case. Mutations are audited, and the
// audited use case is wrapped with metrics if enabled.
func (c *Container) initPrincipalUseCase() (rbacUseCase.PrincipalUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for principal use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for principal use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for principal use case: %w", err)
	}

	interceptor, err := c.AuditInterceptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit interceptor for principal use case: %w", err)
	}

	baseUseCase := rbacUseCase.NewPrincipalUseCase(txManager, principalRepo, roleRepo, c.PasswordService())
	useCase := rbacUseCase.NewPrincipalUseCaseWithAudit(baseUseCase, interceptor)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for principal use case: %w", err)
		}
		return rbacUseCase.NewPrincipalUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}

// initBootstrapUseCase creates the bootstrap use case.
func (c *Container) initBootstrapUseCase() (rbacUseCase.BootstrapUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for bootstrap use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for bootstrap use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for bootstrap use case: %w", err)
	}

	permissionRepo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for bootstrap use case: %w", err)
	}

	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for bootstrap use case: %w", err)
	}

	return rbacUseCase.NewBootstrapUseCase(txManager, principalRepo, roleRepo, permissionRepo, principalUseCase), nil
}
