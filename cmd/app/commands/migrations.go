package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/gatekeeper/internal/database"
)

// migrationSources maps a database driver to its directory of SQL migrations.
var migrationSources = map[string]string{
	database.DriverPostgres: "file://migrations/postgresql",
	database.DriverMySQL:    "file://migrations/mysql",
}

// migrateLogger routes golang-migrate progress lines into slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return false
}

// RunMigrations applies every pending migration for driver. An up-to-date schema is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	source, ok := migrationSources[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	logger = logger.With(slog.String("driver", driver))
	logger.Info("running database migrations", slog.String("source", source))

	m, err := migrate.New(source, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{logger: logger}
	defer func() {
		sourceErr, dbErr := m.Close()
		if err := errors.Join(sourceErr, dbErr); err != nil {
			logger.Error("failed to close migrate instance", slog.Any("error", err))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("migrations completed", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
