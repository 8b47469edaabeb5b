package database

import (
	"fmt"
	"os"

	"kalma/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	dbutil "github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase connects and migrates, exiting the process on failure.
func InitializeDatabase(cfg config.Database) *sqlx.DB {
	dbConn, err := Open(cfg)
	if err != nil {
		logger.Error("Error while connecting to database", zap.String("driver", cfg.Driver), zap.Error(err))
		os.Exit(1)
	}

	if err := MigrateUp(dbConn); err != nil {
		logger.Error("Error while running migration", zap.Error(err))
		dbConn.Close()
		os.Exit(1)
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.Driver))
	return dbConn
}

// Open returns a pooled connection for the configured driver.
func Open(cfg config.Database) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return connectSQLite(cfg)
	case config.DriverMySQL, config.DriverPostgres:
		dbConn, err := sqlx.Connect(cfg.Driver, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
		}
		return dbConn, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// connectSQLite goes through go-utils, which panics when it cannot open or
// ping the file; the panic comes back as an error.
func connectSQLite(cfg config.Database) (dbConn *sqlx.DB, err error) {
	defer func() {
		if r := recover(); r != nil {
			dbConn = nil
			err = fmt.Errorf("open sqlite %s: %v", cfg.Path, r)
		}
	}()
	return dbutil.GetDBConnection(dbutil.DatabaseConfig{
		DRIVER: config.DriverSQLite,
		DB:     cfg.DSN(),
	}), nil
}
