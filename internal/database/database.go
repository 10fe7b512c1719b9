// Package database provides database connection management and utilities.
//
// Supported drivers are "postgres", "mysql" and "sqlite" (pure Go, no cgo). Repositories
// scan timestamps into time.Time and migrations run multi-statement files, so Connect
// adjusts MySQL and SQLite connection strings to support both.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// pingTimeout bounds the connectivity check performed by Connect.
const pingTimeout = 10 * time.Second

// sqliteBusyTimeout is how long a SQLite connection waits on a locked database.
const sqliteBusyTimeout = "_pragma=busy_timeout(5000)"

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect opens a pool for cfg and verifies it with a ping.
func Connect(cfg Config) (*sql.DB, error) {
	dsn, err := DataSourceName(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// Single writer.
		cfg.MaxOpenConnections = 1
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// DataSourceName returns the connection string handed to sql.Open for driver.
//
// MySQL strings get parseTime and multiStatements enabled. SQLite strings get a busy
// timeout unless they already set one. Other drivers are returned unchanged.
func DataSourceName(driver, connectionString string) (string, error) {
	switch driver {
	case "mysql":
		mysqlCfg, err := mysql.ParseDSN(connectionString)
		if err != nil {
			return "", fmt.Errorf("invalid mysql connection string: %w", err)
		}
		mysqlCfg.ParseTime = true
		mysqlCfg.MultiStatements = true
		return mysqlCfg.FormatDSN(), nil

	case "sqlite":
		if strings.Contains(connectionString, "busy_timeout") {
			return connectionString, nil
		}
		sep := "?"
		if strings.Contains(connectionString, "?") {
			sep = "&"
		}
		return connectionString + sep + sqliteBusyTimeout, nil

	default:
		return connectionString, nil
	}
}
