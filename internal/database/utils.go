package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/lib/pq"

	"github.com/docspace/docspace/config"
	"github.com/docspace/docspace/internal/domain"
)

// ChangeChannel is the LISTEN/NOTIFY channel the row triggers publish on
const ChangeChannel = "docspace_changes"

// GetDSN returns the connection string for the application database
func GetDSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{sslMode(cfg)}}.Encode(),
	}
	return u.String()
}

func sslMode(cfg *config.DatabaseConfig) string {
	if cfg.SSLMode == "" {
		return "disable"
	}
	return cfg.SSLMode
}

// Connect opens a pool on the given driver, applies pool limits and pings
func Connect(ctx context.Context, driverName string, cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, GetDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	ConfigurePool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, Unavailable(fmt.Errorf("failed to ping database: %w", err))
	}
	return db, nil
}

// ConfigurePool applies connection pool settings from config
func ConfigurePool(db *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)
	}
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique constraint failure
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// ConstraintName returns the violated constraint, empty when err is not a postgres error
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsConnectionError reports failures to reach the server, as opposed to query errors
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception, 57P0x: server shutting down
		code := string(pqErr.Code)
		return len(code) == 5 && (code[:2] == "08" || code[:4] == "57P0")
	}
	return false
}

// Unavailable wraps err as a dependency failure
func Unavailable(err error) error {
	return &domain.ErrDependencyUnavailable{Dependency: "database", Err: err}
}

// Classify maps connection failures to ErrDependencyUnavailable and leaves other errors untouched
func Classify(err error) error {
	if IsConnectionError(err) {
		return Unavailable(err)
	}
	return err
}
