package db

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/lumamail/lumamail-backend/internal/config"
)

// Open connects to Postgres and verifies the connection with a ping. The
// handle is returned to the caller rather than stored in a package global so
// each binary owns its connection lifecycle.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
