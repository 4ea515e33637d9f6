package store

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Dialect names the SQL engine behind a Store.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// ParseDialect accepts the driver names used in config files.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	}
	return "", fmt.Errorf("unsupported driver %q", s)
}

// driverName is the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	if d == SQLite {
		return "sqlite3"
	}
	return string(d)
}

func (d Dialect) placeholder() squirrel.PlaceholderFormat {
	if d == Postgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// Options describes how to reach the store.
type Options struct {
	Driver string
	// Path is the database file for sqlite.
	Path     string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	// BusyTimeout bounds how long sqlite waits on a locked file before a
	// write fails. Zero keeps the driver default.
	BusyTimeout time.Duration
}

// buildDSN constructs a DSN for sqlite/postgres/mysql
func buildDSN(d Dialect, o Options) string {
	switch d {
	case Postgres:
		port := o.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(o.User, o.Password),
			Host:     fmt.Sprintf("%s:%d", hostOrLocal(o.Host), port),
			Path:     "/" + o.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	case MySQL:
		port := o.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", o.User, o.Password, hostOrLocal(o.Host), port, o.Name)
	}
	path := o.Path
	if path == "" {
		path = "database.db"
	}
	if o.BusyTimeout > 0 {
		return fmt.Sprintf("%s?_busy_timeout=%d", path, o.BusyTimeout.Milliseconds())
	}
	return path
}

func hostOrLocal(h string) string {
	if h == "" {
		return "127.0.0.1"
	}
	return h
}
