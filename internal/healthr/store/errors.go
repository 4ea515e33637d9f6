package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorage wraps failures writing to or reading from the store:
	// permissions, lock contention, full disks, lost connections.
	ErrStorage = errors.New("storage error")
	// ErrSchema is returned when a query touches a table that does not
	// exist yet. It is never used for an empty result.
	ErrSchema = errors.New("schema error")
	// ErrNotReadOnly rejects anything but a single SELECT/WITH statement in
	// ExecuteQuery.
	ErrNotReadOnly = errors.New("statement is not read-only")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// classify maps a driver error from a query to ErrSchema or ErrStorage.
func classify(op string, err error) error {
	if isMissingTable(err) {
		return fmt.Errorf("%w: %s: %w", ErrSchema, op, err)
	}
	return storageErr(op, err)
}

func isMissingTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01" // undefined_table
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1146 // ER_NO_SUCH_TABLE
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "no such table")
	}
	return strings.Contains(err.Error(), "no such table")
}
