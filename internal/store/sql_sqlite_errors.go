package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// uniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint
// failure and returns the offending "table.column" when SQLite names it.
func uniqueViolation(err error) (string, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return "", false
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
	default:
		return "", false
	}

	_, column, _ := strings.Cut(sqliteErr.Error(), "constraint failed: ")
	return strings.TrimSpace(column), true
}

// isBusy reports whether err is a lock contention SQLite may resolve on
// retry.
func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

// busyBackoff is the pause before each retry of a statement that hit a lock.
var busyBackoff = []time.Duration{10 * time.Millisecond, 50 * time.Millisecond, 200 * time.Millisecond}

// retryBusy runs exec and retries it while SQLite reports lock contention.
func retryBusy(ctx context.Context, exec func() error) error {
	err := exec()
	for _, pause := range busyBackoff {
		if err == nil || !isBusy(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(pause):
		}
		err = exec()
	}
	return err
}
