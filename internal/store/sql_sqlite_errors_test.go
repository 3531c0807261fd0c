package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func busyError() error {
	return sqlite3.Error{Code: sqlite3.ErrBusy}
}

func TestUniqueViolation(t *testing.T) {
	_, ok := uniqueViolation(errors.New("plain"))
	assert.False(t, ok)

	_, ok = uniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull})
	assert.False(t, ok)

	_, ok = uniqueViolation(fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.True(t, ok)
}

func TestRetryBusy(t *testing.T) {
	calls := 0
	err := retryBusy(context.Background(), func() error {
		calls++
		return busyError()
	})
	assert.True(t, isBusy(err))
	assert.Equal(t, len(busyBackoff)+1, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls = 0
	err = retryBusy(ctx, func() error {
		calls++
		return busyError()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
