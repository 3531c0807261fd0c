package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

const localStorageTable = "local_storage"

// nextRev allocates a revision strictly greater than every stored one.
var nextRev = sq.Expr("(SELECT COALESCE(MAX(rev), 0) + 1 FROM " + localStorageTable + ")")

// SQLiteKV is the SQLite-backed local scope. Removed keys are kept as
// tombstones so that the change log can report removals to other processes.
type SQLiteKV struct {
	*DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
	now     func() time.Time
}

// NewSQLiteKV returns the local scope repository over db. The returned value
// also implements [ChangeLog].
func NewSQLiteKV(db *DB, log *logger.Logger) (*SQLiteKV, error) {
	if db == nil || db.DB == nil {
		return nil, ErrNilDB
	}
	return &SQLiteKV{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
		now:     time.Now,
	}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	query, args, err := s.builder.
		Select("storage_value").
		From(localStorageTable).
		Where(sq.Eq{"storage_key": key, "deleted": false}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteKV.Get").
			Str("key", key).
			Msg("failed to read storage key")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value, origin string) error {
	query, args, err := s.builder.
		Insert(localStorageTable).
		Columns("storage_key", "storage_value", "origin", "rev", "deleted", "updated_at").
		Values(key, value, origin, nextRev, false, s.now().UTC()).
		Suffix("ON CONFLICT(storage_key) DO UPDATE SET " +
			"storage_value = excluded.storage_value, origin = excluded.origin, " +
			"rev = excluded.rev, deleted = excluded.deleted, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteKV.Set").
			Str("key", key).
			Str("origin", origin).
			Msg("failed to upsert storage key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLiteKV) Remove(ctx context.Context, key, origin string) error {
	return s.tombstone(ctx, origin, sq.Eq{"storage_key": key, "deleted": false})
}

func (s *SQLiteKV) Clear(ctx context.Context, origin string) error {
	return s.tombstone(ctx, origin, sq.Eq{"deleted": false})
}

// tombstone marks matching live rows as removed. Each row gets its own
// revision so that every removal is visible in the change log.
func (s *SQLiteKV) tombstone(ctx context.Context, origin string, where sq.Eq) error {
	keys, err := s.selectKeys(ctx, where)
	if err != nil {
		return err
	}

	for _, key := range keys {
		query, args, err := s.builder.
			Update(localStorageTable).
			Set("storage_value", "").
			Set("origin", origin).
			Set("rev", nextRev).
			Set("deleted", true).
			Set("updated_at", s.now().UTC()).
			Where(sq.Eq{"storage_key": key}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).
				Str("func", "sqliteKV.tombstone").
				Str("key", key).
				Msg("failed to remove storage key")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (s *SQLiteKV) Keys(ctx context.Context) ([]string, error) {
	return s.selectKeys(ctx, sq.Eq{"deleted": false})
}

func (s *SQLiteKV) selectKeys(ctx context.Context, where sq.Eq) ([]string, error) {
	query, args, err := s.builder.
		Select("storage_key").
		From(localStorageTable).
		Where(where).
		OrderBy("storage_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteKV.selectKeys").Msg("failed to list storage keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return keys, nil
}

// CurrentRev implements [ChangeLog].
func (s *SQLiteKV) CurrentRev(ctx context.Context) (int64, error) {
	query, args, err := s.builder.
		Select("COALESCE(MAX(rev), 0)").
		From(localStorageTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rev int64
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&rev); err != nil {
		s.logger.Err(err).Str("func", "sqliteKV.CurrentRev").Msg("failed to read current revision")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rev, nil
}

// ChangesSince implements [ChangeLog]. Rows are returned in revision order.
func (s *SQLiteKV) ChangesSince(ctx context.Context, rev int64) ([]Change, error) {
	query, args, err := s.builder.
		Select("storage_key", "storage_value", "origin", "rev", "deleted").
		From(localStorageTable).
		Where(sq.Gt{"rev": rev}).
		OrderBy("rev").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteKV.ChangesSince").
			Int64("rev", rev).
			Msg("failed to query change log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var c Change
		if err = rows.Scan(&c.Key, &c.Value, &c.Origin, &c.Rev, &c.Deleted); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		changes = append(changes, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, nil
}
