package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

const (
	usersTable       = "users"
	credentialsTable = "passkey_credentials"
)

var userColumns = []string{"guid", "handle", "phone", "pin_hash", "created_at"}

// userRepository is the SQLite-backed [UserRepository].
type userRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
	now     func() time.Time
}

// NewUserRepository constructs a [UserRepository] over db.
func NewUserRepository(db *DB, log *logger.Logger) (UserRepository, error) {
	if db == nil || db.DB == nil {
		return nil, ErrNilDB
	}
	log.Debug().Msg("creating user repository")
	return &userRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
		now:     time.Now,
	}, nil
}

// CreateUser inserts user and returns it with CreatedAt filled in.
//
// Error handling:
//   - UNIQUE violation on users.handle → [ErrHandleAlreadyExists].
//   - UNIQUE violation on users.phone → [ErrPhoneAlreadyExists].
//   - Any other driver error → [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.CreatedAt = r.now().UTC()
	query, args, err := r.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.GUID, user.Handle, user.Phone, user.PINHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = retryBusy(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		if column, ok := uniqueViolation(err); ok {
			switch column {
			case "users.phone":
				return models.User{}, ErrPhoneAlreadyExists
			default:
				return models.User{}, ErrHandleAlreadyExists
			}
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("handle", user.Handle).Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

func (r *userRepository) FindUserByGUID(ctx context.Context, guid string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"guid": guid})
}

func (r *userRepository) FindUserByHandle(ctx context.Context, handle string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"handle": handle})
}

func (r *userRepository) FindUserByPhone(ctx context.Context, phone string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"phone": phone})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.GUID, &user.Handle, &user.Phone, &user.PINHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error searching user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) TakenHandles(ctx context.Context, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	query, args, err := r.builder.
		Select("handle").
		From(usersTable).
		Where(sq.Eq{"handle": candidates}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*userRepository.TakenHandles").Msg("error checking handles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var h string
		if err = rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		taken = append(taken, strings.ToLower(h))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return taken, nil
}

// SaveCredential inserts cred or replaces the stored copy, e.g. after a
// sign count update.
func (r *userRepository) SaveCredential(ctx context.Context, cred models.PasskeyCredential) error {
	query, args, err := r.builder.
		Insert(credentialsTable).
		Columns("credential_id", "user_guid", "credential", "created_at").
		Values(cred.ID, cred.UserGUID, string(cred.Data), r.now().UTC()).
		Suffix("ON CONFLICT(credential_id) DO UPDATE SET credential = excluded.credential").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = retryBusy(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*userRepository.SaveCredential").Str("guid", cred.UserGUID).Msg("error saving credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *userRepository) Credentials(ctx context.Context, guid string) ([]models.PasskeyCredential, error) {
	query, args, err := r.builder.
		Select("credential_id", "user_guid", "credential").
		From(credentialsTable).
		Where(sq.Eq{"user_guid": guid}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*userRepository.Credentials").Str("guid", guid).Msg("error loading credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var creds []models.PasskeyCredential
	for rows.Next() {
		var (
			c    models.PasskeyCredential
			data string
		)
		if err = rows.Scan(&c.ID, &c.UserGUID, &data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		c.Data = []byte(data)
		creds = append(creds, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return creds, nil
}
