package store

import "errors"

// Sentinel errors returned by storage methods. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrKeyNotFound is returned by Get when the key is absent or removed.
	ErrKeyNotFound = errors.New("storage key not found")

	// ErrUnknownScope is returned when a scope other than local or session
	// is requested.
	ErrUnknownScope = errors.New("unknown storage scope")

	// ErrNoUserWasFound is returned when no account matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrHandleAlreadyExists is returned when a handle is taken.
	ErrHandleAlreadyExists = errors.New("handle already exists")

	// ErrPhoneAlreadyExists is returned when a phone is registered.
	ErrPhoneAlreadyExists = errors.New("phone already exists")

	// ErrDeviceNotFound is returned when the device key was never seen.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrNilDB is returned when a repository is constructed without a
	// database handle.
	ErrNilDB = errors.New("db is nil")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// query builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan storage rows")
)
