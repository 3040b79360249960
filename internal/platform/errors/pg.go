package errors

// Postgres-specific mapping from pgx errors to ErrorCode. Feeds only read, so the
// interesting classes are connectivity, resource exhaustion and statement cancellation

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgClassConnection = "08" // connection_exception and friends

	pgErrQueryCanceled      = "57014"
	pgErrAdminShutdown      = "57P01"
	pgErrCrashShutdown      = "57P02"
	pgErrCannotConnectNow   = "57P03"
	pgErrTooManyConnections = "53300"
)

// ExtractPgError returns the *pgconn.PgError at the root of err, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode maps a Postgres error to an ErrorCode; ok is false when err is not a PgError
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch {
	case strings.HasPrefix(pgErr.Code, pgClassConnection):
		return ErrorCodeUnavailable, true
	case pgErr.Code == pgErrAdminShutdown, pgErr.Code == pgErrCrashShutdown,
		pgErr.Code == pgErrCannotConnectNow, pgErr.Code == pgErrTooManyConnections:
		return ErrorCodeUnavailable, true
	case pgErr.Code == pgErrQueryCanceled:
		return ErrorCodeTimeout, true
	default:
		// schema drift (42P01, 42703) and serialization failures stay plain DB errors
		return ErrorCodeDB, true
	}
}

// FromPostgres wraps a store error with a mapped code and msg. nil stays nil.
// Context errors win over driver errors so a client disconnect never reads as a 5xx
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if e, ok := FromContext(err, msg); ok {
		return e
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	var ce *pgconn.ConnectError
	if stderrs.As(err, &ce) || pgconn.Timeout(err) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
