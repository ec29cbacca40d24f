package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type sqlState struct {
	code  ErrorCode
	retry bool
}

// sqlStates are the SQLSTATEs the findings and ledger writes can run into
var sqlStates = map[string]sqlState{
	"23505": {ErrorCodeDuplicateKey, false},    // unique_violation
	"23503": {ErrorCodeInvalidArgument, false}, // foreign_key_violation
	"23502": {ErrorCodeValidation, false},      // not_null_violation
	"23514": {ErrorCodeValidation, false},      // check_violation
	"22001": {ErrorCodeInvalidArgument, false}, // string_data_right_truncation
	"22P02": {ErrorCodeInvalidArgument, false}, // invalid_text_representation
	"40001": {ErrorCodeDB, true},               // serialization_failure
	"40P01": {ErrorCodeDB, true},               // deadlock_detected
	"55P03": {ErrorCodeDB, true},               // lock_not_available
	"25006": {ErrorCodeUnavailable, true},      // read_only_sql_transaction, failover
	"57P03": {ErrorCodeUnavailable, true},      // cannot_connect_now
}

// transientText covers failures pgx reports without a SQLSTATE
var transientText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
	"terminating connection due to administrator command",
}

// FromPostgres codes a pgx error under msg: known SQLSTATEs get their code,
// failed dials are unavailable and anything else is a DB error
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	var pg *pgconn.PgError
	var dial *pgconn.ConnectError
	switch {
	case stderrs.As(err, &pg):
		if st, ok := sqlStates[pg.Code]; ok {
			code = st.code
		}
	case stderrs.As(err, &dial):
		code = ErrorCodeUnavailable
	}
	return Wrap(err, code, msg)
}

// Retryable reports whether another attempt may succeed: unavailable errors,
// transient SQLSTATEs and requests pgx never sent. Cancellation never is.
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if CodeOf(err) == ErrorCodeUnavailable || pgconn.SafeToRetry(err) {
		return true
	}
	var pg *pgconn.PgError
	if stderrs.As(err, &pg) {
		return sqlStates[pg.Code].retry
	}
	s := strings.ToLower(err.Error())
	for _, t := range transientText {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
