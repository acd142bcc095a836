package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
)

// IsTxConflict reports whether err is a concurrent-modification failure the
// caller may safely retry: the transaction applied nothing.
func IsTxConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == serializationFailureCode || pgErr.Code == deadlockDetectedCode
	}

	return false
}
