package repository

import (
	"errors"
	"fmt"
	"hash/fnv"

	relay_errors "relay-messenger/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}

// translateError maps driver errors onto the shared sentinels. what names the
// entity for the message, e.g. "user".
func translateError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s not found", relay_errors.ErrNotFound, what)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s already exists", relay_errors.ErrAlreadyExists, what)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: referenced row for %s does not exist", relay_errors.ErrNotFound, what)
	}
	return err
}

// pairLockKey derives an advisory lock key that is the same for (a, b) and (b, a).
func pairLockKey(a, b int64) int64 {
	if a > b {
		a, b = b, a
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "direct-chat:%d:%d", a, b)
	return int64(h.Sum64())
}
