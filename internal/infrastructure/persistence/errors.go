package persistence

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations
const uniqueViolationCode = "23505"

// isDuplicateKey reports whether err is a unique-constraint violation.
// GORM translates these to ErrDuplicatedKey when TranslateError is on,
// but raw pq errors can still surface from Exec paths.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
