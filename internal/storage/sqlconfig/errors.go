package sqlconfig

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrRecordNotFound is returned when a lookup, update or delete matches no row.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUniqueViolation is returned when a write breaks a unique index.
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrForeignKeyViolation is returned when a write references a missing parent row.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

// mapError translates driver errors into the package sentinels. Unknown errors
// are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return errors.Join(ErrUniqueViolation, err)
		case pqForeignKeyViolation:
			return errors.Join(ErrForeignKeyViolation, err)
		}
	}
	return err
}
