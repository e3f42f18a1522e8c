// internal/repository/postgres/errors.go
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"exptr-api/internal/util"

	"github.com/lib/pq"
)

// PostgreSQL error codes the repositories care about.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// mapError translates driver-level errors into the domain error taxonomy so
// callers never have to inspect pq internals. The original error stays
// wrapped for debugging.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", util.ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", util.ErrDuplicateEntry, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: constraint %s: %v", util.ErrInvalidReference, pqErr.Constraint, err)
		}
	}

	return err
}
