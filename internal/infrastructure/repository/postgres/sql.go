package postgres

import (
	"database/sql"
	"errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// nullString maps empty strings to NULL so FK columns such as
// leading_bidder_id stay unset instead of pointing at a ” row.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
