package postgres

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("pq: relation deliveries does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullString(t *testing.T) {
	if got := nullString("own-a"); !got.Valid || got.String != "own-a" {
		t.Fatalf("expected valid null string, got %+v", got)
	}
	if got := nullString(""); got.Valid {
		t.Fatalf("expected invalid null string for empty value, got %+v", got)
	}
}
