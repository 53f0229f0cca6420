package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped pq unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert team: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Message: "foreign key violation"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("pq: duplicate key value (23505)")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get game: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableConversions(t *testing.T) {
	if nullableInt64(0) != nil {
		t.Fatalf("expected nil for zero provider id")
	}
	if got := nullableInt64(57); got == nil || *got != 57 {
		t.Fatalf("unexpected nullable int64: got=%v want=57", got)
	}
	if got := nullInt64ToInt64(sql.NullInt64{}); got != 0 {
		t.Fatalf("expected 0 for null, got %d", got)
	}
	if got := nullInt32ToIntPtr(sql.NullInt32{Int32: 3, Valid: true}); got == nil || *got != 3 {
		t.Fatalf("unexpected score pointer: got=%v want=3", got)
	}
	if nullInt32ToIntPtr(sql.NullInt32{}) != nil {
		t.Fatalf("expected nil score for null")
	}
	if optionalString("  ") != nil {
		t.Fatalf("expected nil for blank string")
	}
	if nullableTime(time.Time{}) != nil {
		t.Fatalf("expected nil for zero time")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
