package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/tochoprime/league-console/internal/domain"
)

func TestPQErrorClassification(t *testing.T) {
	t.Run("unique violation through wrapping", func(t *testing.T) {
		err := fmt.Errorf("insert category: %w", &pq.Error{Code: pqUniqueViolation, Constraint: "categories_division_name_key"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
		if got := pqConstraint(err); got != "categories_division_name_key" {
			t.Fatalf("unexpected constraint: %s", got)
		}
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := &pq.Error{Code: pqForeignKeyViolation}
		if !isForeignKeyViolation(err) {
			t.Fatalf("expected foreign key violation")
		}
		if isUniqueViolation(err) {
			t.Fatalf("foreign key violation must not look unique")
		}
	})

	t.Run("plain error has no code", func(t *testing.T) {
		if got := pqCode(errors.New("boom")); got != "" {
			t.Fatalf("expected empty code, got %q", got)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get season: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(errors.New("other")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullConversions(t *testing.T) {
	if got := fromNullTime(toNullTime(nil)); got != nil {
		t.Fatalf("expected nil time, got %v", got)
	}
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	got := fromNullTime(toNullTime(&now))
	if got == nil || !got.Equal(now) {
		t.Fatalf("unexpected time: %v", got)
	}

	score := 21
	if n := fromNullInt(toNullInt(&score)); n == nil || *n != 21 {
		t.Fatalf("unexpected score: %v", n)
	}
	if n := fromNullInt(toNullInt(nil)); n != nil {
		t.Fatalf("expected nil score, got %v", *n)
	}

	if toNullString("").Valid {
		t.Fatalf("empty string must be null")
	}
	if arr := stringArray(nil); arr == nil || len(arr) != 0 {
		t.Fatalf("expected empty non-nil array, got %#v", arr)
	}
}

func TestDeleteErrorMarksRestrictViolations(t *testing.T) {
	err := deleteError("delete field", &pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_field_public_id_fkey"})
	if !errors.Is(err, domain.ErrStillReferenced) {
		t.Fatalf("expected ErrStillReferenced, got %v", err)
	}
	if !isForeignKeyViolation(err) {
		t.Fatalf("expected the pq error to stay reachable")
	}

	plain := deleteError("delete field", errors.New("connection reset"))
	if errors.Is(plain, domain.ErrStillReferenced) {
		t.Fatalf("plain failures must not look like restrict violations")
	}
}
