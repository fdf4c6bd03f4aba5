package postgres

import (
	"time"

	"github.com/lib/pq"
)

type fieldTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	Code       string         `db:"code"`
	Name       string         `db:"name"`
	Type       string         `db:"type"`
	Capacity   int            `db:"capacity"`
	Status     string         `db:"status"`
	Priority   int            `db:"priority"`
	Zone       string         `db:"zone"`
	Facilities pq.StringArray `db:"facilities"`
	Address    string         `db:"address"`
	City       string         `db:"city"`
	Notes      string         `db:"notes"`
	IsActive   bool           `db:"is_active"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
