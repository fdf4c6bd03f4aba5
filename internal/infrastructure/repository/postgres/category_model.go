package postgres

import (
	"time"

	"github.com/lib/pq"
)

type categoryTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	DivisionID  string         `db:"division_public_id"`
	SeasonID    string         `db:"season_public_id"`
	Name        string         `db:"name"`
	Level       int            `db:"level"`
	TeamLimit   int            `db:"team_limit"`
	PlayerLimit int            `db:"player_limit"`
	Price       int64          `db:"price"`
	Rules       pq.StringArray `db:"rules"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
