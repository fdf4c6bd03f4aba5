package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	SeasonID      string         `db:"season_public_id"`
	DivisionID    string         `db:"division_public_id"`
	HomeTeamID    string         `db:"home_team_public_id"`
	AwayTeamID    string         `db:"away_team_public_id"`
	HomeTeamName  string         `db:"home_team_name"`
	HomeTeamColor string         `db:"home_team_color"`
	AwayTeamName  string         `db:"away_team_name"`
	AwayTeamColor string         `db:"away_team_color"`
	FieldID       sql.NullString `db:"field_public_id"`
	Round         int            `db:"round"`
	MatchDate     time.Time      `db:"match_date"`
	MatchTime     string         `db:"match_time"`
	Status        string         `db:"status"`
	HomeScore     sql.NullInt64  `db:"home_score"`
	AwayScore     sql.NullInt64  `db:"away_score"`
	Winner        sql.NullString `db:"winner"`
	RefereeName   string         `db:"referee_name"`
	IsPlayoff     bool           `db:"is_playoff"`
	PlayoffStage  string         `db:"playoff_stage"`
	Notes         string         `db:"notes"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
