package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID                    int64        `db:"id"`
	PublicID              string       `db:"public_id"`
	TeamID                string       `db:"team_public_id"`
	Name                  string       `db:"name"`
	LastName              string       `db:"last_name"`
	Number                int          `db:"number"`
	PositionVocabulary    string       `db:"position_vocabulary"`
	PositionCode          string       `db:"position_code"`
	Email                 string       `db:"email"`
	Phone                 string       `db:"phone"`
	DateOfBirth           sql.NullTime `db:"date_of_birth"`
	EmergencyName         string       `db:"emergency_name"`
	EmergencyPhone        string       `db:"emergency_phone"`
	EmergencyRelationship string       `db:"emergency_relationship"`
	Status                string       `db:"status"`
	IsCaptain             bool         `db:"is_captain"`
	IsViceCaptain         bool         `db:"is_vice_captain"`
	RegistrationDate      time.Time    `db:"registration_date"`
	CreatedAt             time.Time    `db:"created_at"`
	UpdatedAt             time.Time    `db:"updated_at"`
}
