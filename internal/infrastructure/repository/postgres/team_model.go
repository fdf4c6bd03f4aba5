package postgres

import "time"

type teamTableModel struct {
	ID               int64     `db:"id"`
	PublicID         string    `db:"public_id"`
	CategoryID       string    `db:"category_public_id"`
	SeasonID         string    `db:"season_public_id"`
	Name             string    `db:"name"`
	ShortName        string    `db:"short_name"`
	PrimaryColor     string    `db:"primary_color"`
	SecondaryColor   string    `db:"secondary_color"`
	CoachName        string    `db:"coach_name"`
	CoachPhone       string    `db:"coach_phone"`
	CoachEmail       string    `db:"coach_email"`
	Status           string    `db:"status"`
	PaymentStatus    string    `db:"payment_status"`
	Wins             int       `db:"wins"`
	Draws            int       `db:"draws"`
	Losses           int       `db:"losses"`
	PointsFor        int       `db:"points_for"`
	PointsAgainst    int       `db:"points_against"`
	Points           int       `db:"points"`
	Notes            string    `db:"notes"`
	RegistrationDate time.Time `db:"registration_date"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
