package postgres

import (
	"database/sql"
	"time"
)

type paymentTableModel struct {
	ID            int64        `db:"id"`
	PublicID      string       `db:"public_id"`
	TeamID        string       `db:"team_public_id"`
	SeasonID      string       `db:"season_public_id"`
	Amount        int64        `db:"amount"`
	PaymentDate   time.Time    `db:"payment_date"`
	Method        string       `db:"method"`
	Reference     string       `db:"reference"`
	Notes         string       `db:"notes"`
	Status        string       `db:"status"`
	PaidDate      sql.NullTime `db:"paid_date"`
	InvoiceNumber string       `db:"invoice_number"`
	CreatedBy     string       `db:"created_by"`
	CreatedAt     time.Time    `db:"created_at"`
}
