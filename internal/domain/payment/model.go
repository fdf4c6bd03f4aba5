package payment

import (
	"fmt"
	"time"

	"github.com/tochoprime/league-console/internal/domain/team"
)

type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCard     Method = "card"
	MethodCheck    Method = "check"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodCheck:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
	StatusOverdue   Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefunded, StatusOverdue:
		return true
	default:
		return false
	}
}

// Counts reports whether a payment contributes to the team balance.
func (s Status) Counts() bool {
	return s != StatusCancelled && s != StatusRefunded
}

// Payment is one entry of a team's append-only ledger.
type Payment struct {
	ID            string
	TeamID        string
	SeasonID      string
	Amount        int64
	Date          time.Time
	Method        Method
	Reference     string
	Notes         string
	Status        Status
	PaidDate      *time.Time
	InvoiceNumber string
	CreatedBy     string
	CreatedAt     time.Time
}

func (p Payment) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("payment id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("payment team id is required")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("payment season id is required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("payment amount must be > 0")
	}
	if !p.Method.Valid() {
		return fmt.Errorf("invalid payment method: %s", p.Method)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid payment status: %s", p.Status)
	}
	if p.PaidDate != nil && p.Status != StatusPaid {
		return fmt.Errorf("paid date is only set on paid payments")
	}

	return nil
}

// Total sums every payment that counts toward the balance.
func Total(items []Payment) int64 {
	var total int64
	for _, item := range items {
		if item.Status.Counts() {
			total += item.Amount
		}
	}
	return total
}

// DeriveTeamStatus maps a balance against the category price.
// It never yields overdue.
func DeriveTeamStatus(total, price int64) team.PaymentStatus {
	switch {
	case total <= 0:
		return team.PaymentPending
	case total >= price:
		return team.PaymentPaid
	default:
		return team.PaymentPartial
	}
}

// ReconcileStatus is the status a reconcile pass stores for a team whose
// current status is current. Overdue sticks until the ledger covers price.
func ReconcileStatus(current team.PaymentStatus, total, price int64) team.PaymentStatus {
	derived := DeriveTeamStatus(total, price)
	if current == team.PaymentOverdue && derived != team.PaymentPaid {
		return current
	}
	return derived
}
