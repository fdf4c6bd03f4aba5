package team

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusActive, StatusSuspended, StatusRejected:
		return true
	default:
		return false
	}
}

// PaymentStatus is derived from the team's payments, except overdue which is only set explicitly.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPartial, PaymentPending, PaymentOverdue:
		return true
	default:
		return false
	}
}

type Coach struct {
	Name  string
	Phone string
	Email string
}

// Stats is materialized from completed matches.
// PointsFor/PointsAgainst hold touchdowns or goals depending on the sport.
type Stats struct {
	Wins          int
	Draws         int
	Losses        int
	PointsFor     int
	PointsAgainst int
	Points        int
}

// Team is a registered squad competing in one category.
type Team struct {
	ID               string
	CategoryID       string
	SeasonID         string
	Name             string
	ShortName        string
	PrimaryColor     string
	SecondaryColor   string
	Coach            Coach
	Status           Status
	PaymentStatus    PaymentStatus
	Stats            Stats
	Notes            string
	RegistrationDate time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.CategoryID == "" {
		return fmt.Errorf("team category id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team season id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid team status: %s", t.Status)
	}
	if !t.PaymentStatus.Valid() {
		return fmt.Errorf("invalid team payment status: %s", t.PaymentStatus)
	}

	return nil
}

// Record is the read-side view of a team's results.
type Record struct {
	Wins       int
	Draws      int
	Losses     int
	TotalGames int
	Points     int
}

func (t Team) Record() Record {
	return Record{
		Wins:       t.Stats.Wins,
		Draws:      t.Stats.Draws,
		Losses:     t.Stats.Losses,
		TotalGames: t.Stats.Wins + t.Stats.Draws + t.Stats.Losses,
		Points:     t.Stats.Points,
	}
}
