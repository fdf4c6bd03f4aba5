package season

import (
	"fmt"
	"strings"
	"time"
)

// Season is the root of the league hierarchy.
type Season struct {
	ID        string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  bool
	CreatedAt time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("season name is required")
	}
	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		return fmt.Errorf("season end date must not be before start date")
	}

	return nil
}
