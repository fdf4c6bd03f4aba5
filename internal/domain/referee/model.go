package referee

import (
	"fmt"
	"strings"
)

// Referee officiates matches within one season.
type Referee struct {
	ID       string
	SeasonID string
	Name     string
	Phone    string
	Email    string
	IsActive bool
}

func (r Referee) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("referee id is required")
	}
	if r.SeasonID == "" {
		return fmt.Errorf("referee season id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("referee name is required")
	}

	return nil
}
