package division

import (
	"fmt"
	"strings"
)

// Division groups categories inside a season, e.g. by gender composition.
type Division struct {
	ID       string
	SeasonID string
	Name     string
	Color    string
}

func (d Division) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("division id is required")
	}
	if d.SeasonID == "" {
		return fmt.Errorf("division season id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("division name is required")
	}

	return nil
}
