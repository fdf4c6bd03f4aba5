package match

import (
	"context"
	"time"
)

// CalendarRequest asks the scheduling collaborator for one season slate.
type CalendarRequest struct {
	SeasonID   string
	DivisionID string
	TeamIDs    []string
	StartDate  time.Time
	FieldIDs   []string
}

// CalendarGenerator pairs teams and allocates fields. The pairing strategy
// belongs to the collaborator; callers only persist what it returns.
type CalendarGenerator interface {
	GenerateCalendar(ctx context.Context, req CalendarRequest) ([]Match, error)
}
