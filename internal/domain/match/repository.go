package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListByDivision(ctx context.Context, divisionID string) ([]Match, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	CountByField(ctx context.Context, fieldID string) (int, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	CreateMany(ctx context.Context, items []Match) error
	// Update and Delete write the match and the stats folded from each team
	// in refold as one atomic change. refold may be empty.
	Update(ctx context.Context, item Match, refold []string) error
	Delete(ctx context.Context, matchID string, refold []string) error
}
