package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	UpdateStatus(ctx context.Context, playerID string, status Status) error
	// SetCaptain flags playerID as the only captain of teamID in one write.
	SetCaptain(ctx context.Context, teamID, playerID string) error
	SetViceCaptain(ctx context.Context, teamID, playerID string) error
	Delete(ctx context.Context, playerID string) error
}
