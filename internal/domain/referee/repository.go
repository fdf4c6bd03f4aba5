package referee

import "context"

// Repository exposes referee reads and registration.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Referee, error)
	Create(ctx context.Context, item Referee) error
}
