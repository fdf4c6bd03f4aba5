package division

import "context"

// Repository describes division persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Division, error)
	GetByID(ctx context.Context, divisionID string) (Division, bool, error)
	Create(ctx context.Context, item Division) error
	Update(ctx context.Context, item Division) error
	Delete(ctx context.Context, divisionID string) error
}
