package field

import "context"

// Repository describes field persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Field, error)
	GetByID(ctx context.Context, fieldID string) (Field, bool, error)
	Create(ctx context.Context, item Field) error
	Update(ctx context.Context, item Field) error
	UpdateStatus(ctx context.Context, fieldID string, status Status) error
	Delete(ctx context.Context, fieldID string) error
}
