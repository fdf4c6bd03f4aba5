package category

import "context"

// Repository describes category persistence needs from use cases.
type Repository interface {
	ListByDivision(ctx context.Context, divisionID string) ([]Category, error)
	GetByID(ctx context.Context, categoryID string) (Category, bool, error)
	Create(ctx context.Context, item Category) error
	CreateMany(ctx context.Context, items []Category) error
	Update(ctx context.Context, item Category) error
	Delete(ctx context.Context, categoryID string) error
}
