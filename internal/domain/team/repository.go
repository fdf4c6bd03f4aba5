package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Team, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Team, error)
	ListByCategories(ctx context.Context, categoryIDs []string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	UpdatePaymentStatus(ctx context.Context, teamID string, status PaymentStatus) error
	Delete(ctx context.Context, teamID string) error
}
