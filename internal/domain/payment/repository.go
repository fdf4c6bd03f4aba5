package payment

import (
	"context"

	"github.com/tochoprime/league-console/internal/domain/team"
)

// Repository is append-only. There is intentionally no update or delete.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Payment, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Payment, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	// Append stores item and the team's recomputed payment status atomically,
	// with the team locked against concurrent appends.
	Append(ctx context.Context, item Payment, price int64) (team.PaymentStatus, error)
	// Recompute applies ReconcileStatus to the team under the same lock as
	// Append and reports whether the stored status changed.
	Recompute(ctx context.Context, teamID string, price int64) (team.PaymentStatus, bool, error)
}
