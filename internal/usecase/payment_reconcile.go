package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/tochoprime/league-console/internal/domain/team"
	"go.opentelemetry.io/otel/attribute"
)

const defaultReconcileWorkers = 4

type ReconcileResult struct {
	SeasonID string
	Checked  int
	Updated  int
	Failed   int
}

// ReconcilePaymentStatuses recomputes the derived payment status of every
// team in a season. Overdue is kept unless the ledger now covers the price.
func (s *TeamService) ReconcilePaymentStatuses(ctx context.Context, seasonID string, workers int) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ReconcilePaymentStatuses", attribute.String("season.id", seasonID))
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return ReconcileResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if workers < 1 {
		workers = defaultReconcileWorkers
	}

	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list teams by season: %w", err)
	}
	result := ReconcileResult{SeasonID: seasonID, Checked: len(teams)}
	if len(teams) == 0 {
		return result, nil
	}

	prices := make(map[string]int64)
	for _, item := range teams {
		if _, ok := prices[item.CategoryID]; ok {
			continue
		}
		cat, err := s.lookupCategory(ctx, item.CategoryID)
		if err != nil {
			return ReconcileResult{}, err
		}
		prices[cat.ID] = cat.Price
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updated, failed atomic.Int32
	var wg sync.WaitGroup
	for _, item := range teams {
		item := item
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			changed, err := s.reconcileTeam(ctx, item, prices[item.CategoryID])
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "reconcile team payment status failed", "team_id", item.ID, "error", err)
				return
			}
			if changed {
				updated.Add(1)
			}
		}); err != nil {
			wg.Done()
			return ReconcileResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	result.Updated = int(updated.Load())
	result.Failed = int(failed.Load())
	s.logger.InfoContext(ctx, "payment statuses reconciled",
		"season_id", seasonID,
		"checked", result.Checked,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *TeamService) reconcileTeam(ctx context.Context, item team.Team, price int64) (bool, error) {
	_, changed, err := s.paymentRepo.Recompute(ctx, item.ID, price)
	if err != nil {
		return false, fmt.Errorf("recompute payment status: %w", err)
	}
	return changed, nil
}
