package memory

import (
	"context"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.teams.filter(func(v team.Team) bool { return v.SeasonID == seasonID }, identity[team.Team]), nil
}

func (r *TeamRepository) ListByCategory(_ context.Context, categoryID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.teams.filter(func(v team.Team) bool { return v.CategoryID == categoryID }, identity[team.Team]), nil
}

func (r *TeamRepository) ListByCategories(_ context.Context, categoryIDs []string) ([]team.Team, error) {
	wanted := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.teams.filter(func(v team.Team) bool {
		_, ok := wanted[v.CategoryID]
		return ok
	}, identity[team.Team]), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.teams.get(teamID)
	return item, ok, nil
}

func (r *TeamRepository) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.teams.filter(func(v team.Team) bool { return v.CategoryID == categoryID }, identity[team.Team])), nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.teams.insert(item.ID, item)
}

// Update writes metadata only. Derived stats and payment status keep their stored values.
func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.teams.get(item.ID)
	if !ok {
		return fmt.Errorf("team %s not found", item.ID)
	}
	item.Stats = current.Stats
	item.PaymentStatus = current.PaymentStatus
	return r.store.teams.replace(item.ID, item)
}

func (r *TeamRepository) UpdatePaymentStatus(_ context.Context, teamID string, status team.PaymentStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.teams.get(teamID)
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	item.PaymentStatus = status
	return r.store.teams.replace(teamID, item)
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.teams.remove(teamID)
}
