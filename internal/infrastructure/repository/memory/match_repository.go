package memory

import (
	"context"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/team"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.matches.filter(func(v match.Match) bool { return v.SeasonID == seasonID }, cloneMatch), nil
}

func (r *MatchRepository) ListByDivision(_ context.Context, divisionID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.matches.filter(func(v match.Match) bool { return v.DivisionID == divisionID }, cloneMatch), nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.matches.filter(func(v match.Match) bool { return v.Involves(teamID) }, cloneMatch), nil
}

func (r *MatchRepository) CountByField(_ context.Context, fieldID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	items := r.store.matches.filter(func(v match.Match) bool { return v.FieldID == fieldID }, identity[match.Match])
	return len(items), nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.matches.get(matchID)
	return cloneMatch(item), ok, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.matches.insert(item.ID, cloneMatch(item))
}

// CreateMany stores all items or none.
func (r *MatchRepository) CreateMany(_ context.Context, items []match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		_, dup := seen[item.ID]
		if _, exists := r.store.matches.get(item.ID); exists || dup {
			return fmt.Errorf("duplicate id %s", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	for _, item := range items {
		if err := r.store.matches.insert(item.ID, cloneMatch(item)); err != nil {
			return err
		}
	}
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match, refold []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkTeams(refold); err != nil {
		return err
	}
	if err := r.store.matches.replace(item.ID, cloneMatch(item)); err != nil {
		return err
	}
	return r.refold(refold)
}

func (r *MatchRepository) Delete(_ context.Context, matchID string, refold []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkTeams(refold); err != nil {
		return err
	}
	if err := r.store.matches.remove(matchID); err != nil {
		return err
	}
	return r.refold(refold)
}

// checkTeams runs before the match write so refold cannot fail halfway.
func (r *MatchRepository) checkTeams(teamIDs []string) error {
	for _, teamID := range teamIDs {
		if _, ok := r.store.teams.get(teamID); !ok {
			return fmt.Errorf("team %s not found", teamID)
		}
	}
	return nil
}

func (r *MatchRepository) refold(teamIDs []string) error {
	for _, teamID := range teamIDs {
		item, _ := r.store.teams.get(teamID)
		played := r.store.matches.filter(func(v match.Match) bool { return v.Involves(teamID) }, identity[match.Match])
		item.Stats = team.StatsFrom(teamID, played)
		if err := r.store.teams.replace(teamID, item); err != nil {
			return err
		}
	}
	return nil
}
