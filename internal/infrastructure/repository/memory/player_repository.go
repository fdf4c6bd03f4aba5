package memory

import (
	"context"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.players.filter(nil, clonePlayer), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.players.filter(func(v player.Player) bool { return v.TeamID == teamID }, clonePlayer), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.players.get(playerID)
	return clonePlayer(item), ok, nil
}

func (r *PlayerRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	items, err := r.ListByTeam(ctx, teamID)
	return len(items), err
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.players.insert(item.ID, clonePlayer(item))
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.players.replace(item.ID, clonePlayer(item))
}

func (r *PlayerRepository) UpdateStatus(_ context.Context, playerID string, status player.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.players.get(playerID)
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	item.Status = status
	return r.store.players.replace(playerID, item)
}

// SetCaptain rewrites every roster flag under one lock, so no reader sees two captains.
func (r *PlayerRepository) SetCaptain(_ context.Context, teamID, playerID string) error {
	return r.assign(teamID, playerID, func(p *player.Player, chosen bool) {
		p.IsCaptain = chosen
		if chosen {
			p.IsViceCaptain = false
		}
	})
}

func (r *PlayerRepository) SetViceCaptain(_ context.Context, teamID, playerID string) error {
	return r.assign(teamID, playerID, func(p *player.Player, chosen bool) {
		p.IsViceCaptain = chosen
		if chosen {
			p.IsCaptain = false
		}
	})
}

func (r *PlayerRepository) assign(teamID, playerID string, apply func(p *player.Player, chosen bool)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	target, ok := r.store.players.get(playerID)
	if !ok || target.TeamID != teamID {
		return fmt.Errorf("player %s not found in team %s", playerID, teamID)
	}

	for _, id := range r.store.players.orders {
		item := r.store.players.items[id]
		if item.TeamID != teamID {
			continue
		}
		apply(&item, id == playerID)
		r.store.players.items[id] = item
	}
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.players.remove(playerID)
}
