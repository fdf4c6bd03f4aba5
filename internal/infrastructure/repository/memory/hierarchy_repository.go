package memory

import (
	"context"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.seasons.filter(nil, cloneSeason), nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.seasons.get(seasonID)
	return cloneSeason(item), ok, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.seasons.insert(item.ID, cloneSeason(item))
}

func (r *SeasonRepository) Update(_ context.Context, item season.Season) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.seasons.replace(item.ID, cloneSeason(item))
}

func (r *SeasonRepository) Delete(_ context.Context, seasonID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.seasons.remove(seasonID)
}

type DivisionRepository struct {
	store *Store
}

func (r *DivisionRepository) ListBySeason(_ context.Context, seasonID string) ([]division.Division, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.divisions.filter(func(v division.Division) bool { return v.SeasonID == seasonID }, identity[division.Division]), nil
}

func (r *DivisionRepository) GetByID(_ context.Context, divisionID string) (division.Division, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.divisions.get(divisionID)
	return item, ok, nil
}

func (r *DivisionRepository) Create(_ context.Context, item division.Division) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.divisions.insert(item.ID, item)
}

func (r *DivisionRepository) Update(_ context.Context, item division.Division) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.divisions.replace(item.ID, item)
}

func (r *DivisionRepository) Delete(_ context.Context, divisionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.divisions.remove(divisionID)
}

type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) ListByDivision(_ context.Context, divisionID string) ([]category.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.categories.filter(func(v category.Category) bool { return v.DivisionID == divisionID }, cloneCategory), nil
}

func (r *CategoryRepository) GetByID(_ context.Context, categoryID string) (category.Category, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.categories.get(categoryID)
	return cloneCategory(item), ok, nil
}

func (r *CategoryRepository) Create(_ context.Context, item category.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.nameTaken(item) {
		return category.ErrDuplicateName
	}
	return r.store.categories.insert(item.ID, cloneCategory(item))
}

// nameTaken reports whether another category in the same division uses item's letter.
// Callers hold the store lock.
func (r *CategoryRepository) nameTaken(item category.Category) bool {
	for _, existing := range r.store.categories.items {
		if existing.ID != item.ID && existing.DivisionID == item.DivisionID && existing.Name == item.Name {
			return true
		}
	}
	return false
}

// CreateMany stores all items or none.
func (r *CategoryRepository) CreateMany(_ context.Context, items []category.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	names := make(map[string]struct{}, len(items))
	for _, item := range items {
		_, dup := seen[item.ID]
		if _, exists := r.store.categories.get(item.ID); exists || dup {
			return fmt.Errorf("duplicate id %s", item.ID)
		}
		key := item.DivisionID + "/" + item.Name
		if _, clash := names[key]; clash || r.nameTaken(item) {
			return category.ErrDuplicateName
		}
		seen[item.ID] = struct{}{}
		names[key] = struct{}{}
	}
	for _, item := range items {
		if err := r.store.categories.insert(item.ID, cloneCategory(item)); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) Update(_ context.Context, item category.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.nameTaken(item) {
		return category.ErrDuplicateName
	}
	return r.store.categories.replace(item.ID, cloneCategory(item))
}

func (r *CategoryRepository) Delete(_ context.Context, categoryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.categories.remove(categoryID)
}

type RefereeRepository struct {
	store *Store
}

func (r *RefereeRepository) ListBySeason(_ context.Context, seasonID string) ([]referee.Referee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.referees.filter(func(v referee.Referee) bool { return v.SeasonID == seasonID }, identity[referee.Referee]), nil
}

func (r *RefereeRepository) Create(_ context.Context, item referee.Referee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.referees.insert(item.ID, item)
}
