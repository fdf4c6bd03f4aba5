// Package cache decorates the hierarchy repositories with a TTL read cache.
// Every write drops the entity's whole key prefix.
package cache

import (
	"context"
	"slices"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/season"
	basecache "github.com/tochoprime/league-console/internal/platform/cache"
)

const (
	seasonPrefix   = "season:"
	divisionPrefix = "division:"
	categoryPrefix = "category:"
)

type cachedByID[T any] struct {
	value  T
	exists bool
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	items, err := basecache.Load(ctx, r.cache, seasonPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, seasonPrefix+"id:"+seasonID, func(ctx context.Context) (cachedByID[season.Season], error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		return cachedByID[season.Season]{value: item, exists: exists}, err
	})
	if err != nil {
		return season.Season{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	defer r.cache.DeletePrefix(ctx, seasonPrefix)
	return r.next.Create(ctx, item)
}

func (r *SeasonRepository) Update(ctx context.Context, item season.Season) error {
	defer r.cache.DeletePrefix(ctx, seasonPrefix)
	return r.next.Update(ctx, item)
}

func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	defer r.cache.DeletePrefix(ctx, seasonPrefix)
	return r.next.Delete(ctx, seasonID)
}

type DivisionRepository struct {
	next  division.Repository
	cache *basecache.Store
}

func NewDivisionRepository(next division.Repository, cache *basecache.Store) *DivisionRepository {
	return &DivisionRepository{next: next, cache: cache}
}

func (r *DivisionRepository) ListBySeason(ctx context.Context, seasonID string) ([]division.Division, error) {
	items, err := basecache.Load(ctx, r.cache, divisionPrefix+"season:"+seasonID, func(ctx context.Context) ([]division.Division, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *DivisionRepository) GetByID(ctx context.Context, divisionID string) (division.Division, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, divisionPrefix+"id:"+divisionID, func(ctx context.Context) (cachedByID[division.Division], error) {
		item, exists, err := r.next.GetByID(ctx, divisionID)
		return cachedByID[division.Division]{value: item, exists: exists}, err
	})
	if err != nil {
		return division.Division{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *DivisionRepository) Create(ctx context.Context, item division.Division) error {
	defer r.cache.DeletePrefix(ctx, divisionPrefix)
	return r.next.Create(ctx, item)
}

func (r *DivisionRepository) Update(ctx context.Context, item division.Division) error {
	defer r.cache.DeletePrefix(ctx, divisionPrefix)
	return r.next.Update(ctx, item)
}

func (r *DivisionRepository) Delete(ctx context.Context, divisionID string) error {
	defer r.cache.DeletePrefix(ctx, divisionPrefix)
	return r.next.Delete(ctx, divisionID)
}

type CategoryRepository struct {
	next  category.Repository
	cache *basecache.Store
}

func NewCategoryRepository(next category.Repository, cache *basecache.Store) *CategoryRepository {
	return &CategoryRepository{next: next, cache: cache}
}

func (r *CategoryRepository) ListByDivision(ctx context.Context, divisionID string) ([]category.Category, error) {
	items, err := basecache.Load(ctx, r.cache, categoryPrefix+"division:"+divisionID, func(ctx context.Context) ([]category.Category, error) {
		return r.next.ListByDivision(ctx, divisionID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]category.Category, 0, len(items))
	for _, item := range items {
		out = append(out, cloneCategory(item))
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, categoryPrefix+"id:"+categoryID, func(ctx context.Context) (cachedByID[category.Category], error) {
		item, exists, err := r.next.GetByID(ctx, categoryID)
		return cachedByID[category.Category]{value: item, exists: exists}, err
	})
	if err != nil {
		return category.Category{}, false, err
	}
	return cloneCategory(cached.value), cached.exists, nil
}

func (r *CategoryRepository) Create(ctx context.Context, item category.Category) error {
	defer r.cache.DeletePrefix(ctx, categoryPrefix)
	return r.next.Create(ctx, item)
}

func (r *CategoryRepository) CreateMany(ctx context.Context, items []category.Category) error {
	defer r.cache.DeletePrefix(ctx, categoryPrefix)
	return r.next.CreateMany(ctx, items)
}

func (r *CategoryRepository) Update(ctx context.Context, item category.Category) error {
	defer r.cache.DeletePrefix(ctx, categoryPrefix)
	return r.next.Update(ctx, item)
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID string) error {
	defer r.cache.DeletePrefix(ctx, categoryPrefix)
	return r.next.Delete(ctx, categoryID)
}

// cloneCategory keeps callers from mutating the cached rules slice.
func cloneCategory(item category.Category) category.Category {
	item.Rules = slices.Clone(item.Rules)
	return item
}

var (
	_ season.Repository   = (*SeasonRepository)(nil)
	_ division.Repository = (*DivisionRepository)(nil)
	_ category.Repository = (*CategoryRepository)(nil)
)
