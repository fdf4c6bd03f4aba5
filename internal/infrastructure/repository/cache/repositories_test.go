package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
	basecache "github.com/tochoprime/league-console/internal/platform/cache"
)

type countingSeasonRepo struct {
	season.Repository
	lists int
	gets  int
}

func (r *countingSeasonRepo) List(ctx context.Context) ([]season.Season, error) {
	r.lists++
	return r.Repository.List(ctx)
}

func (r *countingSeasonRepo) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	r.gets++
	return r.Repository.GetByID(ctx, id)
}

func newRepos(t *testing.T) memory.Repositories {
	t.Helper()
	store, err := memory.NewStore(memory.SeedDataset())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store.Repositories()
}

func TestSeasonRepository_CachesUntilWrite(t *testing.T) {
	ctx := context.Background()
	inner := &countingSeasonRepo{Repository: newRepos(t).Seasons}
	repo := NewSeasonRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list seasons: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 season, got %d", len(items))
		}
	}
	if inner.lists != 1 {
		t.Fatalf("expected one backend list, got %d", inner.lists)
	}

	if err := repo.Create(ctx, season.Season{ID: "season-otono", Name: "Otoño 2025", IsActive: true}); err != nil {
		t.Fatalf("create season: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list seasons after create: %v", err)
	}
	if len(items) != 2 || inner.lists != 2 {
		t.Fatalf("expected reload with 2 seasons, got %d seasons after %d loads", len(items), inner.lists)
	}
}

func TestSeasonRepository_CachesMissesToo(t *testing.T) {
	ctx := context.Background()
	inner := &countingSeasonRepo{Repository: newRepos(t).Seasons}
	repo := NewSeasonRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(ctx, "missing")
		if err != nil {
			t.Fatalf("get season: %v", err)
		}
		if exists {
			t.Fatalf("expected missing season")
		}
	}
	if inner.gets != 1 {
		t.Fatalf("expected one backend get, got %d", inner.gets)
	}
}

func TestSeasonRepository_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	inner := &countingSeasonRepo{Repository: newRepos(t).Seasons}
	repo := NewSeasonRepository(inner, basecache.NewStoreWithClock(time.Minute, clock))

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	clock.Advance(2 * time.Minute)
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	if inner.lists != 2 {
		t.Fatalf("expected reload after ttl, got %d loads", inner.lists)
	}
}

func TestCategoryRepository_ReturnsIndependentRules(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newRepos(t).Categories, basecache.NewStore(time.Minute))

	first, exists, err := repo.GetByID(ctx, memory.SeedCategoryVaronil)
	if err != nil || !exists {
		t.Fatalf("get category: exists=%v err=%v", exists, err)
	}
	first.Rules[0] = "mutated"

	second, _, err := repo.GetByID(ctx, memory.SeedCategoryVaronil)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if second.Rules[0] == "mutated" {
		t.Fatalf("cached category rules leaked a caller mutation")
	}
}

func TestCategoryRepository_DefaultSetInvalidatesListing(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newRepos(t).Categories, basecache.NewStore(time.Minute))

	items, err := repo.ListByDivision(ctx, memory.SeedDivisionFemenil)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty division, got %d", len(items))
	}

	set := category.DefaultSet(memory.SeedDivisionFemenil, memory.SeedSeasonID)
	for i := range set {
		set[i].ID = "cat-" + set[i].Name
	}
	if err := repo.CreateMany(ctx, set); err != nil {
		t.Fatalf("create default set: %v", err)
	}

	items, err = repo.ListByDivision(ctx, memory.SeedDivisionFemenil)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(items) != len(category.DefaultLetters) {
		t.Fatalf("expected %d categories, got %d", len(category.DefaultLetters), len(items))
	}
}
