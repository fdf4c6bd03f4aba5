package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/team"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type CreateCategoryInput struct {
	DivisionID string
	// SeasonID is optional; when set it must match the division's season.
	SeasonID    string
	Name        string
	Level       int
	TeamLimit   int
	PlayerLimit int
	Price       int64
	Rules       []string
	IsActive    bool
}

// UpdateCategoryInput patches only the non-nil fields.
type UpdateCategoryInput struct {
	Name        *string
	Level       *int
	TeamLimit   *int
	PlayerLimit *int
	Price       *int64
	Rules       []string
	IsActive    *bool
}

type CategoryService struct {
	divisionRepo division.Repository
	categoryRepo category.Repository
	teamRepo     team.Repository
	idGen        idgen.Generator
	logger       *logging.Logger
}

func NewCategoryService(
	divisionRepo division.Repository,
	categoryRepo category.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *CategoryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CategoryService{
		divisionRepo: divisionRepo,
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

// ListByDivision returns the division's categories sorted by level.
func (s *CategoryService) ListByDivision(ctx context.Context, divisionID string) ([]category.Category, error) {
	divisionID = strings.TrimSpace(divisionID)
	if divisionID == "" {
		return nil, fmt.Errorf("%w: division id is required", ErrInvalidInput)
	}

	items, err := s.categoryRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list categories by division: %w", err)
	}
	category.SortByLevel(items)
	return items, nil
}

func (s *CategoryService) Get(ctx context.Context, categoryID string) (category.Category, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return category.Category{}, fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}

	item, exists, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return category.Category{}, fmt.Errorf("get category: %w", err)
	}
	if !exists {
		return category.Category{}, fmt.Errorf("%w: category=%s", ErrNotFound, categoryID)
	}
	return item, nil
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (category.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CategoryService.Create", attribute.String("division.id", input.DivisionID))
	defer span.End()

	// Name is checked before any gateway call so a bad form never reaches storage.
	name := category.NormalizeName(input.Name)
	if err := category.ValidateName(name); err != nil {
		return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	parent, err := s.lookupDivision(ctx, input.DivisionID)
	if err != nil {
		return category.Category{}, err
	}
	if seasonID := strings.TrimSpace(input.SeasonID); seasonID != "" && seasonID != parent.SeasonID {
		return category.Category{}, fmt.Errorf("%w: season %s does not own division %s", ErrInvalidInput, seasonID, parent.ID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return category.Category{}, fmt.Errorf("generate category id: %w", err)
	}

	item := category.Category{
		ID:          id,
		DivisionID:  parent.ID,
		SeasonID:    parent.SeasonID,
		Name:        name,
		Level:       input.Level,
		TeamLimit:   input.TeamLimit,
		PlayerLimit: input.PlayerLimit,
		Price:       input.Price,
		Rules:       cleanRules(input.Rules),
		IsActive:    input.IsActive,
	}
	if err := item.Validate(); err != nil {
		return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.categoryRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create category failed", "division_id", parent.ID, "error", err)
		return category.Category{}, categoryWriteError("create category", err)
	}

	s.logger.InfoContext(ctx, "category created", "category_id", item.ID, "division_id", parent.ID)
	return item, nil
}

func (s *CategoryService) Update(ctx context.Context, categoryID string, input UpdateCategoryInput) (category.Category, error) {
	if input.Name != nil {
		name := category.NormalizeName(*input.Name)
		if err := category.ValidateName(name); err != nil {
			return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		input.Name = &name
	}

	item, err := s.Get(ctx, categoryID)
	if err != nil {
		return category.Category{}, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Level != nil {
		item.Level = *input.Level
	}
	if input.TeamLimit != nil {
		item.TeamLimit = *input.TeamLimit
	}
	if input.PlayerLimit != nil {
		item.PlayerLimit = *input.PlayerLimit
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Rules != nil {
		item.Rules = cleanRules(input.Rules)
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := item.Validate(); err != nil {
		return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.categoryRepo.Update(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "update category failed", "category_id", item.ID, "error", err)
		return category.Category{}, categoryWriteError("update category", err)
	}

	s.logger.InfoContext(ctx, "category updated", "category_id", item.ID)
	return item, nil
}

// CanCreateDefaultSet reports whether the division has no categories yet.
func (s *CategoryService) CanCreateDefaultSet(ctx context.Context, divisionID string) (bool, error) {
	items, err := s.ListByDivision(ctx, divisionID)
	if err != nil {
		return false, err
	}
	return len(items) == 0, nil
}

// CreateDefaultSet creates the A..G tiers once. A division that already has
// categories is rejected with ErrConflict.
func (s *CategoryService) CreateDefaultSet(ctx context.Context, divisionID string) ([]category.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CategoryService.CreateDefaultSet", attribute.String("division.id", divisionID))
	defer span.End()

	parent, err := s.lookupDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanCreateDefaultSet(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: division %s already has categories", ErrConflict, parent.ID)
	}

	items := category.DefaultSet(parent.ID, parent.SeasonID)
	for i := range items {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate category id: %w", err)
		}
		items[i].ID = id
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := s.categoryRepo.CreateMany(ctx, items); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create default categories failed", "division_id", parent.ID, "error", err)
		return nil, categoryWriteError("create default categories", err)
	}

	s.logger.InfoContext(ctx, "default categories created", "division_id", parent.ID, "count", len(items))
	return items, nil
}

// Delete refuses while teams are registered in the category.
func (s *CategoryService) Delete(ctx context.Context, categoryID string) error {
	item, err := s.Get(ctx, categoryID)
	if err != nil {
		return err
	}

	count, err := s.teamRepo.CountByCategory(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count teams by category: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category %s still has %d teams", ErrConflict, item.ID, count)
	}

	if err := s.categoryRepo.Delete(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "delete category failed", "category_id", item.ID, "error", err)
		return deleteError("delete category", err)
	}

	s.logger.InfoContext(ctx, "category deleted", "category_id", item.ID)
	return nil
}

func (s *CategoryService) lookupDivision(ctx context.Context, divisionID string) (division.Division, error) {
	divisionID = strings.TrimSpace(divisionID)
	if divisionID == "" {
		return division.Division{}, fmt.Errorf("%w: division id is required", ErrInvalidInput)
	}

	item, exists, err := s.divisionRepo.GetByID(ctx, divisionID)
	if err != nil {
		return division.Division{}, fmt.Errorf("get division: %w", err)
	}
	if !exists {
		return division.Division{}, fmt.Errorf("%w: division=%s", ErrNotFound, divisionID)
	}
	return item, nil
}

func cleanRules(rules []string) []string {
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule = strings.TrimSpace(rule); rule != "" {
			out = append(out, rule)
		}
	}
	return out
}

func categoryWriteError(op string, err error) error {
	if errors.Is(err, category.ErrDuplicateName) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
