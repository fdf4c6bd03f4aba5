package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/match"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
)

// FieldCatalog supplies the read-only fields shown when storage holds none.
type FieldCatalog interface {
	Fields() []field.Field
}

type FieldInput struct {
	Code       string
	Name       string
	Type       field.Type
	Capacity   int
	Status     field.Status
	Priority   int
	Zone       field.Zone
	Facilities []string
	Location   field.Location
	Notes      string
	IsActive   bool
}

// FieldListing is the board payload. Fallback is set when Fields came from the catalog.
type FieldListing struct {
	Fields   []field.Field
	Fallback bool
}

type FieldService struct {
	fieldRepo field.Repository
	matchRepo match.Repository
	catalog   FieldCatalog
	idGen     idgen.Generator
	logger    *logging.Logger
}

func NewFieldService(fieldRepo field.Repository, matchRepo match.Repository, catalog FieldCatalog, idGen idgen.Generator, logger *logging.Logger) *FieldService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FieldService{
		fieldRepo: fieldRepo,
		matchRepo: matchRepo,
		catalog:   catalog,
		idGen:     idGen,
		logger:    logger,
	}
}

// List returns stored fields, or the fallback catalog when none are stored.
// Catalog entries are never written back.
func (s *FieldService) List(ctx context.Context) (FieldListing, error) {
	items, err := s.fieldRepo.List(ctx)
	if err != nil {
		return FieldListing{}, fmt.Errorf("list fields: %w", err)
	}
	if len(items) > 0 || s.catalog == nil {
		field.SortByPriority(items)
		return FieldListing{Fields: items}, nil
	}

	fallback := s.catalog.Fields()
	for i := range fallback {
		fallback[i].IsFallback = true
	}
	field.SortByPriority(fallback)
	return FieldListing{Fields: fallback, Fallback: true}, nil
}

func (s *FieldService) Filter(ctx context.Context, filter field.Filter) (FieldListing, error) {
	listing, err := s.List(ctx)
	if err != nil {
		return FieldListing{}, err
	}
	listing.Fields = filter.Apply(listing.Fields)
	return listing, nil
}

// Map groups the listing into venue zones.
func (s *FieldService) Map(ctx context.Context) ([]field.ZoneGroup, error) {
	listing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return field.GroupByZone(listing.Fields), nil
}

func (s *FieldService) Get(ctx context.Context, fieldID string) (field.Field, error) {
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return field.Field{}, fmt.Errorf("%w: field id is required", ErrInvalidInput)
	}

	item, exists, err := s.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		return field.Field{}, fmt.Errorf("get field: %w", err)
	}
	if !exists {
		return field.Field{}, fmt.Errorf("%w: field=%s", ErrNotFound, fieldID)
	}
	return item, nil
}

func (s *FieldService) Create(ctx context.Context, input FieldInput) (field.Field, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FieldService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return field.Field{}, fmt.Errorf("generate field id: %w", err)
	}

	item := applyFieldInput(field.Field{ID: id}, input)
	if err := item.Validate(); err != nil {
		return field.Field{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.fieldRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create field failed", "code", item.Code, "error", err)
		return field.Field{}, fmt.Errorf("create field: %w", err)
	}

	s.logger.InfoContext(ctx, "field created", "field_id", item.ID, "code", item.Code)
	return item, nil
}

func (s *FieldService) Update(ctx context.Context, fieldID string, input FieldInput) (field.Field, error) {
	current, err := s.Get(ctx, fieldID)
	if err != nil {
		return field.Field{}, err
	}

	item := applyFieldInput(current, input)
	if err := item.Validate(); err != nil {
		return field.Field{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.fieldRepo.Update(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "update field failed", "field_id", item.ID, "error", err)
		return field.Field{}, fmt.Errorf("update field: %w", err)
	}

	s.logger.InfoContext(ctx, "field updated", "field_id", item.ID)
	return item, nil
}

// SetStatus is the quick toggle used by the board. Any status may follow any other.
func (s *FieldService) SetStatus(ctx context.Context, fieldID string, status field.Status) (field.Field, error) {
	if !status.Valid() {
		return field.Field{}, fmt.Errorf("%w: invalid field status %q", ErrInvalidInput, status)
	}

	item, err := s.Get(ctx, fieldID)
	if err != nil {
		return field.Field{}, err
	}

	if err := s.fieldRepo.UpdateStatus(ctx, item.ID, status); err != nil {
		s.logger.WarnContext(ctx, "update field status failed", "field_id", item.ID, "status", string(status), "error", err)
		return field.Field{}, fmt.Errorf("update field status: %w", err)
	}

	item.Status = status
	s.logger.InfoContext(ctx, "field status changed", "field_id", item.ID, "status", string(status))
	return item, nil
}

// Delete is restricted while any match is scheduled on the field.
func (s *FieldService) Delete(ctx context.Context, fieldID string) error {
	item, err := s.Get(ctx, fieldID)
	if err != nil {
		return err
	}

	matches, err := s.matchRepo.CountByField(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count matches by field: %w", err)
	}
	if matches > 0 {
		return fmt.Errorf("%w: field %s is assigned to %d matches", ErrConflict, item.ID, matches)
	}

	if err := s.fieldRepo.Delete(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "delete field failed", "field_id", item.ID, "error", err)
		return deleteError("delete field", err)
	}

	s.logger.InfoContext(ctx, "field deleted", "field_id", item.ID)
	return nil
}

func applyFieldInput(item field.Field, input FieldInput) field.Field {
	item.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	item.Name = strings.TrimSpace(input.Name)
	item.Type = input.Type
	if item.Type == "" {
		item.Type = field.TypeOther
	}
	item.Capacity = input.Capacity
	item.Status = input.Status
	if item.Status == "" {
		item.Status = field.StatusAvailable
	}
	item.Priority = input.Priority
	item.Zone = input.Zone
	if item.Zone == "" {
		item.Zone = field.ZoneUnassigned
	}
	item.Facilities = cleanRules(input.Facilities)
	item.Location = field.Location{
		Address: strings.TrimSpace(input.Location.Address),
		City:    strings.TrimSpace(input.Location.City),
	}
	item.Notes = strings.TrimSpace(input.Notes)
	item.IsActive = input.IsActive
	item.IsFallback = false
	return item
}
