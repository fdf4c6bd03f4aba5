package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/phone"
	"go.opentelemetry.io/otel/attribute"
)

type CreateSeasonInput struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  bool
}

type UpdateSeasonInput struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}

type CreateDivisionInput struct {
	SeasonID string
	Name     string
	Color    string
}

type UpdateDivisionInput struct {
	Name  *string
	Color *string
}

type CreateRefereeInput struct {
	SeasonID string
	Name     string
	Phone    string
	Email    string
}

// SeasonService administers the top of the hierarchy: seasons, their
// divisions and referees. Deletes are restricted while children exist.
type SeasonService struct {
	seasonRepo   season.Repository
	divisionRepo division.Repository
	categoryRepo category.Repository
	refereeRepo  referee.Repository
	phones       *phone.Normalizer
	idGen        idgen.Generator
	logger       *logging.Logger
	clock        clockwork.Clock
}

func NewSeasonService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	categoryRepo category.Repository,
	refereeRepo referee.Repository,
	phones *phone.Normalizer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	if phones == nil {
		phones = phone.NewNormalizer(phone.DefaultRegion)
	}

	return &SeasonService{
		seasonRepo:   seasonRepo,
		divisionRepo: divisionRepo,
		categoryRepo: categoryRepo,
		refereeRepo:  refereeRepo,
		phones:       phones,
		idGen:        idGen,
		logger:       logger,
		clock:        clockwork.NewRealClock(),
	}
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	item := season.Season{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsActive:  input.IsActive,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create season failed", "error", err)
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	s.logger.InfoContext(ctx, "season created", "season_id", item.ID)
	return item, nil
}

func (s *SeasonService) UpdateSeason(ctx context.Context, seasonID string, input UpdateSeasonInput) (season.Season, error) {
	item, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.StartDate != nil {
		item.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		item.EndDate = input.EndDate
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Update(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "update season failed", "season_id", item.ID, "error", err)
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}
	return item, nil
}

func (s *SeasonService) DeleteSeason(ctx context.Context, seasonID string) error {
	item, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return err
	}

	divisions, err := s.divisionRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list divisions: %w", err)
	}
	if len(divisions) > 0 {
		return fmt.Errorf("%w: season %s still has %d divisions", ErrConflict, item.ID, len(divisions))
	}
	referees, err := s.refereeRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list referees: %w", err)
	}
	if len(referees) > 0 {
		return fmt.Errorf("%w: season %s still has %d referees", ErrConflict, item.ID, len(referees))
	}

	if err := s.seasonRepo.Delete(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "delete season failed", "season_id", item.ID, "error", err)
		return deleteError("delete season", err)
	}
	s.logger.InfoContext(ctx, "season deleted", "season_id", item.ID)
	return nil
}

func (s *SeasonService) ListDivisions(ctx context.Context, seasonID string) ([]division.Division, error) {
	if _, err := s.GetSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	items, err := s.divisionRepo.ListBySeason(ctx, strings.TrimSpace(seasonID))
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return items, nil
}

func (s *SeasonService) GetDivision(ctx context.Context, divisionID string) (division.Division, error) {
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

func (s *SeasonService) CreateDivision(ctx context.Context, input CreateDivisionInput) (division.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateDivision", attribute.String("season.id", input.SeasonID))
	defer span.End()

	if strings.TrimSpace(input.SeasonID) == "" {
		return division.Division{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	parent, err := s.GetSeason(ctx, input.SeasonID)
	if err != nil {
		return division.Division{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return division.Division{}, fmt.Errorf("generate division id: %w", err)
	}
	item := division.Division{
		ID:       id,
		SeasonID: parent.ID,
		Name:     strings.TrimSpace(input.Name),
		Color:    strings.TrimSpace(input.Color),
	}
	if err := item.Validate(); err != nil {
		return division.Division{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.divisionRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create division failed", "season_id", parent.ID, "error", err)
		return division.Division{}, fmt.Errorf("create division: %w", err)
	}
	s.logger.InfoContext(ctx, "division created", "division_id", item.ID, "season_id", parent.ID)
	return item, nil
}

func (s *SeasonService) UpdateDivision(ctx context.Context, divisionID string, input UpdateDivisionInput) (division.Division, error) {
	item, err := s.GetDivision(ctx, divisionID)
	if err != nil {
		return division.Division{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		item.Color = strings.TrimSpace(*input.Color)
	}
	if err := item.Validate(); err != nil {
		return division.Division{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.divisionRepo.Update(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "update division failed", "division_id", item.ID, "error", err)
		return division.Division{}, fmt.Errorf("update division: %w", err)
	}
	return item, nil
}

func (s *SeasonService) DeleteDivision(ctx context.Context, divisionID string) error {
	item, err := s.GetDivision(ctx, divisionID)
	if err != nil {
		return err
	}

	categories, err := s.categoryRepo.ListByDivision(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(categories) > 0 {
		return fmt.Errorf("%w: division %s still has %d categories", ErrConflict, item.ID, len(categories))
	}

	if err := s.divisionRepo.Delete(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "delete division failed", "division_id", item.ID, "error", err)
		return deleteError("delete division", err)
	}
	s.logger.InfoContext(ctx, "division deleted", "division_id", item.ID)
	return nil
}

func (s *SeasonService) ListReferees(ctx context.Context, seasonID string) ([]referee.Referee, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	items, err := s.refereeRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list referees: %w", err)
	}
	return items, nil
}

func (s *SeasonService) CreateReferee(ctx context.Context, input CreateRefereeInput) (referee.Referee, error) {
	parent, err := s.GetSeason(ctx, input.SeasonID)
	if err != nil {
		return referee.Referee{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return referee.Referee{}, fmt.Errorf("generate referee id: %w", err)
	}
	item := referee.Referee{
		ID:       id,
		SeasonID: parent.ID,
		Name:     strings.TrimSpace(input.Name),
		Phone:    s.phones.Normalize(input.Phone),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		IsActive: true,
	}
	if err := item.Validate(); err != nil {
		return referee.Referee{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.refereeRepo.Create(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "create referee failed", "season_id", parent.ID, "error", err)
		return referee.Referee{}, fmt.Errorf("create referee: %w", err)
	}
	s.logger.InfoContext(ctx, "referee created", "referee_id", item.ID, "season_id", parent.ID)
	return item, nil
}
