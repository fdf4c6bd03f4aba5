package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// BoardQuery narrows the match board. StatusLabel is the localized label.
type BoardQuery struct {
	SeasonID    string
	DivisionID  string
	StatusLabel string
}

type Board struct {
	Seasons   []season.Season
	Divisions []division.Division
	Referees  []referee.Referee
	Teams     []team.Team
	Matches   []match.Match
	Rounds    []match.RoundGroup
}

type GenerateCalendarInput struct {
	SeasonID   string
	DivisionID string
	TeamIDs    []string
	StartDate  time.Time
	// FieldIDs restricts allocation. Empty means every available field.
	FieldIDs []string
}

type CreateMatchInput struct {
	DivisionID   string
	HomeTeamID   string
	AwayTeamID   string
	FieldID      string
	Round        int
	MatchDate    time.Time
	MatchTime    string
	RefereeName  string
	IsPlayoff    bool
	PlayoffStage string
	Notes        string
}

// UpdateMatchInput patches scheduling data. Results go through RecordResult.
type UpdateMatchInput struct {
	FieldID      *string
	Round        *int
	MatchDate    *time.Time
	MatchTime    *string
	Status       *match.Status
	RefereeName  *string
	IsPlayoff    *bool
	PlayoffStage *string
	Notes        *string
}

type MatchService struct {
	seasonRepo   season.Repository
	divisionRepo division.Repository
	categoryRepo category.Repository
	teamRepo     team.Repository
	matchRepo    match.Repository
	refereeRepo  referee.Repository
	fieldRepo    field.Repository
	calendar     match.CalendarGenerator
	idGen        idgen.Generator
	logger       *logging.Logger
	clock        clockwork.Clock
}

func NewMatchService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	categoryRepo category.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	refereeRepo referee.Repository,
	fieldRepo field.Repository,
	calendar match.CalendarGenerator,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		seasonRepo:   seasonRepo,
		divisionRepo: divisionRepo,
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		refereeRepo:  refereeRepo,
		fieldRepo:    fieldRepo,
		calendar:     calendar,
		idGen:        idGen,
		logger:       logger,
		clock:        clockwork.NewRealClock(),
	}
}

// Board loads seasons, then the selected season's divisions, matches and
// referees. Selecting a division replaces the season-wide match list with
// the division's and loads its teams.
func (s *MatchService) Board(ctx context.Context, query BoardQuery) (Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Board")
	defer span.End()

	var out Board
	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("list seasons: %w", err)
	}
	out.Seasons = seasons

	seasonID := strings.TrimSpace(query.SeasonID)
	if seasonID == "" {
		return out, nil
	}

	if out.Divisions, err = s.divisionRepo.ListBySeason(ctx, seasonID); err != nil {
		return Board{}, fmt.Errorf("list divisions: %w", err)
	}
	if out.Matches, err = s.matchRepo.ListBySeason(ctx, seasonID); err != nil {
		return Board{}, fmt.Errorf("list matches by season: %w", err)
	}
	if out.Referees, err = s.refereeRepo.ListBySeason(ctx, seasonID); err != nil {
		return Board{}, fmt.Errorf("list referees: %w", err)
	}

	if divisionID := strings.TrimSpace(query.DivisionID); divisionID != "" {
		div, err := s.lookupDivision(ctx, divisionID)
		if err != nil {
			return Board{}, err
		}
		if div.SeasonID != seasonID {
			return Board{}, fmt.Errorf("%w: division %s is not in season %s", ErrInvalidInput, div.ID, seasonID)
		}
		if out.Teams, err = teamsByDivision(ctx, s.categoryRepo, s.teamRepo, div.ID); err != nil {
			return Board{}, err
		}
		if out.Matches, err = s.matchRepo.ListByDivision(ctx, div.ID); err != nil {
			return Board{}, fmt.Errorf("list matches by division: %w", err)
		}
	}

	out.Matches = match.FilterByStatusLabel(out.Matches, strings.TrimSpace(query.StatusLabel))
	out.Rounds = match.GroupByRound(out.Matches)
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

// GenerateCalendar asks the calendar collaborator for a slate starting on
// the first Sunday on or after StartDate, stores it and returns the
// division's reloaded matches.
func (s *MatchService) GenerateCalendar(ctx context.Context, input GenerateCalendarInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GenerateCalendar",
		attribute.String("season.id", input.SeasonID),
		attribute.String("division.id", input.DivisionID),
	)
	defer span.End()

	teamIDs := uniqueTrimmed(input.TeamIDs)
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("%w: at least two teams are required to generate a calendar", ErrInvalidInput)
	}
	if s.calendar == nil {
		return nil, fmt.Errorf("%w: calendar generator is not configured", ErrDependencyUnavailable)
	}

	div, err := s.lookupDivision(ctx, input.DivisionID)
	if err != nil {
		return nil, err
	}
	if seasonID := strings.TrimSpace(input.SeasonID); seasonID != "" && seasonID != div.SeasonID {
		return nil, fmt.Errorf("%w: division %s is not in season %s", ErrInvalidInput, div.ID, seasonID)
	}

	teams, err := teamsByDivision(ctx, s.categoryRepo, s.teamRepo, div.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}
	for _, id := range teamIDs {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: team %s is not in division %s", ErrInvalidInput, id, div.ID)
		}
	}

	fieldIDs := uniqueTrimmed(input.FieldIDs)
	if len(fieldIDs) == 0 {
		if fieldIDs, err = s.availableFieldIDs(ctx); err != nil {
			return nil, err
		}
	}

	start := input.StartDate
	if start.IsZero() {
		start = s.clock.Now()
	}
	req := match.CalendarRequest{
		SeasonID:   div.SeasonID,
		DivisionID: div.ID,
		TeamIDs:    teamIDs,
		StartDate:  match.NextSunday(start),
		FieldIDs:   fieldIDs,
	}

	generated, err := s.calendar.GenerateCalendar(ctx, req)
	if err != nil {
		recordSpanError(span, err)
		s.logger.ErrorContext(ctx, "calendar generation failed", "division_id", div.ID, "error", err)
		return nil, fmt.Errorf("%w: generate calendar: %v", ErrDependencyUnavailable, err)
	}

	toStore := make([]match.Match, 0, len(generated))
	for _, item := range generated {
		if item.ID == "" {
			if item.ID, err = s.idGen.NewID(); err != nil {
				return nil, fmt.Errorf("generate match id: %w", err)
			}
		}
		item.SeasonID = div.SeasonID
		item.DivisionID = div.ID
		if item.Status == "" {
			item.Status = match.StatusScheduled
		}
		item.HomeTeam = snapshotOf(byID, item.HomeTeamID)
		item.AwayTeam = snapshotOf(byID, item.AwayTeamID)
		item = item.Normalize()
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: calendar returned an invalid match: %v", ErrDependencyUnavailable, err)
		}
		toStore = append(toStore, item)
	}

	if err := s.matchRepo.CreateMany(ctx, toStore); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "store generated calendar failed", "division_id", div.ID, "error", err)
		return nil, fmt.Errorf("create matches: %w", err)
	}
	s.logger.InfoContext(ctx, "calendar generated",
		"division_id", div.ID,
		"teams", len(teamIDs),
		"matches", len(toStore),
		"start_date", req.StartDate.Format(time.DateOnly),
	)

	reloaded, err := s.matchRepo.ListByDivision(ctx, div.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by division: %w", err)
	}
	return reloaded, nil
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	div, err := s.lookupDivision(ctx, input.DivisionID)
	if err != nil {
		return match.Match{}, err
	}

	home, away := strings.TrimSpace(input.HomeTeamID), strings.TrimSpace(input.AwayTeamID)
	if home == "" || away == "" || home == away {
		return match.Match{}, fmt.Errorf("%w: two different teams are required", ErrInvalidInput)
	}
	teams, err := teamsByDivision(ctx, s.categoryRepo, s.teamRepo, div.ID)
	if err != nil {
		return match.Match{}, err
	}
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}
	for _, id := range []string{home, away} {
		if _, ok := byID[id]; !ok {
			return match.Match{}, fmt.Errorf("%w: team %s is not in division %s", ErrInvalidInput, id, div.ID)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	item := match.Match{
		ID:           id,
		SeasonID:     div.SeasonID,
		DivisionID:   div.ID,
		HomeTeamID:   home,
		AwayTeamID:   away,
		HomeTeam:     snapshotOf(byID, home),
		AwayTeam:     snapshotOf(byID, away),
		FieldID:      strings.TrimSpace(input.FieldID),
		Round:        input.Round,
		MatchDate:    input.MatchDate,
		MatchTime:    strings.TrimSpace(input.MatchTime),
		Status:       match.StatusScheduled,
		RefereeName:  strings.TrimSpace(input.RefereeName),
		IsPlayoff:    input.IsPlayoff,
		PlayoffStage: strings.TrimSpace(input.PlayoffStage),
		Notes:        strings.TrimSpace(input.Notes),
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "create match failed", "division_id", div.ID, "error", err)
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	s.logger.InfoContext(ctx, "match created", "match_id", item.ID, "division_id", div.ID)
	return item, nil
}

func (s *MatchService) Update(ctx context.Context, matchID string, input UpdateMatchInput) (match.Match, error) {
	current, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if input.Status != nil && *input.Status == match.StatusCompleted && current.Status != match.StatusCompleted {
		return match.Match{}, fmt.Errorf("%w: record the final score to complete a match", ErrInvalidInput)
	}

	item := current
	if input.FieldID != nil {
		item.FieldID = strings.TrimSpace(*input.FieldID)
	}
	if input.Round != nil {
		item.Round = *input.Round
	}
	if input.MatchDate != nil {
		item.MatchDate = *input.MatchDate
	}
	if input.MatchTime != nil {
		item.MatchTime = strings.TrimSpace(*input.MatchTime)
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.RefereeName != nil {
		item.RefereeName = strings.TrimSpace(*input.RefereeName)
	}
	if input.IsPlayoff != nil {
		item.IsPlayoff = *input.IsPlayoff
	}
	if input.PlayoffStage != nil {
		item.PlayoffStage = strings.TrimSpace(*input.PlayoffStage)
	}
	if input.Notes != nil {
		item.Notes = strings.TrimSpace(*input.Notes)
	}
	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var refold []string
	if current.Status == match.StatusCompleted && item.Status != match.StatusCompleted {
		refold = item.TeamIDs()
	}
	if err := s.matchRepo.Update(ctx, item, refold); err != nil {
		s.logger.WarnContext(ctx, "update match failed", "match_id", item.ID, "error", err)
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match updated", "match_id", item.ID, "status", string(item.Status))
	return item, nil
}

// RecordResult completes a match and refolds both teams' stats.
func (s *MatchService) RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult", attribute.String("match.id", matchID))
	defer span.End()

	if homeScore < 0 || awayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}
	current, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if current.Status == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: match %s is cancelled", ErrConflict, current.ID)
	}

	item := current.Complete(homeScore, awayScore)
	if err := s.matchRepo.Update(ctx, item, item.TeamIDs()); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "record match result failed", "match_id", item.ID, "error", err)
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"match_id", item.ID,
		"home_score", homeScore,
		"away_score", awayScore,
		"winner", string(item.Winner),
	)
	return item, nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, matchID string) error {
	item, err := s.Get(ctx, matchID)
	if err != nil {
		return err
	}

	var refold []string
	if item.Status == match.StatusCompleted {
		refold = item.TeamIDs()
	}
	if err := s.matchRepo.Delete(ctx, item.ID, refold); err != nil {
		s.logger.WarnContext(ctx, "delete match failed", "match_id", item.ID, "error", err)
		return fmt.Errorf("delete match: %w", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", item.ID)
	return nil
}

// Standings recomputes the division table from completed matches.
func (s *MatchService) Standings(ctx context.Context, divisionID string) ([]team.Standing, error) {
	div, err := s.lookupDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	teams, err := teamsByDivision(ctx, s.categoryRepo, s.teamRepo, div.ID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByDivision(ctx, div.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by division: %w", err)
	}
	return team.StandingsFrom(teams, matches), nil
}

func (s *MatchService) availableFieldIDs(ctx context.Context) ([]string, error) {
	if s.fieldRepo == nil {
		return nil, nil
	}
	fields, err := s.fieldRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	fields = field.Filter{Status: field.StatusAvailable}.Apply(fields)
	field.SortByPriority(fields)

	out := make([]string, 0, len(fields))
	for _, item := range fields {
		if item.IsActive {
			out = append(out, item.ID)
		}
	}
	return out, nil
}

func (s *MatchService) lookupDivision(ctx context.Context, divisionID string) (division.Division, error) {
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

func snapshotOf(teams map[string]team.Team, teamID string) *match.TeamSnapshot {
	item, ok := teams[teamID]
	if !ok {
		return nil
	}
	return &match.TeamSnapshot{Name: item.Name, PrimaryColor: item.PrimaryColor}
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
