package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc/pool"
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/phone"
	"go.opentelemetry.io/otel/attribute"
)

const recentMatchLimit = 5

type CreateTeamInput struct {
	CategoryID     string
	Name           string
	ShortName      string
	PrimaryColor   string
	SecondaryColor string
	Coach          team.Coach
	Notes          string
}

// UpdateTeamInput patches display and registration metadata only.
// Stats and payment status are derived and cannot be set here.
type UpdateTeamInput struct {
	Name           *string
	ShortName      *string
	PrimaryColor   *string
	SecondaryColor *string
	Coach          *team.Coach
	Notes          *string
	Status         *team.Status
}

type ListTeamsQuery struct {
	SeasonID   string
	DivisionID string
	CategoryID string
}

type PaymentInput struct {
	Amount        int64
	Date          *time.Time
	Method        payment.Method
	Reference     string
	Notes         string
	Status        payment.Status
	InvoiceNumber string
	CreatedBy     string
}

type AddPaymentResult struct {
	Payment       payment.Payment
	PaymentStatus team.PaymentStatus
}

type Balance struct {
	Total     int64
	Price     int64
	Remaining int64
}

// TeamDetail is the composed team screen.
type TeamDetail struct {
	Team          team.Team
	Record        team.Record
	Category      category.Category
	Division      division.Division
	Season        season.Season
	Players       []player.Player
	Payments      []payment.Payment
	Balance       Balance
	RecentMatches []match.Match
}

type TeamService struct {
	seasonRepo   season.Repository
	divisionRepo division.Repository
	categoryRepo category.Repository
	teamRepo     team.Repository
	playerRepo   player.Repository
	paymentRepo  payment.Repository
	matchRepo    match.Repository
	phones       *phone.Normalizer
	idGen        idgen.Generator
	logger       *logging.Logger
	clock        clockwork.Clock
}

func NewTeamService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	categoryRepo category.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	paymentRepo payment.Repository,
	matchRepo match.Repository,
	phones *phone.Normalizer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if phones == nil {
		phones = phone.NewNormalizer(phone.DefaultRegion)
	}

	return &TeamService{
		seasonRepo:   seasonRepo,
		divisionRepo: divisionRepo,
		categoryRepo: categoryRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		paymentRepo:  paymentRepo,
		matchRepo:    matchRepo,
		phones:       phones,
		idGen:        idGen,
		logger:       logger,
		clock:        clockwork.NewRealClock(),
	}
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	return lookupTeam(ctx, s.teamRepo, teamID)
}

func (s *TeamService) List(ctx context.Context, query ListTeamsQuery) ([]team.Team, error) {
	switch {
	case strings.TrimSpace(query.CategoryID) != "":
		items, err := s.teamRepo.ListByCategory(ctx, strings.TrimSpace(query.CategoryID))
		if err != nil {
			return nil, fmt.Errorf("list teams by category: %w", err)
		}
		return items, nil
	case strings.TrimSpace(query.DivisionID) != "":
		return teamsByDivision(ctx, s.categoryRepo, s.teamRepo, strings.TrimSpace(query.DivisionID))
	case strings.TrimSpace(query.SeasonID) != "":
		items, err := s.teamRepo.ListBySeason(ctx, strings.TrimSpace(query.SeasonID))
		if err != nil {
			return nil, fmt.Errorf("list teams by season: %w", err)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: season, division or category id is required", ErrInvalidInput)
	}
}

// GetDetail resolves the ancestry chain in order, then loads the roster,
// the ledger and recent results concurrently.
func (s *TeamService) GetDetail(ctx context.Context, teamID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetDetail", attribute.String("team.id", teamID))
	defer span.End()

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return TeamDetail{}, err
	}
	cat, err := s.lookupCategory(ctx, item.CategoryID)
	if err != nil {
		return TeamDetail{}, err
	}

	div, exists, err := s.divisionRepo.GetByID(ctx, cat.DivisionID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get division: %w", err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: division=%s", ErrNotFound, cat.DivisionID)
	}
	ssn, exists, err := s.seasonRepo.GetByID(ctx, cat.SeasonID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: season=%s", ErrNotFound, cat.SeasonID)
	}

	detail := TeamDetail{
		Team:     item,
		Record:   item.Record(),
		Category: cat,
		Division: div,
		Season:   ssn,
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		players, err := s.playerRepo.ListByTeam(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list players by team: %w", err)
		}
		player.SortByNumber(players)
		detail.Players = players
		return nil
	})
	p.Go(func(ctx context.Context) error {
		payments, err := s.paymentRepo.ListByTeam(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list payments by team: %w", err)
		}
		detail.Payments = payments
		return nil
	})
	p.Go(func(ctx context.Context) error {
		matches, err := s.matchRepo.ListByTeam(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list matches by team: %w", err)
		}
		detail.RecentMatches = match.LastCompleted(matches, item.ID, recentMatchLimit)
		return nil
	})
	if err := p.Wait(); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "load team detail failed", "team_id", item.ID, "error", err)
		return TeamDetail{}, err
	}

	detail.Balance = balanceOf(detail.Payments, cat.Price)
	return detail, nil
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create", attribute.String("category.id", input.CategoryID))
	defer span.End()

	if strings.TrimSpace(input.Name) == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	cat, err := s.lookupCategory(ctx, input.CategoryID)
	if err != nil {
		return team.Team{}, err
	}
	if cat.TeamLimit > 0 {
		count, err := s.teamRepo.CountByCategory(ctx, cat.ID)
		if err != nil {
			return team.Team{}, fmt.Errorf("count teams by category: %w", err)
		}
		if count >= cat.TeamLimit {
			return team.Team{}, fmt.Errorf("%w: category %s reached its limit of %d teams", ErrConflict, cat.ID, cat.TeamLimit)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:               id,
		CategoryID:       cat.ID,
		SeasonID:         cat.SeasonID,
		Name:             strings.TrimSpace(input.Name),
		ShortName:        strings.ToUpper(strings.TrimSpace(input.ShortName)),
		PrimaryColor:     strings.TrimSpace(input.PrimaryColor),
		SecondaryColor:   strings.TrimSpace(input.SecondaryColor),
		Coach:            s.cleanCoach(input.Coach),
		Status:           team.StatusPending,
		PaymentStatus:    team.PaymentPending,
		Notes:            strings.TrimSpace(input.Notes),
		RegistrationDate: s.clock.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create team failed", "category_id", cat.ID, "error", err)
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "category_id", cat.ID)
	return item, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, teamID string, input UpdateTeamInput) (team.Team, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.ShortName != nil {
		item.ShortName = strings.ToUpper(strings.TrimSpace(*input.ShortName))
	}
	if input.PrimaryColor != nil {
		item.PrimaryColor = strings.TrimSpace(*input.PrimaryColor)
	}
	if input.SecondaryColor != nil {
		item.SecondaryColor = strings.TrimSpace(*input.SecondaryColor)
	}
	if input.Coach != nil {
		item.Coach = s.cleanCoach(*input.Coach)
	}
	if input.Notes != nil {
		item.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "update team failed", "team_id", item.ID, "error", err)
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.logger.InfoContext(ctx, "team updated", "team_id", item.ID)
	return item, nil
}

// Delete refuses while the team still has players, payments or matches.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}

	players, err := s.playerRepo.CountByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count players by team: %w", err)
	}
	payments, err := s.paymentRepo.CountByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count payments by team: %w", err)
	}
	matches, err := s.matchRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list matches by team: %w", err)
	}
	if players > 0 || payments > 0 || len(matches) > 0 {
		return fmt.Errorf("%w: team %s still has %d players, %d payments and %d matches", ErrConflict, item.ID, players, payments, len(matches))
	}

	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "delete team failed", "team_id", item.ID, "error", err)
		return deleteError("delete team", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", item.ID)
	return nil
}

// AddPlayer registers a roster player using the flag football vocabulary.
// Captaincy always starts unset.
func (s *TeamService) AddPlayer(ctx context.Context, teamID string, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayer", attribute.String("team.id", teamID))
	defer span.End()

	if strings.TrimSpace(input.Name) == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if input.Number < player.MinNumber || input.Number > player.MaxNumber {
		return player.Player{}, fmt.Errorf("%w: jersey number must be between %d and %d", ErrInvalidInput, player.MinNumber, player.MaxNumber)
	}

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return player.Player{}, err
	}
	cat, err := s.lookupCategory(ctx, item.CategoryID)
	if err != nil {
		return player.Player{}, err
	}
	if cat.PlayerLimit > 0 {
		count, err := s.playerRepo.CountByTeam(ctx, item.ID)
		if err != nil {
			return player.Player{}, fmt.Errorf("count players by team: %w", err)
		}
		if count >= cat.PlayerLimit {
			return player.Player{}, fmt.Errorf("%w: team %s reached the category limit of %d players", ErrConflict, item.ID, cat.PlayerLimit)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	input.TeamID = item.ID
	created := buildPlayer(player.Player{
		ID:               id,
		RegistrationDate: s.clock.Now().UTC(),
	}, input, player.VocabularyFlagFootball, s.phones)
	created.IsCaptain = false
	created.IsViceCaptain = false
	if err := created.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, created); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "add roster player failed", "team_id", item.ID, "error", err)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "roster player added", "player_id", created.ID, "team_id", item.ID)
	return created, nil
}

// SetCaptain makes playerID the only captain of the team and returns the roster.
func (s *TeamService) SetCaptain(ctx context.Context, teamID, playerID string) ([]player.Player, error) {
	return s.assignRole(ctx, teamID, playerID, "captain", s.playerRepo.SetCaptain)
}

func (s *TeamService) SetViceCaptain(ctx context.Context, teamID, playerID string) ([]player.Player, error) {
	return s.assignRole(ctx, teamID, playerID, "vice captain", s.playerRepo.SetViceCaptain)
}

func (s *TeamService) assignRole(
	ctx context.Context,
	teamID, playerID, role string,
	assign func(ctx context.Context, teamID, playerID string) error,
) ([]player.Player, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	member, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	if !exists || member.TeamID != item.ID {
		return nil, fmt.Errorf("%w: player=%s team=%s", ErrNotFound, playerID, item.ID)
	}

	if err := assign(ctx, item.ID, member.ID); err != nil {
		s.logger.WarnContext(ctx, "assign team role failed", "team_id", item.ID, "player_id", member.ID, "role", role, "error", err)
		return nil, fmt.Errorf("set %s: %w", role, err)
	}
	s.logger.InfoContext(ctx, "team role assigned", "team_id", item.ID, "player_id", member.ID, "role", role)

	roster, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	player.SortByNumber(roster)
	return roster, nil
}

func (s *TeamService) ListPayments(ctx context.Context, teamID string) ([]payment.Payment, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.paymentRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list payments by team: %w", err)
	}
	return items, nil
}

// AddPayment appends to the ledger. The team's payment status is recomputed
// in the same write, so success means both were stored.
func (s *TeamService) AddPayment(ctx context.Context, teamID string, input PaymentInput) (AddPaymentResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPayment", attribute.String("team.id", teamID))
	defer span.End()

	if input.Amount <= 0 {
		return AddPaymentResult{}, fmt.Errorf("%w: payment amount must be > 0", ErrInvalidInput)
	}

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return AddPaymentResult{}, err
	}
	cat, err := s.lookupCategory(ctx, item.CategoryID)
	if err != nil {
		return AddPaymentResult{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return AddPaymentResult{}, fmt.Errorf("generate payment id: %w", err)
	}

	now := s.clock.Now().UTC()
	entry := payment.Payment{
		ID:            id,
		TeamID:        item.ID,
		SeasonID:      item.SeasonID,
		Amount:        input.Amount,
		Date:          now,
		Method:        input.Method,
		Reference:     strings.TrimSpace(input.Reference),
		Notes:         strings.TrimSpace(input.Notes),
		Status:        input.Status,
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		CreatedBy:     strings.TrimSpace(input.CreatedBy),
		CreatedAt:     now,
	}
	if input.Date != nil {
		entry.Date = input.Date.UTC()
	}
	if entry.Method == "" {
		entry.Method = payment.MethodCash
	}
	if entry.Status == "" {
		entry.Status = payment.StatusPaid
	}
	if entry.Status == payment.StatusPaid {
		entry.PaidDate = &now
	}
	if err := entry.Validate(); err != nil {
		return AddPaymentResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status, err := s.paymentRepo.Append(ctx, entry, cat.Price)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "append payment failed", "team_id", item.ID, "amount", entry.Amount, "error", err)
		return AddPaymentResult{}, fmt.Errorf("append payment: %w", err)
	}

	s.logger.InfoContext(ctx, "payment recorded",
		"payment_id", entry.ID,
		"team_id", item.ID,
		"amount", entry.Amount,
		"payment_status", string(status),
	)
	return AddPaymentResult{Payment: entry, PaymentStatus: status}, nil
}

// MarkPaymentOverdue is the only way a team becomes overdue.
func (s *TeamService) MarkPaymentOverdue(ctx context.Context, teamID string) (team.Team, error) {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if item.PaymentStatus == team.PaymentPaid {
		return team.Team{}, fmt.Errorf("%w: team %s is fully paid", ErrConflict, item.ID)
	}

	if err := s.teamRepo.UpdatePaymentStatus(ctx, item.ID, team.PaymentOverdue); err != nil {
		s.logger.WarnContext(ctx, "mark team overdue failed", "team_id", item.ID, "error", err)
		return team.Team{}, fmt.Errorf("update payment status: %w", err)
	}
	item.PaymentStatus = team.PaymentOverdue
	s.logger.InfoContext(ctx, "team marked overdue", "team_id", item.ID)
	return item, nil
}

func (s *TeamService) lookupCategory(ctx context.Context, categoryID string) (category.Category, error) {
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

func (s *TeamService) cleanCoach(c team.Coach) team.Coach {
	return team.Coach{
		Name:  strings.TrimSpace(c.Name),
		Phone: s.phones.Normalize(c.Phone),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
	}
}

func balanceOf(items []payment.Payment, price int64) Balance {
	total := payment.Total(items)
	remaining := price - total
	if remaining < 0 {
		remaining = 0
	}
	return Balance{Total: total, Price: price, Remaining: remaining}
}

func teamsByDivision(ctx context.Context, categoryRepo category.Repository, teamRepo team.Repository, divisionID string) ([]team.Team, error) {
	categories, err := categoryRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list categories by division: %w", err)
	}
	ids := make([]string, 0, len(categories))
	for _, item := range categories {
		ids = append(ids, item.ID)
	}
	if len(ids) == 0 {
		return []team.Team{}, nil
	}

	items, err := teamRepo.ListByCategories(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list teams by categories: %w", err)
	}
	return items, nil
}
