package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/team"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/phone"
)

// PlayerInput carries the player form. Position holds a code of the
// vocabulary used by the calling screen.
type PlayerInput struct {
	TeamID           string
	Name             string
	LastName         string
	Number           int
	Position         string
	Email            string
	Phone            string
	DateOfBirth      *time.Time
	EmergencyContact player.EmergencyContact
	Status           player.Status
}

// PlayerService is the global player directory across all teams.
// It uses the generic position vocabulary.
type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	phones     *phone.Normalizer
	idGen      idgen.Generator
	logger     *logging.Logger
	clock      clockwork.Clock
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	phones *phone.Normalizer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if phones == nil {
		phones = phone.NewNormalizer(phone.DefaultRegion)
	}

	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		phones:     phones,
		idGen:      idGen,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
	}
}

func (s *PlayerService) ListAll(ctx context.Context) ([]player.Player, error) {
	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Filter(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(items), nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.TeamID == "" {
		return player.Player{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Name) == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if _, err := lookupTeam(ctx, s.teamRepo, input.TeamID); err != nil {
		return player.Player{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := buildPlayer(player.Player{
		ID:               id,
		RegistrationDate: s.clock.Now().UTC(),
	}, input, player.VocabularyGeneric, s.phones)
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "create player failed", "team_id", item.TeamID, "error", err)
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", item.ID, "team_id", item.TeamID)
	return item, nil
}

// Update replaces the form fields. Captaincy and registration date are kept.
func (s *PlayerService) Update(ctx context.Context, playerID string, input PlayerInput) (player.Player, error) {
	current, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	if input.TeamID = strings.TrimSpace(input.TeamID); input.TeamID == "" {
		input.TeamID = current.TeamID
	}
	if input.TeamID != current.TeamID {
		if _, err := lookupTeam(ctx, s.teamRepo, input.TeamID); err != nil {
			return player.Player{}, err
		}
		current.IsCaptain = false
		current.IsViceCaptain = false
	}

	vocabulary := current.Position.Vocabulary
	if vocabulary == "" {
		vocabulary = player.VocabularyGeneric
	}
	item := buildPlayer(current, input, vocabulary, s.phones)
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Update(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "update player failed", "player_id", item.ID, "error", err)
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", item.ID)
	return item, nil
}

func (s *PlayerService) UpdateStatus(ctx context.Context, playerID string, status player.Status) (player.Player, error) {
	if !status.Valid() {
		return player.Player{}, fmt.Errorf("%w: invalid player status %q", ErrInvalidInput, status)
	}

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	if err := s.playerRepo.UpdateStatus(ctx, item.ID, status); err != nil {
		s.logger.WarnContext(ctx, "update player status failed", "player_id", item.ID, "error", err)
		return player.Player{}, fmt.Errorf("update player status: %w", err)
	}

	item.Status = status
	s.logger.InfoContext(ctx, "player status changed", "player_id", item.ID, "status", string(status))
	return item, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	item, err := s.Get(ctx, playerID)
	if err != nil {
		return err
	}

	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		s.logger.WarnContext(ctx, "delete player failed", "player_id", item.ID, "error", err)
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", item.ID, "team_id", item.TeamID)
	return nil
}

func buildPlayer(item player.Player, input PlayerInput, vocabulary player.Vocabulary, phones *phone.Normalizer) player.Player {
	item.TeamID = strings.TrimSpace(input.TeamID)
	item.Name = strings.TrimSpace(input.Name)
	item.LastName = strings.TrimSpace(input.LastName)
	item.Number = input.Number
	item.Position = player.Position{}
	if code := strings.TrimSpace(input.Position); code != "" {
		item.Position = player.Position{Vocabulary: vocabulary, Code: code}
	}
	item.Email = strings.ToLower(strings.TrimSpace(input.Email))
	item.Phone = phones.Normalize(input.Phone)
	item.DateOfBirth = input.DateOfBirth
	item.EmergencyContact = player.EmergencyContact{
		Name:         strings.TrimSpace(input.EmergencyContact.Name),
		Phone:        phones.Normalize(input.EmergencyContact.Phone),
		Relationship: strings.TrimSpace(input.EmergencyContact.Relationship),
	}
	item.Status = input.Status
	if item.Status == "" {
		item.Status = player.StatusActive
	}
	return item
}

func lookupTeam(ctx context.Context, repo team.Repository, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}
