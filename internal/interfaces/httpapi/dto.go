package httpapi

import (
	"time"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
	"github.com/tochoprime/league-console/internal/usecase"
)

const dateLayout = time.DateOnly

type seasonDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type divisionDTO struct {
	ID       string `json:"id"`
	SeasonID string `json:"season_id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
}

type refereeDTO struct {
	ID       string `json:"id"`
	SeasonID string `json:"season_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"is_active"`
}

type categoryDTO struct {
	ID          string   `json:"id"`
	DivisionID  string   `json:"division_id"`
	SeasonID    string   `json:"season_id"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	TeamLimit   int      `json:"team_limit"`
	PlayerLimit int      `json:"player_limit"`
	Price       int64    `json:"price"`
	Rules       []string `json:"rules"`
	IsActive    bool     `json:"is_active"`
}

type locationDTO struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

type fieldDTO struct {
	ID         string      `json:"id"`
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Capacity   int         `json:"capacity"`
	Status     string      `json:"status"`
	Priority   int         `json:"priority"`
	Zone       string      `json:"zone"`
	Facilities []string    `json:"facilities"`
	Location   locationDTO `json:"location"`
	Notes      string      `json:"notes,omitempty"`
	IsActive   bool        `json:"is_active"`
	IsFallback bool        `json:"is_fallback"`
}

type fieldListingDTO struct {
	Fields   []fieldDTO `json:"fields"`
	Fallback bool       `json:"fallback"`
}

type zoneGroupDTO struct {
	Zone   string     `json:"zone"`
	Fields []fieldDTO `json:"fields"`
}

type coachDTO struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type statsDTO struct {
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`
	Points        int `json:"points"`
}

type teamDTO struct {
	ID               string   `json:"id"`
	CategoryID       string   `json:"category_id"`
	SeasonID         string   `json:"season_id"`
	Name             string   `json:"name"`
	ShortName        string   `json:"short_name,omitempty"`
	PrimaryColor     string   `json:"primary_color,omitempty"`
	SecondaryColor   string   `json:"secondary_color,omitempty"`
	Coach            coachDTO `json:"coach"`
	Status           string   `json:"status"`
	PaymentStatus    string   `json:"payment_status"`
	Stats            statsDTO `json:"stats"`
	Notes            string   `json:"notes,omitempty"`
	RegistrationDate string   `json:"registration_date"`
}

type recordDTO struct {
	Wins       int `json:"wins"`
	Draws      int `json:"draws"`
	Losses     int `json:"losses"`
	TotalGames int `json:"total_games"`
	Points     int `json:"points"`
}

type emergencyContactDTO struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

type positionDTO struct {
	Vocabulary string `json:"vocabulary"`
	Code       string `json:"code"`
}

type playerDTO struct {
	ID               string              `json:"id"`
	TeamID           string              `json:"team_id"`
	Name             string              `json:"name"`
	LastName         string              `json:"last_name,omitempty"`
	FullName         string              `json:"full_name"`
	Number           int                 `json:"number,omitempty"`
	Position         *positionDTO        `json:"position,omitempty"`
	Email            string              `json:"email,omitempty"`
	Phone            string              `json:"phone,omitempty"`
	DateOfBirth      string              `json:"date_of_birth,omitempty"`
	EmergencyContact emergencyContactDTO `json:"emergency_contact"`
	Status           string              `json:"status"`
	IsCaptain        bool                `json:"is_captain"`
	IsViceCaptain    bool                `json:"is_vice_captain"`
	RegistrationDate string              `json:"registration_date"`
}

type paymentDTO struct {
	ID            string `json:"id"`
	TeamID        string `json:"team_id"`
	SeasonID      string `json:"season_id"`
	Amount        int64  `json:"amount"`
	Date          string `json:"date"`
	Method        string `json:"method"`
	Reference     string `json:"reference,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Status        string `json:"status"`
	PaidDate      string `json:"paid_date,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type addPaymentDTO struct {
	Payment       paymentDTO `json:"payment"`
	PaymentStatus string     `json:"payment_status"`
}

type balanceDTO struct {
	Total     int64 `json:"total"`
	Price     int64 `json:"price"`
	Remaining int64 `json:"remaining"`
}

type teamSnapshotDTO struct {
	Name         string `json:"name"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

type matchDTO struct {
	ID           string           `json:"id"`
	SeasonID     string           `json:"season_id"`
	DivisionID   string           `json:"division_id"`
	HomeTeamID   string           `json:"home_team_id"`
	AwayTeamID   string           `json:"away_team_id"`
	HomeTeam     *teamSnapshotDTO `json:"home_team,omitempty"`
	AwayTeam     *teamSnapshotDTO `json:"away_team,omitempty"`
	FieldID      string           `json:"field_id,omitempty"`
	Round        int              `json:"round"`
	MatchDate    string           `json:"match_date,omitempty"`
	MatchTime    string           `json:"match_time,omitempty"`
	Status       string           `json:"status"`
	StatusLabel  string           `json:"status_label"`
	HomeScore    *int             `json:"home_score,omitempty"`
	AwayScore    *int             `json:"away_score,omitempty"`
	Winner       string           `json:"winner,omitempty"`
	RefereeName  string           `json:"referee_name,omitempty"`
	IsPlayoff    bool             `json:"is_playoff"`
	PlayoffStage string           `json:"playoff_stage,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

type roundDTO struct {
	Round   int        `json:"round"`
	Matches []matchDTO `json:"matches"`
}

type boardDTO struct {
	Seasons   []seasonDTO   `json:"seasons"`
	Divisions []divisionDTO `json:"divisions"`
	Referees  []refereeDTO  `json:"referees"`
	Teams     []teamDTO     `json:"teams"`
	Rounds    []roundDTO    `json:"rounds"`
	Total     int           `json:"total"`
}

type standingDTO struct {
	Position int       `json:"position"`
	Team     teamDTO   `json:"team"`
	Record   recordDTO `json:"record"`
	Diff     int       `json:"diff"`
}

type teamDetailDTO struct {
	Team          teamDTO      `json:"team"`
	Record        recordDTO    `json:"record"`
	Category      categoryDTO  `json:"category"`
	Division      divisionDTO  `json:"division"`
	Season        seasonDTO    `json:"season"`
	Players       []playerDTO  `json:"players"`
	Payments      []paymentDTO `json:"payments"`
	Balance       balanceDTO   `json:"balance"`
	RecentMatches []matchDTO   `json:"recent_matches"`
}

type reconcileDTO struct {
	SeasonID string `json:"season_id"`
	Checked  int    `json:"checked"`
	Updated  int    `json:"updated"`
	Failed   int    `json:"failed"`
}

func formatDate(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(dateLayout)
}

func formatTimestamp(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		Name:      v.Name,
		StartDate: formatDate(v.StartDate),
		EndDate:   formatDate(v.EndDate),
		IsActive:  v.IsActive,
		CreatedAt: formatTimestamp(v.CreatedAt),
	}
}

func divisionToDTO(v division.Division) divisionDTO {
	return divisionDTO{ID: v.ID, SeasonID: v.SeasonID, Name: v.Name, Color: v.Color}
}

func refereeToDTO(v referee.Referee) refereeDTO {
	return refereeDTO{ID: v.ID, SeasonID: v.SeasonID, Name: v.Name, Phone: v.Phone, Email: v.Email, IsActive: v.IsActive}
}

func categoryToDTO(v category.Category) categoryDTO {
	rules := append([]string{}, v.Rules...)
	return categoryDTO{
		ID:          v.ID,
		DivisionID:  v.DivisionID,
		SeasonID:    v.SeasonID,
		Name:        v.Name,
		Level:       v.Level,
		TeamLimit:   v.TeamLimit,
		PlayerLimit: v.PlayerLimit,
		Price:       v.Price,
		Rules:       rules,
		IsActive:    v.IsActive,
	}
}

func fieldToDTO(v field.Field) fieldDTO {
	return fieldDTO{
		ID:         v.ID,
		Code:       v.Code,
		Name:       v.Name,
		Type:       string(v.Type),
		Capacity:   v.Capacity,
		Status:     string(v.Status),
		Priority:   v.Priority,
		Zone:       string(v.Zone),
		Facilities: append([]string{}, v.Facilities...),
		Location:   locationDTO{Address: v.Location.Address, City: v.Location.City},
		Notes:      v.Notes,
		IsActive:   v.IsActive,
		IsFallback: v.IsFallback,
	}
}

func fieldListingToDTO(v usecase.FieldListing) fieldListingDTO {
	return fieldListingDTO{Fields: mapSlice(v.Fields, fieldToDTO), Fallback: v.Fallback}
}

func zoneGroupToDTO(v field.ZoneGroup) zoneGroupDTO {
	return zoneGroupDTO{Zone: string(v.Zone), Fields: mapSlice(v.Fields, fieldToDTO)}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:             v.ID,
		CategoryID:     v.CategoryID,
		SeasonID:       v.SeasonID,
		Name:           v.Name,
		ShortName:      v.ShortName,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
		Coach:          coachDTO{Name: v.Coach.Name, Phone: v.Coach.Phone, Email: v.Coach.Email},
		Status:         string(v.Status),
		PaymentStatus:  string(v.PaymentStatus),
		Stats: statsDTO{
			Wins:          v.Stats.Wins,
			Draws:         v.Stats.Draws,
			Losses:        v.Stats.Losses,
			PointsFor:     v.Stats.PointsFor,
			PointsAgainst: v.Stats.PointsAgainst,
			Points:        v.Stats.Points,
		},
		Notes:            v.Notes,
		RegistrationDate: formatTimestamp(v.RegistrationDate),
	}
}

func recordToDTO(v team.Record) recordDTO {
	return recordDTO{Wins: v.Wins, Draws: v.Draws, Losses: v.Losses, TotalGames: v.TotalGames, Points: v.Points}
}

func playerToDTO(v player.Player) playerDTO {
	out := playerDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		Name:     v.Name,
		LastName: v.LastName,
		FullName: v.FullName(),
		Number:   v.Number,
		Email:    v.Email,
		Phone:    v.Phone,
		EmergencyContact: emergencyContactDTO{
			Name:         v.EmergencyContact.Name,
			Phone:        v.EmergencyContact.Phone,
			Relationship: v.EmergencyContact.Relationship,
		},
		Status:           string(v.Status),
		IsCaptain:        v.IsCaptain,
		IsViceCaptain:    v.IsViceCaptain,
		RegistrationDate: formatTimestamp(v.RegistrationDate),
		DateOfBirth:      formatDate(v.DateOfBirth),
	}
	if !v.Position.IsZero() {
		out.Position = &positionDTO{Vocabulary: string(v.Position.Vocabulary), Code: v.Position.Code}
	}
	return out
}

func paymentToDTO(v payment.Payment) paymentDTO {
	return paymentDTO{
		ID:            v.ID,
		TeamID:        v.TeamID,
		SeasonID:      v.SeasonID,
		Amount:        v.Amount,
		Date:          formatDate(&v.Date),
		Method:        string(v.Method),
		Reference:     v.Reference,
		Notes:         v.Notes,
		Status:        string(v.Status),
		PaidDate:      formatDate(v.PaidDate),
		InvoiceNumber: v.InvoiceNumber,
		CreatedBy:     v.CreatedBy,
		CreatedAt:     formatTimestamp(v.CreatedAt),
	}
}

func snapshotToDTO(v *match.TeamSnapshot) *teamSnapshotDTO {
	if v == nil {
		return nil
	}
	return &teamSnapshotDTO{Name: v.Name, PrimaryColor: v.PrimaryColor}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:           v.ID,
		SeasonID:     v.SeasonID,
		DivisionID:   v.DivisionID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeTeam:     snapshotToDTO(v.HomeTeam),
		AwayTeam:     snapshotToDTO(v.AwayTeam),
		FieldID:      v.FieldID,
		Round:        v.Round,
		MatchDate:    formatDate(&v.MatchDate),
		MatchTime:    v.MatchTime,
		Status:       string(v.Status),
		StatusLabel:  match.StatusLabel(v.Status),
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		Winner:       string(v.Winner),
		RefereeName:  v.RefereeName,
		IsPlayoff:    v.IsPlayoff,
		PlayoffStage: v.PlayoffStage,
		Notes:        v.Notes,
	}
}

func boardToDTO(v usecase.Board) boardDTO {
	rounds := make([]roundDTO, 0, len(v.Rounds))
	for _, group := range v.Rounds {
		rounds = append(rounds, roundDTO{Round: group.Round, Matches: mapSlice(group.Matches, matchToDTO)})
	}
	return boardDTO{
		Seasons:   mapSlice(v.Seasons, seasonToDTO),
		Divisions: mapSlice(v.Divisions, divisionToDTO),
		Referees:  mapSlice(v.Referees, refereeToDTO),
		Teams:     mapSlice(v.Teams, teamToDTO),
		Rounds:    rounds,
		Total:     len(v.Matches),
	}
}

func standingToDTO(v team.Standing) standingDTO {
	return standingDTO{Position: v.Position, Team: teamToDTO(v.Team), Record: recordToDTO(v.Record), Diff: v.Diff}
}

func teamDetailToDTO(v usecase.TeamDetail) teamDetailDTO {
	return teamDetailDTO{
		Team:          teamToDTO(v.Team),
		Record:        recordToDTO(v.Record),
		Category:      categoryToDTO(v.Category),
		Division:      divisionToDTO(v.Division),
		Season:        seasonToDTO(v.Season),
		Players:       mapSlice(v.Players, playerToDTO),
		Payments:      mapSlice(v.Payments, paymentToDTO),
		Balance:       balanceDTO{Total: v.Balance.Total, Price: v.Balance.Price, Remaining: v.Balance.Remaining},
		RecentMatches: mapSlice(v.RecentMatches, matchToDTO),
	}
}

func reconcileToDTO(v usecase.ReconcileResult) reconcileDTO {
	return reconcileDTO{SeasonID: v.SeasonID, Checked: v.Checked, Updated: v.Updated, Failed: v.Failed}
}
