package usecase

import (
	"time"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/team"
)

// Drafts are built fresh every time a form opens: from the entity being
// edited, or from defaults when creating. They are values and are never
// shared between dialogs.

type CategoryDraft struct {
	EditingID   string
	Name        string
	Level       int
	TeamLimit   int
	PlayerLimit int
	Price       int64
	Rules       []string
	IsActive    bool
}

func NewCategoryDraft(existing *category.Category) CategoryDraft {
	if existing == nil {
		return CategoryDraft{
			Level:       category.MinLevel,
			TeamLimit:   category.DefaultTeamLimit,
			PlayerLimit: category.DefaultPlayerLimit,
			Price:       category.DefaultPrice,
			Rules:       []string{},
			IsActive:    true,
		}
	}
	return CategoryDraft{
		EditingID:   existing.ID,
		Name:        existing.Name,
		Level:       existing.Level,
		TeamLimit:   existing.TeamLimit,
		PlayerLimit: existing.PlayerLimit,
		Price:       existing.Price,
		Rules:       append([]string{}, existing.Rules...),
		IsActive:    existing.IsActive,
	}
}

func (d CategoryDraft) IsEdit() bool { return d.EditingID != "" }

func (d CategoryDraft) CreateInput(divisionID string) CreateCategoryInput {
	return CreateCategoryInput{
		DivisionID:  divisionID,
		Name:        d.Name,
		Level:       d.Level,
		TeamLimit:   d.TeamLimit,
		PlayerLimit: d.PlayerLimit,
		Price:       d.Price,
		Rules:       append([]string{}, d.Rules...),
		IsActive:    d.IsActive,
	}
}

func (d CategoryDraft) UpdateInput() UpdateCategoryInput {
	name, level, teamLimit, playerLimit, price, active := d.Name, d.Level, d.TeamLimit, d.PlayerLimit, d.Price, d.IsActive
	return UpdateCategoryInput{
		Name:        &name,
		Level:       &level,
		TeamLimit:   &teamLimit,
		PlayerLimit: &playerLimit,
		Price:       &price,
		Rules:       append([]string{}, d.Rules...),
		IsActive:    &active,
	}
}

type FieldDraft struct {
	EditingID string
	Input     FieldInput
}

func NewFieldDraft(existing *field.Field) FieldDraft {
	if existing == nil {
		return FieldDraft{Input: FieldInput{
			Type:       field.TypeGrass,
			Status:     field.StatusAvailable,
			Zone:       field.ZoneUnassigned,
			Facilities: []string{},
			IsActive:   true,
		}}
	}
	return FieldDraft{
		EditingID: existing.ID,
		Input: FieldInput{
			Code:       existing.Code,
			Name:       existing.Name,
			Type:       existing.Type,
			Capacity:   existing.Capacity,
			Status:     existing.Status,
			Priority:   existing.Priority,
			Zone:       existing.Zone,
			Facilities: append([]string{}, existing.Facilities...),
			Location:   existing.Location,
			Notes:      existing.Notes,
			IsActive:   existing.IsActive,
		},
	}
}

func (d FieldDraft) IsEdit() bool { return d.EditingID != "" }

type TeamDraft struct {
	EditingID      string
	CategoryID     string
	Name           string
	ShortName      string
	PrimaryColor   string
	SecondaryColor string
	Coach          team.Coach
	Notes          string
	Status         team.Status
}

func NewTeamDraft(existing *team.Team) TeamDraft {
	if existing == nil {
		return TeamDraft{PrimaryColor: "#000000", SecondaryColor: "#FFFFFF", Status: team.StatusPending}
	}
	return TeamDraft{
		EditingID:      existing.ID,
		CategoryID:     existing.CategoryID,
		Name:           existing.Name,
		ShortName:      existing.ShortName,
		PrimaryColor:   existing.PrimaryColor,
		SecondaryColor: existing.SecondaryColor,
		Coach:          existing.Coach,
		Notes:          existing.Notes,
		Status:         existing.Status,
	}
}

func (d TeamDraft) IsEdit() bool { return d.EditingID != "" }

func (d TeamDraft) CreateInput() CreateTeamInput {
	return CreateTeamInput{
		CategoryID:     d.CategoryID,
		Name:           d.Name,
		ShortName:      d.ShortName,
		PrimaryColor:   d.PrimaryColor,
		SecondaryColor: d.SecondaryColor,
		Coach:          d.Coach,
		Notes:          d.Notes,
	}
}

func (d TeamDraft) UpdateInput() UpdateTeamInput {
	name, short, primary, secondary, coach, notes, status := d.Name, d.ShortName, d.PrimaryColor, d.SecondaryColor, d.Coach, d.Notes, d.Status
	return UpdateTeamInput{
		Name:           &name,
		ShortName:      &short,
		PrimaryColor:   &primary,
		SecondaryColor: &secondary,
		Coach:          &coach,
		Notes:          &notes,
		Status:         &status,
	}
}

type PlayerDraft struct {
	EditingID  string
	Vocabulary player.Vocabulary
	Positions  []string
	Input      PlayerInput
}

// NewPlayerDraft opens the player form for the given vocabulary. An existing
// player keeps the vocabulary it was registered with.
func NewPlayerDraft(existing *player.Player, vocabulary player.Vocabulary) PlayerDraft {
	if existing == nil {
		return PlayerDraft{
			Vocabulary: vocabulary,
			Positions:  player.Positions(vocabulary),
			Input:      PlayerInput{Status: player.StatusActive},
		}
	}

	if existing.Position.Vocabulary != "" {
		vocabulary = existing.Position.Vocabulary
	}
	var dob *time.Time
	if existing.DateOfBirth != nil {
		value := *existing.DateOfBirth
		dob = &value
	}
	return PlayerDraft{
		EditingID:  existing.ID,
		Vocabulary: vocabulary,
		Positions:  player.Positions(vocabulary),
		Input: PlayerInput{
			TeamID:           existing.TeamID,
			Name:             existing.Name,
			LastName:         existing.LastName,
			Number:           existing.Number,
			Position:         existing.Position.Code,
			Email:            existing.Email,
			Phone:            existing.Phone,
			DateOfBirth:      dob,
			EmergencyContact: existing.EmergencyContact,
			Status:           existing.Status,
		},
	}
}

func (d PlayerDraft) IsEdit() bool { return d.EditingID != "" }
