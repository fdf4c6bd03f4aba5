package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/team"
	"github.com/tochoprime/league-console/internal/usecase"
)

type formDTO struct {
	Dialog dialog `json:"dialog"`
	Draft  any    `json:"draft"`
}

type categoryDraftDTO struct {
	EditingID   string   `json:"editing_id,omitempty"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	TeamLimit   int      `json:"team_limit"`
	PlayerLimit int      `json:"player_limit"`
	Price       int64    `json:"price"`
	Rules       []string `json:"rules"`
	IsActive    bool     `json:"is_active"`
}

type teamDraftDTO struct {
	EditingID      string   `json:"editing_id,omitempty"`
	CategoryID     string   `json:"category_id"`
	Name           string   `json:"name"`
	ShortName      string   `json:"short_name"`
	PrimaryColor   string   `json:"primary_color"`
	SecondaryColor string   `json:"secondary_color"`
	Coach          coachDTO `json:"coach"`
	Notes          string   `json:"notes"`
	Status         string   `json:"status"`
}

type playerDraftDTO struct {
	EditingID        string              `json:"editing_id,omitempty"`
	Vocabulary       string              `json:"vocabulary"`
	Positions        []string            `json:"positions"`
	TeamID           string              `json:"team_id"`
	Name             string              `json:"name"`
	LastName         string              `json:"last_name"`
	Number           int                 `json:"number,omitempty"`
	Position         string              `json:"position"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	DateOfBirth      string              `json:"date_of_birth,omitempty"`
	EmergencyContact emergencyContactDTO `json:"emergency_contact"`
	Status           string              `json:"status"`
}

// GetForm opens an entity dialog. With ?id= the draft is loaded from the
// stored entity; without it the draft carries the creation defaults.
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetForm")
	defer span.End()

	name := pathID(r, "entity")
	target, ok := formEntities[name]
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown form %q", usecase.ErrNotFound, name))
		return
	}

	id := queryValue(r, "id")
	draft, err := h.buildDraft(ctx, name, id, player.Vocabulary(queryValue(r, "vocabulary")))
	if err != nil {
		h.logger.WarnContext(ctx, "open form failed", "form", name, "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formDTO{Dialog: target.dialog(id != ""), Draft: draft})
}

func (h *Handler) buildDraft(ctx context.Context, name, id string, vocabulary player.Vocabulary) (any, error) {
	switch name {
	case "categories":
		var existing *category.Category
		if id != "" {
			item, err := h.categoryService.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			existing = &item
		}
		return categoryDraftToDTO(usecase.NewCategoryDraft(existing)), nil
	case "fields":
		var existing *field.Field
		if id != "" {
			item, err := h.fieldService.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			existing = &item
		}
		draft := usecase.NewFieldDraft(existing)
		out := fieldInputToDTO(draft.Input)
		out.ID = draft.EditingID
		return out, nil
	case "teams":
		var existing *team.Team
		if id != "" {
			item, err := h.teamService.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			existing = &item
		}
		return teamDraftToDTO(usecase.NewTeamDraft(existing)), nil
	case "players":
		if vocabulary == "" {
			vocabulary = player.VocabularyGeneric
		}
		if player.Positions(vocabulary) == nil {
			return nil, fmt.Errorf("%w: unknown position vocabulary %q", usecase.ErrInvalidInput, vocabulary)
		}
		var existing *player.Player
		if id != "" {
			item, err := h.playerService.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			existing = &item
		}
		return playerDraftToDTO(usecase.NewPlayerDraft(existing, vocabulary)), nil
	case "seasons":
		if id == "" {
			return seasonDTO{IsActive: true}, nil
		}
		item, err := h.seasonService.GetSeason(ctx, id)
		if err != nil {
			return nil, err
		}
		return seasonToDTO(item), nil
	case "divisions":
		if id == "" {
			return divisionDTO{}, nil
		}
		item, err := h.seasonService.GetDivision(ctx, id)
		if err != nil {
			return nil, err
		}
		return divisionToDTO(item), nil
	case "matches":
		if id == "" {
			return matchDTO{Round: 1, Status: "scheduled", StatusLabel: "Programado"}, nil
		}
		item, err := h.matchService.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return matchToDTO(item), nil
	case "payments":
		return paymentDTO{Method: "cash", Status: "paid"}, nil
	default:
		// referees and calendars only open empty
		return map[string]any{}, nil
	}
}

func categoryDraftToDTO(d usecase.CategoryDraft) categoryDraftDTO {
	return categoryDraftDTO{
		EditingID:   d.EditingID,
		Name:        d.Name,
		Level:       d.Level,
		TeamLimit:   d.TeamLimit,
		PlayerLimit: d.PlayerLimit,
		Price:       d.Price,
		Rules:       d.Rules,
		IsActive:    d.IsActive,
	}
}

func fieldInputToDTO(in usecase.FieldInput) fieldDTO {
	return fieldToDTO(field.Field{
		Code:       in.Code,
		Name:       in.Name,
		Type:       in.Type,
		Capacity:   in.Capacity,
		Status:     in.Status,
		Priority:   in.Priority,
		Zone:       in.Zone,
		Facilities: in.Facilities,
		Location:   in.Location,
		Notes:      in.Notes,
		IsActive:   in.IsActive,
	})
}

func teamDraftToDTO(d usecase.TeamDraft) teamDraftDTO {
	return teamDraftDTO{
		EditingID:      d.EditingID,
		CategoryID:     d.CategoryID,
		Name:           d.Name,
		ShortName:      d.ShortName,
		PrimaryColor:   d.PrimaryColor,
		SecondaryColor: d.SecondaryColor,
		Coach:          coachDTO{Name: d.Coach.Name, Phone: d.Coach.Phone, Email: d.Coach.Email},
		Notes:          d.Notes,
		Status:         string(d.Status),
	}
}

func playerDraftToDTO(d usecase.PlayerDraft) playerDraftDTO {
	return playerDraftDTO{
		EditingID:   d.EditingID,
		Vocabulary:  string(d.Vocabulary),
		Positions:   d.Positions,
		TeamID:      d.Input.TeamID,
		Name:        d.Input.Name,
		LastName:    d.Input.LastName,
		Number:      d.Input.Number,
		Position:    d.Input.Position,
		Email:       d.Input.Email,
		Phone:       d.Input.Phone,
		DateOfBirth: formatDate(d.Input.DateOfBirth),
		EmergencyContact: emergencyContactDTO{
			Name:         d.Input.EmergencyContact.Name,
			Phone:        d.Input.EmergencyContact.Phone,
			Relationship: d.Input.EmergencyContact.Relationship,
		},
		Status: string(d.Input.Status),
	}
}
