package httpapi

import (
	"net/http"

	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/usecase"
)

type emergencyContactRequest struct {
	Name         string `json:"name" validate:"omitempty,max=120"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	Relationship string `json:"relationship" validate:"omitempty,max=60"`
}

// playerRequest is shared by the directory and the team roster. The
// position code is checked against the vocabulary of the target context.
type playerRequest struct {
	TeamID           string                  `json:"team_id"`
	Name             string                  `json:"name" validate:"required,max=80"`
	LastName         string                  `json:"last_name" validate:"omitempty,max=80"`
	Number           int                     `json:"number" validate:"omitempty,min=1,max=99"`
	Position         string                  `json:"position" validate:"omitempty,max=40"`
	Email            string                  `json:"email" validate:"omitempty,email"`
	Phone            string                  `json:"phone" validate:"omitempty,max=32"`
	DateOfBirth      *string                 `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact emergencyContactRequest `json:"emergency_contact"`
	Status           string                  `json:"status" validate:"omitempty,oneof=active pending suspended injured inactive"`
}

type playerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending suspended injured inactive"`
}

func (req playerRequest) toInput() (usecase.PlayerInput, error) {
	dob, err := parseOptionalDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		return usecase.PlayerInput{}, err
	}

	return usecase.PlayerInput{
		TeamID:      req.TeamID,
		Name:        req.Name,
		LastName:    req.LastName,
		Number:      req.Number,
		Position:    req.Position,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dob,
		EmergencyContact: player.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Phone:        req.EmergencyContact.Phone,
			Relationship: req.EmergencyContact.Relationship,
		},
		Status: player.Status(req.Status),
	}, nil
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	items, err := h.playerService.Filter(ctx, player.Filter{
		Search:   queryValue(r, "search"),
		Status:   player.Status(queryValue(r, "status")),
		Position: queryValue(r, "position"),
		TeamID:   queryValue(r, "teamId"),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, playerToDTO))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := pathID(r, "playerID")
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionCreate)))
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionCreate)))
		return
	}

	item, err := h.playerService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, playerToDTO(item), entityPlayer.succeeded(actionCreate))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := pathID(r, "playerID")
	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionUpdate)))
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionUpdate)))
		return
	}

	item, err := h.playerService.Update(ctx, playerID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, playerToDTO(item), entityPlayer.succeeded(actionUpdate))
}

func (h *Handler) UpdatePlayerStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerStatus")
	defer span.End()

	playerID := pathID(r, "playerID")
	var req playerStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionUpdate)))
		return
	}

	item, err := h.playerService.UpdateStatus(ctx, playerID, player.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "update player status failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, playerToDTO(item), entityPlayer.succeeded(actionUpdate))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := pathID(r, "playerID")
	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": playerID}, entityPlayer.succeeded(actionDelete))
}
