package httpapi

import (
	"net/http"

	"github.com/tochoprime/league-console/internal/usecase"
)

type createSeasonRequest struct {
	Name      string  `json:"name" validate:"required,max=120"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  bool    `json:"is_active"`
}

type updateSeasonRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=120"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  *bool   `json:"is_active"`
}

type createDivisionRequest struct {
	SeasonID string `json:"season_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=80"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
}

type updateDivisionRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=80"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

type createRefereeRequest struct {
	SeasonID string `json:"season_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasonService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, seasonToDTO))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionCreate)))
		return
	}
	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionCreate)))
		return
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionCreate)))
		return
	}

	item, err := h.seasonService.CreateSeason(ctx, usecase.CreateSeasonInput{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "name", req.Name, "error", err)
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, seasonToDTO(item), entitySeason.succeeded(actionCreate))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	var req updateSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionUpdate)))
		return
	}
	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionUpdate)))
		return
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionUpdate)))
		return
	}

	item, err := h.seasonService.UpdateSeason(ctx, seasonID, usecase.UpdateSeasonInput{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, seasonToDTO(item), entitySeason.succeeded(actionUpdate))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	if err := h.seasonService.DeleteSeason(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err, withNotification(entitySeason.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": seasonID}, entitySeason.succeeded(actionDelete))
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	items, err := h.seasonService.ListDivisions(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list divisions failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, divisionToDTO))
}

func (h *Handler) GetDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDivision")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	item, err := h.seasonService.GetDivision(ctx, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get division failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, divisionToDTO(item))
}

func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDivision")
	defer span.End()

	var req createDivisionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityDivision.failed(actionCreate)))
		return
	}

	item, err := h.seasonService.CreateDivision(ctx, usecase.CreateDivisionInput{
		SeasonID: req.SeasonID,
		Name:     req.Name,
		Color:    req.Color,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create division failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err, withNotification(entityDivision.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, divisionToDTO(item), entityDivision.succeeded(actionCreate))
}

func (h *Handler) UpdateDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDivision")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	var req updateDivisionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityDivision.failed(actionUpdate)))
		return
	}

	item, err := h.seasonService.UpdateDivision(ctx, divisionID, usecase.UpdateDivisionInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update division failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err, withNotification(entityDivision.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, divisionToDTO(item), entityDivision.succeeded(actionUpdate))
}

func (h *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDivision")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	if err := h.seasonService.DeleteDivision(ctx, divisionID); err != nil {
		h.logger.WarnContext(ctx, "delete division failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err, withNotification(entityDivision.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": divisionID}, entityDivision.succeeded(actionDelete))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	items, err := h.matchService.Standings(ctx, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, standingToDTO))
}

func (h *Handler) ListReferees(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReferees")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	items, err := h.seasonService.ListReferees(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list referees failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, refereeToDTO))
}

func (h *Handler) CreateReferee(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateReferee")
	defer span.End()

	var req createRefereeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityReferee.failed(actionCreate)))
		return
	}

	item, err := h.seasonService.CreateReferee(ctx, usecase.CreateRefereeInput{
		SeasonID: req.SeasonID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create referee failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err, withNotification(entityReferee.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, refereeToDTO(item), entityReferee.succeeded(actionCreate))
}

func (h *Handler) ReconcilePayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcilePayments")
	defer span.End()

	seasonID := pathID(r, "seasonID")
	result, err := h.teamService.ReconcilePaymentStatuses(ctx, seasonID, h.reconcileWorker)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile payments failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err, withNotification(errorNote("Error al conciliar pagos")))
		return
	}

	writeMutation(ctx, w, http.StatusOK, reconcileToDTO(result), successNote("Pagos conciliados"))
}
