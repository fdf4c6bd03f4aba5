package httpapi

import (
	"net/http"

	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/usecase"
)

type createMatchRequest struct {
	DivisionID   string `json:"division_id" validate:"required"`
	HomeTeamID   string `json:"home_team_id" validate:"required"`
	AwayTeamID   string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	FieldID      string `json:"field_id"`
	Round        int    `json:"round" validate:"gte=1"`
	MatchDate    string `json:"match_date" validate:"required,datetime=2006-01-02"`
	MatchTime    string `json:"match_time" validate:"omitempty,datetime=15:04"`
	RefereeName  string `json:"referee_name" validate:"omitempty,max=120"`
	IsPlayoff    bool   `json:"is_playoff"`
	PlayoffStage string `json:"playoff_stage" validate:"omitempty,max=40"`
	Notes        string `json:"notes" validate:"omitempty,max=500"`
}

type updateMatchRequest struct {
	FieldID      *string `json:"field_id"`
	Round        *int    `json:"round" validate:"omitempty,gte=1"`
	MatchDate    *string `json:"match_date" validate:"omitempty,datetime=2006-01-02"`
	MatchTime    *string `json:"match_time" validate:"omitempty,datetime=15:04"`
	Status       *string `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled postponed"`
	RefereeName  *string `json:"referee_name" validate:"omitempty,max=120"`
	IsPlayoff    *bool   `json:"is_playoff"`
	PlayoffStage *string `json:"playoff_stage" validate:"omitempty,max=40"`
	Notes        *string `json:"notes" validate:"omitempty,max=500"`
}

type matchResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0"`
	AwayScore *int `json:"away_score" validate:"required,gte=0"`
}

type generateCalendarRequest struct {
	SeasonID   string   `json:"season_id" validate:"required"`
	DivisionID string   `json:"division_id" validate:"required"`
	TeamIDs    []string `json:"team_ids" validate:"required,min=2,dive,required"`
	StartDate  string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	FieldIDs   []string `json:"field_ids" validate:"omitempty,dive,required"`
}

// GetMatchBoard accepts the localized status label ("Finalizado") or
// "Todos" in the status query parameter.
func (h *Handler) GetMatchBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchBoard")
	defer span.End()

	board, err := h.matchService.Board(ctx, usecase.BoardQuery{
		SeasonID:    queryValue(r, "seasonId"),
		DivisionID:  queryValue(r, "divisionId"),
		StatusLabel: queryValue(r, "status"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get match board failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := pathID(r, "matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionCreate)))
		return
	}
	matchDate, err := parseDate("match_date", req.MatchDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionCreate)))
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		DivisionID:   req.DivisionID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		FieldID:      req.FieldID,
		Round:        req.Round,
		MatchDate:    matchDate,
		MatchTime:    req.MatchTime,
		RefereeName:  req.RefereeName,
		IsPlayoff:    req.IsPlayoff,
		PlayoffStage: req.PlayoffStage,
		Notes:        req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "division_id", req.DivisionID, "error", err)
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, matchToDTO(item), entityMatch.succeeded(actionCreate))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req updateMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionUpdate)))
		return
	}
	matchDate, err := parseOptionalDate("match_date", req.MatchDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionUpdate)))
		return
	}

	input := usecase.UpdateMatchInput{
		FieldID:      req.FieldID,
		Round:        req.Round,
		MatchDate:    matchDate,
		MatchTime:    req.MatchTime,
		RefereeName:  req.RefereeName,
		IsPlayoff:    req.IsPlayoff,
		PlayoffStage: req.PlayoffStage,
		Notes:        req.Notes,
	}
	if req.Status != nil {
		status := match.Status(*req.Status)
		input.Status = &status
	}

	item, err := h.matchService.Update(ctx, matchID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, matchToDTO(item), entityMatch.succeeded(actionUpdate))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req matchResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(errorNote("Error al registrar resultado")))
		return
	}

	item, err := h.matchService.RecordResult(ctx, matchID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err, withNotification(errorNote("Error al registrar resultado")))
		return
	}

	writeMutation(ctx, w, http.StatusOK, matchToDTO(item), successNote("Resultado registrado"))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := pathID(r, "matchID")
	if err := h.matchService.DeleteMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err, withNotification(entityMatch.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": matchID}, entityMatch.succeeded(actionDelete))
}

func (h *Handler) GenerateCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateCalendar")
	defer span.End()

	var req generateCalendarRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityCalendar.failed(actionCreate)))
		return
	}
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err, withNotification(entityCalendar.failed(actionCreate)))
		return
	}

	items, err := h.matchService.GenerateCalendar(ctx, usecase.GenerateCalendarInput{
		SeasonID:   req.SeasonID,
		DivisionID: req.DivisionID,
		TeamIDs:    req.TeamIDs,
		StartDate:  startDate,
		FieldIDs:   req.FieldIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate calendar failed", "division_id", req.DivisionID, "error", err)
		writeError(ctx, w, err, withNotification(entityCalendar.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, roundsToDTO(items), entityCalendar.succeeded(actionCreate))
}

func roundsToDTO(items []match.Match) []roundDTO {
	groups := match.GroupByRound(items)
	out := make([]roundDTO, 0, len(groups))
	for _, group := range groups {
		out = append(out, roundDTO{Round: group.Round, Matches: mapSlice(group.Matches, matchToDTO)})
	}
	return out
}
