package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/team"
	"github.com/tochoprime/league-console/internal/usecase"
)

type coachRequest struct {
	Name  string `json:"name" validate:"omitempty,max=120"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
	Email string `json:"email" validate:"omitempty,email"`
}

type createTeamRequest struct {
	CategoryID     string       `json:"category_id" validate:"required"`
	Name           string       `json:"name" validate:"required,max=80"`
	ShortName      string       `json:"short_name" validate:"omitempty,max=8"`
	PrimaryColor   string       `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor string       `json:"secondary_color" validate:"omitempty,hexcolor"`
	Coach          coachRequest `json:"coach"`
	Notes          string       `json:"notes" validate:"omitempty,max=500"`
}

type updateTeamRequest struct {
	Name           *string       `json:"name" validate:"omitempty,min=1,max=80"`
	ShortName      *string       `json:"short_name" validate:"omitempty,max=8"`
	PrimaryColor   *string       `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor *string       `json:"secondary_color" validate:"omitempty,hexcolor"`
	Coach          *coachRequest `json:"coach"`
	Notes          *string       `json:"notes" validate:"omitempty,max=500"`
	Status         *string       `json:"status" validate:"omitempty,oneof=pending approved active suspended rejected"`
}

type teamRoleRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type addPaymentRequest struct {
	Amount        int64   `json:"amount" validate:"gt=0"`
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Method        string  `json:"method" validate:"omitempty,oneof=cash transfer card check"`
	Reference     string  `json:"reference" validate:"omitempty,max=80"`
	Notes         string  `json:"notes" validate:"omitempty,max=500"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending paid cancelled refunded"`
	InvoiceNumber string  `json:"invoice_number" validate:"omitempty,max=40"`
	CreatedBy     string  `json:"created_by" validate:"omitempty,max=80"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx, usecase.ListTeamsQuery{
		SeasonID:   queryValue(r, "seasonId"),
		DivisionID: queryValue(r, "divisionId"),
		CategoryID: queryValue(r, "categoryId"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, teamToDTO))
}

// GetTeamDetail sends the console back to the team list when the team is gone.
func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	teamID := pathID(r, "teamID")
	detail, err := h.teamService.GetDetail(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team detail failed", "team_id", teamID, "error", err)
		if errors.Is(err, usecase.ErrNotFound) {
			writeError(ctx, w, err, withRedirect("/teams"), withNotification(errorNote("Equipo no encontrado")))
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailToDTO(detail))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionCreate)))
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		ShortName:      req.ShortName,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Coach:          team.Coach{Name: req.Coach.Name, Phone: req.Coach.Phone, Email: req.Coach.Email},
		Notes:          req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "category_id", req.CategoryID, "name", req.Name, "error", err)
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, teamToDTO(item), entityTeam.succeeded(actionCreate))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID := pathID(r, "teamID")
	var req updateTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionUpdate)))
		return
	}

	input := usecase.UpdateTeamInput{
		Name:           req.Name,
		ShortName:      req.ShortName,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Notes:          req.Notes,
	}
	if req.Coach != nil {
		input.Coach = &team.Coach{Name: req.Coach.Name, Phone: req.Coach.Phone, Email: req.Coach.Email}
	}
	if req.Status != nil {
		status := team.Status(*req.Status)
		input.Status = &status
	}

	item, err := h.teamService.UpdateTeam(ctx, teamID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, teamToDTO(item), entityTeam.succeeded(actionUpdate))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := pathID(r, "teamID")
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": teamID}, entityTeam.succeeded(actionDelete))
}

func (h *Handler) AddTeamPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTeamPlayer")
	defer span.End()

	teamID := pathID(r, "teamID")
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

	item, err := h.teamService.AddPlayer(ctx, teamID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "add roster player failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err, withNotification(entityPlayer.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, playerToDTO(item), entityPlayer.succeeded(actionCreate))
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	h.assignTeamRole(w, r.WithContext(ctx), "Capitán asignado", h.teamService.SetCaptain)
}

func (h *Handler) SetViceCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetViceCaptain")
	defer span.End()

	h.assignTeamRole(w, r.WithContext(ctx), "Subcapitán asignado", h.teamService.SetViceCaptain)
}

func (h *Handler) assignTeamRole(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	assign func(ctx context.Context, teamID, playerID string) ([]player.Player, error),
) {
	ctx := r.Context()
	teamID := pathID(r, "teamID")

	var req teamRoleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionUpdate)))
		return
	}

	roster, err := assign(ctx, teamID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign team role failed", "team_id", teamID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, mapSlice(roster, playerToDTO), successNote(message))
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayments")
	defer span.End()

	teamID := pathID(r, "teamID")
	items, err := h.teamService.ListPayments(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list payments failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, paymentToDTO))
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPayment")
	defer span.End()

	teamID := pathID(r, "teamID")
	var req addPaymentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityPayment.failed(actionCreate)))
		return
	}
	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		writeError(ctx, w, err, withNotification(entityPayment.failed(actionCreate)))
		return
	}

	result, err := h.teamService.AddPayment(ctx, teamID, usecase.PaymentInput{
		Amount:        req.Amount,
		Date:          date,
		Method:        payment.Method(req.Method),
		Reference:     req.Reference,
		Notes:         req.Notes,
		Status:        payment.Status(req.Status),
		InvoiceNumber: req.InvoiceNumber,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add payment failed", "team_id", teamID, "amount", req.Amount, "error", err)
		writeError(ctx, w, err, withNotification(entityPayment.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, addPaymentDTO{
		Payment:       paymentToDTO(result.Payment),
		PaymentStatus: string(result.PaymentStatus),
	}, successNote("Pago registrado"))
}

func (h *Handler) MarkPaymentOverdue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkPaymentOverdue")
	defer span.End()

	teamID := pathID(r, "teamID")
	item, err := h.teamService.MarkPaymentOverdue(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark payment overdue failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err, withNotification(entityTeam.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, teamToDTO(item), infoNote("Pago marcado como vencido"))
}
