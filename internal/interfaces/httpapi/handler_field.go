package httpapi

import (
	"net/http"

	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/usecase"
)

type locationRequest struct {
	Address string `json:"address" validate:"omitempty,max=200"`
	City    string `json:"city" validate:"omitempty,max=80"`
}

type fieldRequest struct {
	Code       string          `json:"code" validate:"required,max=32"`
	Name       string          `json:"name" validate:"required,max=120"`
	Type       string          `json:"type" validate:"required,oneof=césped sintético arena otros"`
	Capacity   int             `json:"capacity" validate:"gte=0"`
	Status     string          `json:"status" validate:"omitempty,oneof=available maintenance reserved unavailable"`
	Priority   int             `json:"priority" validate:"gte=0"`
	Zone       string          `json:"zone" validate:"omitempty,oneof=top_row middle_row bottom_row west_side east_side unassigned"`
	Facilities []string        `json:"facilities" validate:"omitempty,dive,required,max=60"`
	Location   locationRequest `json:"location"`
	Notes      string          `json:"notes" validate:"omitempty,max=500"`
	IsActive   bool            `json:"is_active"`
}

type fieldStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available maintenance reserved unavailable"`
}

func (req fieldRequest) toInput() usecase.FieldInput {
	return usecase.FieldInput{
		Code:       req.Code,
		Name:       req.Name,
		Type:       field.Type(req.Type),
		Capacity:   req.Capacity,
		Status:     field.Status(req.Status),
		Priority:   req.Priority,
		Zone:       field.Zone(req.Zone),
		Facilities: req.Facilities,
		Location:   field.Location{Address: req.Location.Address, City: req.Location.City},
		Notes:      req.Notes,
		IsActive:   req.IsActive,
	}
}

// ListFields serves the registry, falling back to the catalog while no
// field has been stored yet.
func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFields")
	defer span.End()

	filter := field.Filter{
		Search: queryValue(r, "search"),
		Status: field.Status(queryValue(r, "status")),
		Type:   field.Type(queryValue(r, "type")),
	}
	listing, err := h.fieldService.Filter(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fields failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fieldListingToDTO(listing))
}

func (h *Handler) GetFieldMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFieldMap")
	defer span.End()

	groups, err := h.fieldService.Map(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get field map failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(groups, zoneGroupToDTO))
}

func (h *Handler) GetField(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetField")
	defer span.End()

	fieldID := pathID(r, "fieldID")
	item, err := h.fieldService.Get(ctx, fieldID)
	if err != nil {
		h.logger.WarnContext(ctx, "get field failed", "field_id", fieldID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fieldToDTO(item))
}

func (h *Handler) CreateField(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateField")
	defer span.End()

	var req fieldRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityField.failed(actionCreate)))
		return
	}

	item, err := h.fieldService.Create(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create field failed", "code", req.Code, "error", err)
		writeError(ctx, w, err, withNotification(entityField.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, fieldToDTO(item), entityField.succeeded(actionCreate))
}

func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateField")
	defer span.End()

	fieldID := pathID(r, "fieldID")
	var req fieldRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityField.failed(actionUpdate)))
		return
	}

	item, err := h.fieldService.Update(ctx, fieldID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update field failed", "field_id", fieldID, "error", err)
		writeError(ctx, w, err, withNotification(entityField.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, fieldToDTO(item), entityField.succeeded(actionUpdate))
}

func (h *Handler) UpdateFieldStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFieldStatus")
	defer span.End()

	fieldID := pathID(r, "fieldID")
	var req fieldStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityField.failed(actionUpdate)))
		return
	}

	item, err := h.fieldService.SetStatus(ctx, fieldID, field.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "update field status failed", "field_id", fieldID, "status", req.Status, "error", err)
		writeError(ctx, w, err, withNotification(entityField.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, fieldToDTO(item), entityField.succeeded(actionUpdate))
}

func (h *Handler) DeleteField(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteField")
	defer span.End()

	fieldID := pathID(r, "fieldID")
	if err := h.fieldService.Delete(ctx, fieldID); err != nil {
		h.logger.WarnContext(ctx, "delete field failed", "field_id", fieldID, "error", err)
		writeError(ctx, w, err, withNotification(entityField.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": fieldID}, entityField.succeeded(actionDelete))
}
