package httpapi

import (
	"net/http"

	"github.com/tochoprime/league-console/internal/usecase"
)

type createCategoryRequest struct {
	DivisionID  string   `json:"division_id" validate:"required"`
	SeasonID    string   `json:"season_id"`
	Name        string   `json:"name" validate:"required,max=8"`
	Level       int      `json:"level" validate:"gte=1"`
	TeamLimit   int      `json:"team_limit" validate:"gte=1"`
	PlayerLimit int      `json:"player_limit" validate:"gte=1"`
	Price       int64    `json:"price" validate:"gte=0"`
	Rules       []string `json:"rules" validate:"omitempty,dive,required,max=280"`
	IsActive    bool     `json:"is_active"`
}

type updateCategoryRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=8"`
	Level       *int     `json:"level" validate:"omitempty,gte=1"`
	TeamLimit   *int     `json:"team_limit" validate:"omitempty,gte=1"`
	PlayerLimit *int     `json:"player_limit" validate:"omitempty,gte=1"`
	Price       *int64   `json:"price" validate:"omitempty,gte=0"`
	Rules       []string `json:"rules" validate:"omitempty,dive,required,max=280"`
	IsActive    *bool    `json:"is_active"`
}

type defaultSetAvailabilityDTO struct {
	DivisionID string `json:"division_id"`
	Available  bool   `json:"available"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	items, err := h.categoryService.ListByDivision(ctx, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list categories failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, categoryToDTO))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCategory")
	defer span.End()

	categoryID := pathID(r, "categoryID")
	item, err := h.categoryService.Get(ctx, categoryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get category failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, categoryToDTO(item))
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCategory")
	defer span.End()

	var req createCategoryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityCategory.failed(actionCreate)))
		return
	}

	item, err := h.categoryService.Create(ctx, usecase.CreateCategoryInput{
		DivisionID:  req.DivisionID,
		SeasonID:    req.SeasonID,
		Name:        req.Name,
		Level:       req.Level,
		TeamLimit:   req.TeamLimit,
		PlayerLimit: req.PlayerLimit,
		Price:       req.Price,
		Rules:       req.Rules,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create category failed", "division_id", req.DivisionID, "name", req.Name, "error", err)
		writeError(ctx, w, err, withNotification(entityCategory.failed(actionCreate)))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, categoryToDTO(item), entityCategory.succeeded(actionCreate))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCategory")
	defer span.End()

	categoryID := pathID(r, "categoryID")
	var req updateCategoryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err, withNotification(entityCategory.failed(actionUpdate)))
		return
	}

	item, err := h.categoryService.Update(ctx, categoryID, usecase.UpdateCategoryInput{
		Name:        req.Name,
		Level:       req.Level,
		TeamLimit:   req.TeamLimit,
		PlayerLimit: req.PlayerLimit,
		Price:       req.Price,
		Rules:       req.Rules,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update category failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err, withNotification(entityCategory.failed(actionUpdate)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, categoryToDTO(item), entityCategory.succeeded(actionUpdate))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCategory")
	defer span.End()

	categoryID := pathID(r, "categoryID")
	if err := h.categoryService.Delete(ctx, categoryID); err != nil {
		h.logger.WarnContext(ctx, "delete category failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err, withNotification(entityCategory.failed(actionDelete)))
		return
	}

	writeMutation(ctx, w, http.StatusOK, map[string]string{"id": categoryID}, entityCategory.succeeded(actionDelete))
}

func (h *Handler) GetDefaultSetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDefaultSetAvailability")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	available, err := h.categoryService.CanCreateDefaultSet(ctx, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "check default categories failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, defaultSetAvailabilityDTO{DivisionID: divisionID, Available: available})
}

func (h *Handler) CreateDefaultCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDefaultCategories")
	defer span.End()

	divisionID := pathID(r, "divisionID")
	items, err := h.categoryService.CreateDefaultSet(ctx, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "create default categories failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err, withNotification(errorNote("Error al crear categorías predeterminadas")))
		return
	}

	writeMutation(ctx, w, http.StatusCreated, mapSlice(items, categoryToDTO), successNote("Categorías predeterminadas creadas"))
}
