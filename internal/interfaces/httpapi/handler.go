package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	seasonService   *usecase.SeasonService
	categoryService *usecase.CategoryService
	fieldService    *usecase.FieldService
	playerService   *usecase.PlayerService
	teamService     *usecase.TeamService
	matchService    *usecase.MatchService
	reconcileWorker int
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	categoryService *usecase.CategoryService,
	fieldService *usecase.FieldService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	reconcileWorkers int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if reconcileWorkers <= 0 {
		reconcileWorkers = 4
	}

	return &Handler{
		seasonService:   seasonService,
		categoryService: categoryService,
		fieldService:    fieldService,
		playerService:   playerService,
		teamService:     teamService,
		matchService:    matchService,
		reconcileWorker: reconcileWorkers,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and runs the validator tags.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func parseDate(name, raw string) (time.Time, error) {
	value, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// parseOptionalDate treats an empty string as absent.
func parseOptionalDate(name string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value, err := parseDate(name, *raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func pathID(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func queryValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
