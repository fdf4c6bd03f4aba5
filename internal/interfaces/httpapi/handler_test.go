package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/tochoprime/league-console/internal/domain/team"
	"github.com/tochoprime/league-console/internal/infrastructure/catalog"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/phone"
	"github.com/tochoprime/league-console/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := memory.NewStore(memory.SeedDataset())
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	repos := store.Repositories()
	fields, err := catalog.NewFieldCatalog()
	if err != nil {
		t.Fatalf("load field catalog: %v", err)
	}

	logger := logging.NewNop()
	ids := &idgen.Sequence{Prefix: "id-"}
	phones := phone.NewNormalizer(phone.DefaultRegion)

	handler := NewHandler(
		usecase.NewSeasonService(repos.Seasons, repos.Divisions, repos.Categories, repos.Referees, phones, ids, logger),
		usecase.NewCategoryService(repos.Divisions, repos.Categories, repos.Teams, ids, logger),
		usecase.NewFieldService(repos.Fields, repos.Matches, fields, ids, logger),
		usecase.NewPlayerService(repos.Players, repos.Teams, phones, ids, logger),
		usecase.NewTeamService(repos.Seasons, repos.Divisions, repos.Categories, repos.Teams, repos.Players, repos.Payments, repos.Matches, phones, ids, logger),
		usecase.NewMatchService(repos.Seasons, repos.Divisions, repos.Categories, repos.Teams, repos.Matches, repos.Referees, repos.Fields, nil, ids, logger),
		2,
		logger,
	)
	return NewRouter(handler, logger, true, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		return rec, nil
	}
	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal %s %s response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, envelope
}

func notificationOf(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	note, ok := envelope["notification"].(map[string]any)
	if !ok {
		t.Fatalf("expected notification in %v", envelope)
	}
	return note
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestRouter_TeamDetailNotFoundRedirectsToList(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/team-ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if envelope["redirectTo"] != "/teams" {
		t.Fatalf("expected redirectTo=/teams, got %v", envelope["redirectTo"])
	}
}

type unavailableTeams struct {
	team.Repository
}

func (unavailableTeams) GetByID(context.Context, string) (team.Team, bool, error) {
	return team.Team{}, false, errors.New("connection reset")
}

func TestRouter_TeamDetailStorageFailureStaysOnPage(t *testing.T) {
	store, err := memory.NewStore(memory.SeedDataset())
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	repos := store.Repositories()
	logger := logging.NewNop()
	ids := &idgen.Sequence{Prefix: "id-"}
	teams := unavailableTeams{Repository: repos.Teams}

	handler := NewHandler(
		nil,
		nil,
		nil,
		nil,
		usecase.NewTeamService(repos.Seasons, repos.Divisions, repos.Categories, teams, repos.Players, repos.Payments, repos.Matches, nil, ids, logger),
		nil,
		2,
		logger,
	)
	router := NewRouter(handler, logger, false, nil)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/team-halcones", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if _, ok := envelope["redirectTo"]; ok {
		t.Fatalf("storage failure must not redirect, got %v", envelope["redirectTo"])
	}
	if _, ok := envelope["notification"]; ok {
		t.Fatalf("storage failure must not claim the team is missing, got %v", envelope["notification"])
	}
}

func TestRouter_TeamDetailFound(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/team-halcones", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data := envelope["data"].(map[string]any)
	balance := data["balance"].(map[string]any)
	if balance["price"] != float64(2000) {
		t.Fatalf("expected category price in balance, got %v", balance)
	}
}

func TestRouter_PaymentsCannotBeEditedOrRemoved(t *testing.T) {
	router := newTestRouter(t)

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec, _ := doRequest(t, router, method, "/v1/teams/team-halcones/payments", `{}`)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s payments: expected 405, got %d", method, rec.Code)
		}
	}
}

func TestRouter_AddPaymentUpdatesStatus(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/teams/team-lobos/payments", `{"amount":2000,"method":"transfer"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	data := envelope["data"].(map[string]any)
	if data["payment_status"] != "paid" {
		t.Fatalf("expected payment_status=paid, got %v", data["payment_status"])
	}
	if note := notificationOf(t, envelope); note["message"] != "Pago registrado" {
		t.Fatalf("unexpected notification %v", note)
	}
}

func TestRouter_CreateCategoryNotifies(t *testing.T) {
	router := newTestRouter(t)

	body := `{"division_id":"` + memory.SeedDivisionVaronil + `","name":"b","level":2,"team_limit":12,"player_limit":18,"price":1800,"is_active":true}`
	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/categories", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	note := notificationOf(t, envelope)
	if note["kind"] != "success" || note["message"] != "Categoría creada" {
		t.Fatalf("unexpected notification %v", note)
	}
	data := envelope["data"].(map[string]any)
	if data["name"] != "B" {
		t.Fatalf("expected normalized name B, got %v", data["name"])
	}
}

func TestRouter_DuplicateCategoryConflicts(t *testing.T) {
	router := newTestRouter(t)

	body := `{"division_id":"` + memory.SeedDivisionVaronil + `","name":"A","level":1,"team_limit":12,"player_limit":18,"price":1800}`
	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/categories", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if note := notificationOf(t, envelope); note["message"] != "Error al crear categoría" {
		t.Fatalf("unexpected notification %v", note)
	}
}

func TestRouter_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		path string
		body string
	}{
		{"bad color", "/v1/divisions", `{"season_id":"` + memory.SeedSeasonID + `","name":"Mixta","color":"blue"}`},
		{"unknown field", "/v1/divisions", `{"season_id":"` + memory.SeedSeasonID + `","name":"Mixta","colour":"#fff"}`},
		{"empty body", "/v1/seasons", ``},
		{"same teams", "/v1/matches", `{"division_id":"` + memory.SeedDivisionVaronil + `","home_team_id":"team-lobos","away_team_id":"team-lobos","round":1,"match_date":"2025-03-09"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, envelope := doRequest(t, router, http.MethodPost, tc.path, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
			if note := notificationOf(t, envelope); note["kind"] != "error" {
				t.Fatalf("expected error notification, got %v", note)
			}
		})
	}
}

func TestRouter_FieldListFallsBackToCatalog(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/fields?type=arena", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := envelope["data"].(map[string]any)
	if data["fallback"] != true {
		t.Fatalf("expected catalog fallback")
	}
	if got := len(data["fields"].([]any)); got != 3 {
		t.Fatalf("expected 3 sand fields, got %d", got)
	}
}

func TestRouter_CalendarWithoutGeneratorUnavailable(t *testing.T) {
	router := newTestRouter(t)

	body := `{"season_id":"` + memory.SeedSeasonID + `","division_id":"` + memory.SeedDivisionVaronil + `","team_ids":["team-halcones","team-lobos"],"start_date":"2025-03-05"}`
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/calendars", body)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_FormDialogs(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/forms/categories?id="+memory.SeedCategoryVaronil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := envelope["data"].(map[string]any)
	dlg := data["dialog"].(map[string]any)
	if dlg["title"] != "Editar categoría" || dlg["size"] != "md" {
		t.Fatalf("unexpected dialog %v", dlg)
	}
	draft := data["draft"].(map[string]any)
	if draft["editing_id"] != memory.SeedCategoryVaronil || draft["name"] != "A" {
		t.Fatalf("unexpected draft %v", draft)
	}

	_, envelope = doRequest(t, router, http.MethodGet, "/v1/forms/players?vocabulary=flag_football", "")
	data = envelope["data"].(map[string]any)
	if data["dialog"].(map[string]any)["title"] != "Nuevo jugador" {
		t.Fatalf("unexpected dialog %v", data["dialog"])
	}
	positions := data["draft"].(map[string]any)["positions"].([]any)
	if len(positions) != 6 || positions[0] != "quarterback" {
		t.Fatalf("unexpected positions %v", positions)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/forms/trophies", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown form, got %d", rec.Code)
	}
}

func TestRouter_DeleteSeasonRestricted(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodDelete, "/v1/seasons/"+memory.SeedSeasonID, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if note := notificationOf(t, envelope); note["message"] != "Error al eliminar temporada" {
		t.Fatalf("unexpected notification %v", note)
	}
}
