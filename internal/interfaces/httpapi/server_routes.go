package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerHierarchyRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("POST /v1/seasons", handler.CreateSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("PUT /v1/seasons/{seasonID}", handler.UpdateSeason)
	mux.HandleFunc("DELETE /v1/seasons/{seasonID}", handler.DeleteSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/divisions", handler.ListDivisions)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/referees", handler.ListReferees)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/reconcile-payments", handler.ReconcilePayments)

	mux.HandleFunc("POST /v1/divisions", handler.CreateDivision)
	mux.HandleFunc("GET /v1/divisions/{divisionID}", handler.GetDivision)
	mux.HandleFunc("PUT /v1/divisions/{divisionID}", handler.UpdateDivision)
	mux.HandleFunc("DELETE /v1/divisions/{divisionID}", handler.DeleteDivision)
	mux.HandleFunc("GET /v1/divisions/{divisionID}/standings", handler.ListStandings)

	mux.HandleFunc("POST /v1/referees", handler.CreateReferee)
}

func registerCategoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/divisions/{divisionID}/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/divisions/{divisionID}/categories/default-set", handler.GetDefaultSetAvailability)
	mux.HandleFunc("POST /v1/divisions/{divisionID}/categories/default-set", handler.CreateDefaultCategories)
	mux.HandleFunc("POST /v1/categories", handler.CreateCategory)
	mux.HandleFunc("GET /v1/categories/{categoryID}", handler.GetCategory)
	mux.HandleFunc("PUT /v1/categories/{categoryID}", handler.UpdateCategory)
	mux.HandleFunc("DELETE /v1/categories/{categoryID}", handler.DeleteCategory)
}

func registerFieldRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fields", handler.ListFields)
	mux.HandleFunc("GET /v1/fields/map", handler.GetFieldMap)
	mux.HandleFunc("POST /v1/fields", handler.CreateField)
	mux.HandleFunc("GET /v1/fields/{fieldID}", handler.GetField)
	mux.HandleFunc("PUT /v1/fields/{fieldID}", handler.UpdateField)
	mux.HandleFunc("PATCH /v1/fields/{fieldID}/status", handler.UpdateFieldStatus)
	mux.HandleFunc("DELETE /v1/fields/{fieldID}", handler.DeleteField)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("PATCH /v1/players/{playerID}/status", handler.UpdatePlayerStatus)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)
}

// Payments are append-only: no PUT or DELETE is registered, so the mux
// answers 405 for them.
func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeamDetail)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)
	mux.HandleFunc("POST /v1/teams/{teamID}/players", handler.AddTeamPlayer)
	mux.HandleFunc("PUT /v1/teams/{teamID}/captain", handler.SetCaptain)
	mux.HandleFunc("PUT /v1/teams/{teamID}/vice-captain", handler.SetViceCaptain)
	mux.HandleFunc("GET /v1/teams/{teamID}/payments", handler.ListPayments)
	mux.HandleFunc("POST /v1/teams/{teamID}/payments", handler.AddPayment)
	mux.HandleFunc("POST /v1/teams/{teamID}/payment-overdue", handler.MarkPaymentOverdue)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.GetMatchBoard)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}/result", handler.RecordMatchResult)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.DeleteMatch)
	mux.HandleFunc("POST /v1/calendars", handler.GenerateCalendar)
}

func registerFormRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/forms/{entity}", handler.GetForm)
}
