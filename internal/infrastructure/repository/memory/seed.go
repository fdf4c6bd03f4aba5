package memory

import (
	"time"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
)

const (
	SeedSeasonID        = "season-2025-primavera"
	SeedDivisionVaronil = "division-varonil"
	SeedDivisionFemenil = "division-femenil"
	SeedCategoryVaronil = "category-varonil-a"
)

// SeedDataset is the demo league loaded in dev mode. Fields are left empty
// so the board shows the fallback catalog.
func SeedDataset() Dataset {
	start := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 29, 0, 0, 0, 0, time.UTC)
	registered := time.Date(2025, time.February, 10, 18, 0, 0, 0, time.UTC)

	return Dataset{
		Seasons: []season.Season{
			{ID: SeedSeasonID, Name: "Primavera 2025", StartDate: &start, EndDate: &end, IsActive: true, CreatedAt: registered},
		},
		Divisions: []division.Division{
			{ID: SeedDivisionVaronil, SeasonID: SeedSeasonID, Name: "Varonil", Color: "#1D4ED8"},
			{ID: SeedDivisionFemenil, SeasonID: SeedSeasonID, Name: "Femenil", Color: "#DB2777"},
		},
		Categories: []category.Category{
			{
				ID:          SeedCategoryVaronil,
				DivisionID:  SeedDivisionVaronil,
				SeasonID:    SeedSeasonID,
				Name:        "A",
				Level:       1,
				TeamLimit:   category.DefaultTeamLimit,
				PlayerLimit: category.DefaultPlayerLimit,
				Price:       category.DefaultPrice,
				Rules:       []string{"Partidos de 2 tiempos de 20 minutos", "Sin contacto"},
				IsActive:    true,
			},
		},
		Teams: []team.Team{
			seedTeam("team-halcones", "Halcones", "HAL", "#0F172A", registered),
			seedTeam("team-lobos", "Lobos", "LOB", "#B91C1C", registered),
			seedTeam("team-toros", "Toros", "TOR", "#92400E", registered),
			seedTeam("team-coyotes", "Coyotes", "COY", "#CA8A04", registered),
		},
		Referees: []referee.Referee{
			{ID: "referee-ramirez", SeasonID: SeedSeasonID, Name: "Jorge Ramírez", IsActive: true},
			{ID: "referee-ortega", SeasonID: SeedSeasonID, Name: "Lucía Ortega", IsActive: true},
		},
	}
}

func seedTeam(id, name, short, color string, registered time.Time) team.Team {
	return team.Team{
		ID:               id,
		CategoryID:       SeedCategoryVaronil,
		SeasonID:         SeedSeasonID,
		Name:             name,
		ShortName:        short,
		PrimaryColor:     color,
		SecondaryColor:   "#FFFFFF",
		Status:           team.StatusActive,
		PaymentStatus:    team.PaymentPending,
		RegistrationDate: registered,
	}
}
