package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
	matchmock "github.com/tochoprime/league-console/internal/mocks/domain/match"
)

func newMatchServiceForTest(t *testing.T, repos memory.Repositories, calendar match.CalendarGenerator) *MatchService {
	t.Helper()

	service := NewMatchService(
		repos.Seasons,
		repos.Divisions,
		repos.Categories,
		repos.Teams,
		repos.Matches,
		repos.Referees,
		repos.Fields,
		calendar,
		newSequence("match-"),
		nopLogger(),
	)
	service.clock = clockwork.NewFakeClockAt(time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC))
	return service
}

func TestMatchService_GenerateCalendar_StoresCollaboratorSlate(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	generator := matchmock.NewCalendarGenerator(t)
	service := newMatchServiceForTest(t, repos, generator)

	sunday := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	generator.
		On("GenerateCalendar", mock.Anything, mock.MatchedBy(func(req match.CalendarRequest) bool {
			return req.DivisionID == memory.SeedDivisionVaronil &&
				req.SeasonID == memory.SeedSeasonID &&
				len(req.TeamIDs) == 2 &&
				req.StartDate.Weekday() == time.Sunday
		})).
		Return([]match.Match{
			{HomeTeamID: "team-halcones", AwayTeamID: "team-lobos", Round: 2, MatchDate: sunday.AddDate(0, 0, 7), MatchTime: "10:00"},
			{HomeTeamID: "team-lobos", AwayTeamID: "team-halcones", Round: 1, MatchDate: sunday, MatchTime: "10:00"},
		}, nil).
		Once()

	got, err := service.GenerateCalendar(context.Background(), GenerateCalendarInput{
		DivisionID: memory.SeedDivisionVaronil,
		TeamIDs:    []string{"team-halcones", " team-lobos ", "team-halcones"},
	})
	if err != nil {
		t.Fatalf("generate calendar: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected match count: %d", len(got))
	}
	for _, item := range got {
		if item.ID == "" || item.Status != match.StatusScheduled {
			t.Fatalf("generated match not stored correctly: %+v", item)
		}
		if item.HomeTeam == nil || item.AwayTeam == nil {
			t.Fatalf("missing team snapshot on %s", item.ID)
		}
	}
}

func TestMatchService_GenerateCalendar_Guards(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	ctx := context.Background()

	withGenerator := newMatchServiceForTest(t, repos, matchmock.NewCalendarGenerator(t))
	_, err := withGenerator.GenerateCalendar(ctx, GenerateCalendarInput{
		DivisionID: memory.SeedDivisionVaronil,
		TeamIDs:    []string{"team-halcones"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a single team, got %v", err)
	}

	_, err = withGenerator.GenerateCalendar(ctx, GenerateCalendarInput{
		DivisionID: memory.SeedDivisionFemenil,
		TeamIDs:    []string{"team-halcones", "team-lobos"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for teams outside the division, got %v", err)
	}

	withoutGenerator := newMatchServiceForTest(t, repos, nil)
	_, err = withoutGenerator.GenerateCalendar(ctx, GenerateCalendarInput{
		DivisionID: memory.SeedDivisionVaronil,
		TeamIDs:    []string{"team-halcones", "team-lobos"},
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestMatchService_GenerateCalendar_CollaboratorFailure(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	generator := matchmock.NewCalendarGenerator(t)
	service := newMatchServiceForTest(t, repos, generator)

	generator.
		On("GenerateCalendar", mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream 503")).
		Once()

	_, err := service.GenerateCalendar(context.Background(), GenerateCalendarInput{
		DivisionID: memory.SeedDivisionVaronil,
		TeamIDs:    []string{"team-toros", "team-coyotes"},
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	stored, _ := repos.Matches.ListByDivision(context.Background(), memory.SeedDivisionVaronil)
	if len(stored) != 0 {
		t.Fatalf("failed generation must not store matches, got %d", len(stored))
	}
}

func TestMatchService_RecordResult_RefoldsStatsAndStandings(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newMatchServiceForTest(t, repos, nil)
	ctx := context.Background()
	date := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)

	first, err := service.Create(ctx, CreateMatchInput{DivisionID: memory.SeedDivisionVaronil, HomeTeamID: "team-halcones", AwayTeamID: "team-lobos", Round: 1, MatchDate: date})
	if err != nil {
		t.Fatalf("create first match: %v", err)
	}
	second, err := service.Create(ctx, CreateMatchInput{DivisionID: memory.SeedDivisionVaronil, HomeTeamID: "team-toros", AwayTeamID: "team-halcones", Round: 2, MatchDate: date.AddDate(0, 0, 7)})
	if err != nil {
		t.Fatalf("create second match: %v", err)
	}

	completed, err := service.RecordResult(ctx, first.ID, 28, 14)
	if err != nil {
		t.Fatalf("record first result: %v", err)
	}
	if completed.Winner != match.WinnerHome || completed.Status != match.StatusCompleted {
		t.Fatalf("unexpected completed match: %+v", completed)
	}
	if _, err := service.RecordResult(ctx, second.ID, 7, 7); err != nil {
		t.Fatalf("record second result: %v", err)
	}

	halcones, _, _ := repos.Teams.GetByID(ctx, "team-halcones")
	if halcones.Stats.Wins != 1 || halcones.Stats.Draws != 1 || halcones.Stats.Points != 4 || halcones.Stats.PointsFor != 35 {
		t.Fatalf("unexpected halcones stats: %+v", halcones.Stats)
	}

	table, err := service.Standings(ctx, memory.SeedDivisionVaronil)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if table[0].Team.ID != "team-halcones" || table[0].Position != 1 {
		t.Fatalf("unexpected leader: %+v", table[0])
	}

	// Reopening a completed match clears the score and refolds stats.
	status := match.StatusPostponed
	if _, err := service.Update(ctx, second.ID, UpdateMatchInput{Status: &status}); err != nil {
		t.Fatalf("postpone match: %v", err)
	}
	halcones, _, _ = repos.Teams.GetByID(ctx, "team-halcones")
	if halcones.Stats.Draws != 0 || halcones.Stats.Points != 3 {
		t.Fatalf("stats not refolded after reopening: %+v", halcones.Stats)
	}

	if _, err := service.RecordResult(ctx, first.ID, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}
}

func TestMatchService_Update_CannotCompleteWithoutScore(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newMatchServiceForTest(t, repos, nil)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateMatchInput{DivisionID: memory.SeedDivisionVaronil, HomeTeamID: "team-toros", AwayTeamID: "team-coyotes", Round: 1})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	status := match.StatusCompleted
	if _, err := service.Update(ctx, created.ID, UpdateMatchInput{Status: &status}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	cancelled := match.StatusCancelled
	if _, err := service.Update(ctx, created.ID, UpdateMatchInput{Status: &cancelled}); err != nil {
		t.Fatalf("cancel match: %v", err)
	}
	if _, err := service.RecordResult(ctx, created.ID, 1, 0); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for cancelled match, got %v", err)
	}
}

func TestMatchService_Board(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newMatchServiceForTest(t, repos, nil)
	ctx := context.Background()

	for round := 1; round <= 3; round++ {
		if _, err := service.Create(ctx, CreateMatchInput{
			DivisionID: memory.SeedDivisionVaronil,
			HomeTeamID: "team-halcones",
			AwayTeamID: "team-toros",
			Round:      4 - round,
		}); err != nil {
			t.Fatalf("create match round %d: %v", round, err)
		}
	}

	empty, err := service.Board(ctx, BoardQuery{})
	if err != nil {
		t.Fatalf("board without season: %v", err)
	}
	if len(empty.Seasons) != 1 || len(empty.Matches) != 0 {
		t.Fatalf("unexpected board without season: seasons=%d matches=%d", len(empty.Seasons), len(empty.Matches))
	}

	board, err := service.Board(ctx, BoardQuery{SeasonID: memory.SeedSeasonID, DivisionID: memory.SeedDivisionVaronil})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(board.Divisions) != 2 || len(board.Teams) != 4 || len(board.Referees) != 2 {
		t.Fatalf("unexpected board lookups: divisions=%d teams=%d referees=%d", len(board.Divisions), len(board.Teams), len(board.Referees))
	}
	if len(board.Rounds) != 3 || board.Rounds[0].Round != 1 || board.Rounds[2].Round != 3 {
		t.Fatalf("rounds not grouped in numeric order: %+v", board.Rounds)
	}

	filtered, err := service.Board(ctx, BoardQuery{SeasonID: memory.SeedSeasonID, StatusLabel: match.StatusLabel(match.StatusCompleted)})
	if err != nil {
		t.Fatalf("filtered board: %v", err)
	}
	if len(filtered.Matches) != 0 {
		t.Fatalf("expected no completed matches, got %d", len(filtered.Matches))
	}

	if _, err := service.Board(ctx, BoardQuery{SeasonID: "season-other", DivisionID: memory.SeedDivisionVaronil}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for mismatched division, got %v", err)
	}
}

func TestMatchService_DeleteMatch(t *testing.T) {
	t.Parallel()

	repos := newSeededRepos(t)
	service := newMatchServiceForTest(t, repos, nil)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateMatchInput{DivisionID: memory.SeedDivisionVaronil, HomeTeamID: "team-lobos", AwayTeamID: "team-coyotes", Round: 1})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := service.RecordResult(ctx, created.ID, 0, 6); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := service.DeleteMatch(ctx, created.ID); err != nil {
		t.Fatalf("delete match: %v", err)
	}
	coyotes, _, _ := repos.Teams.GetByID(ctx, "team-coyotes")
	if coyotes.Stats.Wins != 0 {
		t.Fatalf("stats not refolded after delete: %+v", coyotes.Stats)
	}
	if _, err := service.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
