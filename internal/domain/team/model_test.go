package team

import (
	"testing"

	"github.com/tochoprime/league-console/internal/domain/match"
)

func completed(id, home, away string, hs, as int) match.Match {
	return match.Match{ID: id, HomeTeamID: home, AwayTeamID: away, Round: 1}.Complete(hs, as)
}

func TestRecord_TotalGamesComputed(t *testing.T) {
	item := Team{Stats: Stats{Wins: 3, Draws: 2, Losses: 1, Points: 11}}
	record := item.Record()
	if record.TotalGames != 6 {
		t.Fatalf("expected 6 games, got %d", record.TotalGames)
	}
}

func TestStatsFrom(t *testing.T) {
	matches := []match.Match{
		completed("m1", "a", "b", 21, 14),
		completed("m2", "c", "a", 7, 7),
		completed("m3", "a", "c", 0, 6),
		{ID: "m4", HomeTeamID: "a", AwayTeamID: "b", Status: match.StatusScheduled},
	}

	stats := StatsFrom("a", matches)
	want := Stats{Wins: 1, Draws: 1, Losses: 1, PointsFor: 28, PointsAgainst: 27, Points: 4}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestStandingsFrom(t *testing.T) {
	teams := []Team{{ID: "a", Name: "Águilas"}, {ID: "b", Name: "Búhos"}, {ID: "c", Name: "Cobras"}}
	matches := []match.Match{
		completed("m1", "a", "b", 14, 7),
		completed("m2", "c", "b", 21, 0),
		completed("m3", "a", "c", 7, 7),
	}

	table := StandingsFrom(teams, matches)
	if table[0].Team.ID != "c" || table[1].Team.ID != "a" || table[2].Team.ID != "b" {
		t.Fatalf("unexpected order: %s %s %s", table[0].Team.ID, table[1].Team.ID, table[2].Team.ID)
	}
	if table[0].Position != 1 || table[2].Position != 3 {
		t.Fatalf("positions not assigned")
	}
	if table[2].Record.TotalGames != 2 || table[2].Record.Losses != 2 {
		t.Fatalf("unexpected record for b: %+v", table[2].Record)
	}
}
