package match

import (
	"testing"
	"time"
)

func TestGroupByRound_NumericOrder(t *testing.T) {
	items := []Match{
		{ID: "m1", Round: 2},
		{ID: "m2", Round: 1},
		{ID: "m3", Round: 1},
		{ID: "m4", Round: 3},
	}

	groups := GroupByRound(items)
	if len(groups) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(groups))
	}
	if groups[0].Round != 1 || len(groups[0].Matches) != 2 {
		t.Fatalf("unexpected first round: %+v", groups[0])
	}
	if groups[0].Matches[0].ID != "m2" || groups[0].Matches[1].ID != "m3" {
		t.Fatalf("round order inside group changed: %+v", groups[0].Matches)
	}
	if groups[1].Round != 2 || groups[2].Round != 3 {
		t.Fatalf("unexpected round order: %d, %d", groups[1].Round, groups[2].Round)
	}

	groups = GroupByRound([]Match{{Round: 10}, {Round: 9}, {Round: 2}})
	if groups[0].Round != 2 || groups[1].Round != 9 || groups[2].Round != 10 {
		t.Fatalf("expected 2, 9, 10; got %d, %d, %d", groups[0].Round, groups[1].Round, groups[2].Round)
	}
}

func TestNextSunday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "sunday stays", in: time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC), want: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
		{name: "monday", in: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{name: "saturday crosses month", in: time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC), want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextSunday(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if got.Weekday() != time.Sunday {
				t.Fatalf("expected sunday, got %s", got.Weekday())
			}
		})
	}
}

func TestValidate_ScoreOnlyWhenCompleted(t *testing.T) {
	base := Match{ID: "m1", SeasonID: "s1", DivisionID: "d1", HomeTeamID: "a", AwayTeamID: "b", Round: 1, Status: StatusScheduled}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scored := base
	home, away := 1, 0
	scored.HomeScore, scored.AwayScore = &home, &away
	if err := scored.Validate(); err == nil {
		t.Fatalf("expected error for score on scheduled match")
	}

	done := base.Complete(2, 2)
	if done.Winner != WinnerDraw {
		t.Fatalf("expected draw, got %s", done.Winner)
	}
	if err := done.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened := done
	reopened.Status = StatusPostponed
	reopened = reopened.Normalize()
	if reopened.HomeScore != nil || reopened.Winner != "" {
		t.Fatalf("expected score cleared, got %+v", reopened)
	}
}

func TestStatusLabels(t *testing.T) {
	if StatusLabel(StatusInProgress) != "En curso" {
		t.Fatalf("unexpected label %q", StatusLabel(StatusInProgress))
	}
	status, ok := StatusFromLabel("Finalizado")
	if !ok || status != StatusCompleted {
		t.Fatalf("expected completed, got %q %v", status, ok)
	}

	items := []Match{{ID: "a", Status: StatusCompleted}, {ID: "b", Status: StatusScheduled}}
	got := FilterByStatusLabel(items, "Programado")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected filtered matches: %+v", got)
	}
}

func TestLastCompleted(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	var items []Match
	for i := 1; i <= 7; i++ {
		items = append(items, Match{ID: string(rune('a' + i)), HomeTeamID: "t1", AwayTeamID: "t2", Status: StatusCompleted, MatchDate: day(i)})
	}
	items = append(items, Match{ID: "sched", HomeTeamID: "t1", AwayTeamID: "t3", Status: StatusScheduled, MatchDate: day(20)})

	got := LastCompleted(items, "t1", 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 matches, got %d", len(got))
	}
	if !got[0].MatchDate.Equal(day(7)) {
		t.Fatalf("expected most recent first, got %s", got[0].MatchDate)
	}
}
