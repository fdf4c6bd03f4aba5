package team

import (
	"sort"

	"github.com/tochoprime/league-console/internal/domain/match"
)

const (
	PointsWin  = 3
	PointsDraw = 1
)

// StatsFrom folds every completed match involving teamID.
func StatsFrom(teamID string, matches []match.Match) Stats {
	var stats Stats
	for _, item := range matches {
		if item.Status != match.StatusCompleted || item.HomeScore == nil || item.AwayScore == nil {
			continue
		}

		var scored, conceded int
		switch teamID {
		case item.HomeTeamID:
			scored, conceded = *item.HomeScore, *item.AwayScore
		case item.AwayTeamID:
			scored, conceded = *item.AwayScore, *item.HomeScore
		default:
			continue
		}

		stats.PointsFor += scored
		stats.PointsAgainst += conceded
		switch {
		case scored > conceded:
			stats.Wins++
			stats.Points += PointsWin
		case scored == conceded:
			stats.Draws++
			stats.Points += PointsDraw
		default:
			stats.Losses++
		}
	}
	return stats
}

type Standing struct {
	Position int
	Team     Team
	Record   Record
	Diff     int
}

// StandingsFrom recomputes the table for teams from completed matches,
// ordered by points, then score difference, then name.
func StandingsFrom(teams []Team, matches []match.Match) []Standing {
	out := make([]Standing, 0, len(teams))
	for _, item := range teams {
		item.Stats = StatsFrom(item.ID, matches)
		out = append(out, Standing{
			Team:   item,
			Record: item.Record(),
			Diff:   item.Stats.PointsFor - item.Stats.PointsAgainst,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Record.Points != out[j].Record.Points {
			return out[i].Record.Points > out[j].Record.Points
		}
		if out[i].Diff != out[j].Diff {
			return out[i].Diff > out[j].Diff
		}
		return out[i].Team.Name < out[j].Team.Name
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
