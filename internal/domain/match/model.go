package match

import (
	"fmt"
	"sort"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusPostponed  Status = "postponed"
)

var statusLabels = map[Status]string{
	StatusScheduled:  "Programado",
	StatusInProgress: "En curso",
	StatusCompleted:  "Finalizado",
	StatusCancelled:  "Cancelado",
	StatusPostponed:  "Pospuesto",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusLabel returns the localized label shown by the board filter.
func StatusLabel(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// StatusFromLabel resolves a localized label back to its status.
func StatusFromLabel(label string) (Status, bool) {
	for status, candidate := range statusLabels {
		if candidate == label {
			return status, true
		}
	}
	return "", false
}

type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
	WinnerDraw Winner = "draw"
)

// DecideWinner compares a final score.
func DecideWinner(home, away int) Winner {
	switch {
	case home > away:
		return WinnerHome
	case away > home:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// TeamSnapshot is the denormalized team data stored with a match.
type TeamSnapshot struct {
	Name         string
	PrimaryColor string
}

// Match is a fixture between two teams of the same division.
type Match struct {
	ID           string
	SeasonID     string
	DivisionID   string
	HomeTeamID   string
	AwayTeamID   string
	HomeTeam     *TeamSnapshot
	AwayTeam     *TeamSnapshot
	FieldID      string
	Round        int
	MatchDate    time.Time
	MatchTime    string
	Status       Status
	HomeScore    *int
	AwayScore    *int
	Winner       Winner
	RefereeName  string
	IsPlayoff    bool
	PlayoffStage string
	Notes        string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.DivisionID == "" {
		return fmt.Errorf("match division id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match requires home and away teams")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must be different")
	}
	if m.Round < 1 {
		return fmt.Errorf("match round must be > 0")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if m.Status == StatusCompleted {
		if m.HomeScore == nil || m.AwayScore == nil {
			return fmt.Errorf("completed match requires both scores")
		}
		if *m.HomeScore < 0 || *m.AwayScore < 0 {
			return fmt.Errorf("match scores cannot be negative")
		}
		if m.Winner != DecideWinner(*m.HomeScore, *m.AwayScore) {
			return fmt.Errorf("match winner does not agree with the score")
		}
	} else if m.HomeScore != nil || m.AwayScore != nil || m.Winner != "" {
		return fmt.Errorf("only completed matches carry a score")
	}

	return nil
}

// Normalize clears result fields that are meaningless for the current status
// and derives the winner for completed matches.
func (m Match) Normalize() Match {
	if m.Status != StatusCompleted || m.HomeScore == nil || m.AwayScore == nil {
		if m.Status != StatusCompleted {
			m.HomeScore = nil
			m.AwayScore = nil
		}
		m.Winner = ""
		return m
	}
	m.Winner = DecideWinner(*m.HomeScore, *m.AwayScore)
	return m
}

// Complete returns a copy with the final score applied.
func (m Match) Complete(home, away int) Match {
	m.Status = StatusCompleted
	m.HomeScore = &home
	m.AwayScore = &away
	m.Winner = DecideWinner(home, away)
	return m
}

func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func (m Match) TeamIDs() []string {
	return []string{m.HomeTeamID, m.AwayTeamID}
}

// RoundGroup is one jornada of the board.
type RoundGroup struct {
	Round   int
	Matches []Match
}

// GroupByRound partitions matches by round in ascending numeric order,
// keeping the incoming order inside each round.
func GroupByRound(items []Match) []RoundGroup {
	byRound := make(map[int][]Match)
	for _, item := range items {
		byRound[item.Round] = append(byRound[item.Round], item)
	}

	rounds := make([]int, 0, len(byRound))
	for round := range byRound {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	out := make([]RoundGroup, 0, len(rounds))
	for _, round := range rounds {
		out = append(out, RoundGroup{Round: round, Matches: byRound[round]})
	}
	return out
}

// FilterByStatusLabel keeps matches whose localized status equals label.
// An empty label keeps everything.
func FilterByStatusLabel(items []Match, label string) []Match {
	if label == "" {
		return items
	}
	out := make([]Match, 0, len(items))
	for _, item := range items {
		if StatusLabel(item.Status) == label {
			out = append(out, item)
		}
	}
	return out
}

// LastCompleted returns up to limit completed matches of a team, most recent first.
func LastCompleted(items []Match, teamID string, limit int) []Match {
	out := make([]Match, 0, limit)
	for _, item := range items {
		if item.Status == StatusCompleted && item.Involves(teamID) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchDate.After(out[j].MatchDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// NextSunday returns the date of the first Sunday on or after t, at midnight in t's location.
func NextSunday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}
