package player

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	MinNumber = 1
	MaxNumber = 99
)

// Vocabulary names the sport context a position belongs to.
type Vocabulary string

const (
	VocabularyGeneric      Vocabulary = "generic"
	VocabularyFlagFootball Vocabulary = "flag_football"
)

var (
	genericPositions      = []string{"portero", "defensa", "mediocampista", "delantero", "utility"}
	flagFootballPositions = []string{"quarterback", "runningback", "wide_receiver", "cornerback", "safety", "linebacker"}
)

// Positions lists the codes valid in a vocabulary.
func Positions(v Vocabulary) []string {
	switch v {
	case VocabularyGeneric:
		return append([]string(nil), genericPositions...)
	case VocabularyFlagFootball:
		return append([]string(nil), flagFootballPositions...)
	default:
		return nil
	}
}

// Position is a code scoped to the vocabulary it was chosen from.
// The directory and the team roster use different vocabularies.
type Position struct {
	Vocabulary Vocabulary
	Code       string
}

func GenericPosition(code string) Position {
	return Position{Vocabulary: VocabularyGeneric, Code: code}
}

func FlagFootballPosition(code string) Position {
	return Position{Vocabulary: VocabularyFlagFootball, Code: code}
}

func (p Position) IsZero() bool {
	return p.Vocabulary == "" && p.Code == ""
}

func (p Position) Valid() bool {
	for _, code := range Positions(p.Vocabulary) {
		if code == p.Code {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
	StatusInjured   Status = "injured"
	StatusInactive  Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusSuspended, StatusInjured, StatusInactive:
		return true
	default:
		return false
	}
}

type EmergencyContact struct {
	Name         string
	Phone        string
	Relationship string
}

// Player is a registered member of a team roster.
type Player struct {
	ID               string
	TeamID           string
	Name             string
	LastName         string
	Number           int
	Position         Position
	Email            string
	Phone            string
	DateOfBirth      *time.Time
	EmergencyContact EmergencyContact
	Status           Status
	IsCaptain        bool
	IsViceCaptain    bool
	RegistrationDate time.Time
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.LastName)
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Number != 0 && (p.Number < MinNumber || p.Number > MaxNumber) {
		return fmt.Errorf("player number must be between %d and %d", MinNumber, MaxNumber)
	}
	if !p.Position.IsZero() && !p.Position.Valid() {
		return fmt.Errorf("invalid %s position: %s", p.Position.Vocabulary, p.Position.Code)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}

	return nil
}

// Filter holds the directory constraints. Zero values mean "no constraint".
type Filter struct {
	Search   string
	Status   Status
	Position string
	TeamID   string
}

// Matches applies all constraints with AND semantics.
func (f Filter) Matches(item Player) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		found := false
		for _, value := range []string{item.Name, item.LastName, item.Email, item.Phone} {
			if strings.Contains(strings.ToLower(value), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	if f.Position != "" && item.Position.Code != f.Position {
		return false
	}
	if f.TeamID != "" && item.TeamID != f.TeamID {
		return false
	}
	return true
}

func (f Filter) Apply(items []Player) []Player {
	out := make([]Player, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortByNumber orders a roster by jersey number, unnumbered players last.
func SortByNumber(items []Player) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Number, items[j].Number
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		if a != b {
			return a < b
		}
		return items[i].FullName() < items[j].FullName()
	})
}
