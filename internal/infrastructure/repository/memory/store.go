// Package memory keeps every entity in process memory. It backs dev mode and tests.
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
)

// table keeps insertion order so listings are stable.
type table[T any] struct {
	items  map[string]T
	orders []string
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	item, ok := t.items[id]
	return item, ok
}

func (t *table[T]) insert(id string, item T) error {
	if _, exists := t.items[id]; exists {
		return fmt.Errorf("duplicate id %s", id)
	}
	t.items[id] = item
	t.orders = append(t.orders, id)
	return nil
}

func (t *table[T]) replace(id string, item T) error {
	if _, exists := t.items[id]; !exists {
		return fmt.Errorf("id %s not found", id)
	}
	t.items[id] = item
	return nil
}

func (t *table[T]) remove(id string) error {
	if _, exists := t.items[id]; !exists {
		return fmt.Errorf("id %s not found", id)
	}
	delete(t.items, id)
	t.orders = slices.DeleteFunc(t.orders, func(v string) bool { return v == id })
	return nil
}

func (t *table[T]) filter(keep func(T) bool, clone func(T) T) []T {
	out := make([]T, 0)
	for _, id := range t.orders {
		item := t.items[id]
		if keep == nil || keep(item) {
			out = append(out, clone(item))
		}
	}
	return out
}

// Store holds all tables behind one lock, so cross-entity writes such as a
// payment append and its team status update are atomic.
type Store struct {
	mu         sync.RWMutex
	seasons    *table[season.Season]
	divisions  *table[division.Division]
	categories *table[category.Category]
	fields     *table[field.Field]
	teams      *table[team.Team]
	players    *table[player.Player]
	payments   *table[payment.Payment]
	matches    *table[match.Match]
	referees   *table[referee.Referee]
}

// Dataset is the initial content of a Store.
type Dataset struct {
	Seasons    []season.Season
	Divisions  []division.Division
	Categories []category.Category
	Fields     []field.Field
	Teams      []team.Team
	Players    []player.Player
	Payments   []payment.Payment
	Matches    []match.Match
	Referees   []referee.Referee
}

func NewStore(data Dataset) (*Store, error) {
	s := &Store{
		seasons:    newTable[season.Season](),
		divisions:  newTable[division.Division](),
		categories: newTable[category.Category](),
		fields:     newTable[field.Field](),
		teams:      newTable[team.Team](),
		players:    newTable[player.Player](),
		payments:   newTable[payment.Payment](),
		matches:    newTable[match.Match](),
		referees:   newTable[referee.Referee](),
	}

	load := func(kind string, insert func() error) error {
		if err := insert(); err != nil {
			return fmt.Errorf("seed %s: %w", kind, err)
		}
		return nil
	}
	for _, item := range data.Seasons {
		if err := load("season", func() error { return s.seasons.insert(item.ID, cloneSeason(item)) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Divisions {
		if err := load("division", func() error { return s.divisions.insert(item.ID, item) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Categories {
		if err := load("category", func() error { return s.categories.insert(item.ID, cloneCategory(item)) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Fields {
		if err := load("field", func() error { return s.fields.insert(item.ID, cloneField(item)) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Teams {
		if err := load("team", func() error { return s.teams.insert(item.ID, item) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Players {
		if err := load("player", func() error { return s.players.insert(item.ID, clonePlayer(item)) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Payments {
		if err := load("payment", func() error { return s.payments.insert(item.ID, clonePayment(item)) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Matches {
		if err := load("match", func() error { return s.matches.insert(item.ID, cloneMatch(item)) }); err != nil {
			return nil, err
		}
	}
	for _, item := range data.Referees {
		if err := load("referee", func() error { return s.referees.insert(item.ID, item) }); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Repositories returns the per-entity views of the store.
func (s *Store) Repositories() Repositories {
	return Repositories{
		Seasons:    &SeasonRepository{store: s},
		Divisions:  &DivisionRepository{store: s},
		Categories: &CategoryRepository{store: s},
		Fields:     &FieldRepository{store: s},
		Teams:      &TeamRepository{store: s},
		Players:    &PlayerRepository{store: s},
		Payments:   &PaymentRepository{store: s},
		Matches:    &MatchRepository{store: s},
		Referees:   &RefereeRepository{store: s},
	}
}

type Repositories struct {
	Seasons    *SeasonRepository
	Divisions  *DivisionRepository
	Categories *CategoryRepository
	Fields     *FieldRepository
	Teams      *TeamRepository
	Players    *PlayerRepository
	Payments   *PaymentRepository
	Matches    *MatchRepository
	Referees   *RefereeRepository
}

func identity[T any](v T) T { return v }

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneSeason(v season.Season) season.Season {
	v.StartDate = clonePtr(v.StartDate)
	v.EndDate = clonePtr(v.EndDate)
	return v
}

func cloneCategory(v category.Category) category.Category {
	v.Rules = append([]string{}, v.Rules...)
	return v
}

func cloneField(v field.Field) field.Field {
	v.Facilities = append([]string{}, v.Facilities...)
	return v
}

func clonePlayer(v player.Player) player.Player {
	v.DateOfBirth = clonePtr(v.DateOfBirth)
	return v
}

func clonePayment(v payment.Payment) payment.Payment {
	v.PaidDate = clonePtr(v.PaidDate)
	return v
}

func cloneMatch(v match.Match) match.Match {
	v.HomeTeam = clonePtr(v.HomeTeam)
	v.AwayTeam = clonePtr(v.AwayTeam)
	v.HomeScore = clonePtr(v.HomeScore)
	v.AwayScore = clonePtr(v.AwayScore)
	return v
}
