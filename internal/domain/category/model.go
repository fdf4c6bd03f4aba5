package category

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MinLevel = 1
	MaxLevel = 10

	DefaultTeamLimit   = 16
	DefaultPlayerLimit = 20
	DefaultPrice       = 2000
)

// ErrDuplicateName is returned by repositories when a division already uses a letter.
var ErrDuplicateName = errors.New("category name already used in division")

// DefaultLetters are the competitive tiers created for a fresh division, strongest first.
var DefaultLetters = []string{"A", "B", "C", "D", "E", "F", "G"}

// Category is a competitive tier inside a division. Lower level means more competitive.
type Category struct {
	ID          string
	DivisionID  string
	SeasonID    string
	Name        string
	Level       int
	TeamLimit   int
	PlayerLimit int
	Price       int64
	Rules       []string
	IsActive    bool
}

// NormalizeName trims and uppercases a category letter.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ValidateName reports whether name is exactly one character.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) != 1 {
		return fmt.Errorf("category name must be exactly one character, got %q", name)
	}
	return nil
}

func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if c.DivisionID == "" {
		return fmt.Errorf("category division id is required")
	}
	if c.SeasonID == "" {
		return fmt.Errorf("category season id is required")
	}
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if c.Name != NormalizeName(c.Name) {
		return fmt.Errorf("category name must be uppercase, got %q", c.Name)
	}
	if c.Level < MinLevel || c.Level > MaxLevel {
		return fmt.Errorf("category level must be between %d and %d, got %d", MinLevel, MaxLevel, c.Level)
	}
	if c.TeamLimit < 0 {
		return fmt.Errorf("category team limit cannot be negative")
	}
	if c.PlayerLimit < 0 {
		return fmt.Errorf("category player limit cannot be negative")
	}
	if c.Price < 0 {
		return fmt.Errorf("category price cannot be negative")
	}

	return nil
}

// DefaultSet builds the A..G tiers with levels 1..7. IDs are left empty for the caller.
func DefaultSet(divisionID, seasonID string) []Category {
	out := make([]Category, 0, len(DefaultLetters))
	for idx, letter := range DefaultLetters {
		out = append(out, Category{
			DivisionID:  divisionID,
			SeasonID:    seasonID,
			Name:        letter,
			Level:       idx + 1,
			TeamLimit:   DefaultTeamLimit,
			PlayerLimit: DefaultPlayerLimit,
			Price:       DefaultPrice,
			Rules:       []string{},
			IsActive:    true,
		})
	}
	return out
}

// SortByLevel orders categories by level, then by name.
func SortByLevel(items []Category) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Level != items[j].Level {
			return items[i].Level < items[j].Level
		}
		return items[i].Name < items[j].Name
	})
}
