package field

import (
	"fmt"
	"sort"
	"strings"
)

type Type string

const (
	TypeGrass     Type = "césped"
	TypeSynthetic Type = "sintético"
	TypeSand      Type = "arena"
	TypeOther     Type = "otros"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGrass, TypeSynthetic, TypeSand, TypeOther:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
	StatusUnavailable Status = "unavailable"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusReserved, StatusUnavailable:
		return true
	default:
		return false
	}
}

// Zone is the area of the venue map a field is drawn in.
type Zone string

const (
	ZoneTopRow     Zone = "top_row"
	ZoneMiddleRow  Zone = "middle_row"
	ZoneBottomRow  Zone = "bottom_row"
	ZoneWestSide   Zone = "west_side"
	ZoneEastSide   Zone = "east_side"
	ZoneUnassigned Zone = "unassigned"
)

// MapZones is the fixed drawing order of the venue map.
var MapZones = []Zone{ZoneTopRow, ZoneMiddleRow, ZoneBottomRow, ZoneWestSide, ZoneEastSide, ZoneUnassigned}

func (z Zone) Valid() bool {
	for _, candidate := range MapZones {
		if z == candidate {
			return true
		}
	}
	return false
}

type Location struct {
	Address string
	City    string
}

// Field is a playing surface matches can be scheduled on.
type Field struct {
	ID         string
	Code       string
	Name       string
	Type       Type
	Capacity   int
	Status     Status
	Priority   int
	Zone       Zone
	Facilities []string
	Location   Location
	Notes      string
	IsActive   bool
	IsFallback bool
}

func (f Field) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("field id is required")
	}
	if strings.TrimSpace(f.Code) == "" {
		return fmt.Errorf("field code is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field name is required")
	}
	if !f.Type.Valid() {
		return fmt.Errorf("invalid field type: %s", f.Type)
	}
	if !f.Status.Valid() {
		return fmt.Errorf("invalid field status: %s", f.Status)
	}
	if !f.Zone.Valid() {
		return fmt.Errorf("invalid field zone: %s", f.Zone)
	}
	if f.Capacity < 0 {
		return fmt.Errorf("field capacity cannot be negative")
	}

	return nil
}

// Filter holds the field board constraints. Zero values mean "no constraint".
type Filter struct {
	Search string
	Status Status
	Type   Type
}

// Matches applies all constraints with AND semantics.
func (f Filter) Matches(item Field) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(item.Code), term) && !strings.Contains(strings.ToLower(item.Name), term) {
			return false
		}
	}
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	return true
}

func (f Filter) Apply(items []Field) []Field {
	out := make([]Field, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// ZoneGroup is one block of the venue map.
type ZoneGroup struct {
	Zone   Zone
	Fields []Field
}

// GroupByZone returns every map zone in drawing order, each sorted by priority then code.
func GroupByZone(items []Field) []ZoneGroup {
	byZone := make(map[Zone][]Field, len(MapZones))
	for _, item := range items {
		zone := item.Zone
		if !zone.Valid() {
			zone = ZoneUnassigned
		}
		byZone[zone] = append(byZone[zone], item)
	}

	out := make([]ZoneGroup, 0, len(MapZones))
	for _, zone := range MapZones {
		fields := byZone[zone]
		SortByPriority(fields)
		out = append(out, ZoneGroup{Zone: zone, Fields: fields})
	}
	return out
}

// SortByPriority orders fields so lower priority values are scheduled first.
func SortByPriority(items []Field) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		return items[i].Code < items[j].Code
	})
}
