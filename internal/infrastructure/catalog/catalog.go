// Package catalog serves the fixed field map used when storage has no fields.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/tochoprime/league-console/internal/domain/field"
	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var fieldsYAML []byte

type fieldDocument struct {
	Fields []fieldEntry `yaml:"fields"`
}

type fieldEntry struct {
	ID         string   `yaml:"id"`
	Code       string   `yaml:"code"`
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Capacity   int      `yaml:"capacity"`
	Status     string   `yaml:"status"`
	Priority   int      `yaml:"priority"`
	Zone       string   `yaml:"zone"`
	Facilities []string `yaml:"facilities"`
	Location   struct {
		Address string `yaml:"address"`
		City    string `yaml:"city"`
	} `yaml:"location"`
	Notes  string `yaml:"notes"`
	Active bool   `yaml:"active"`
}

// FieldCatalog is parsed once at construction and hands out copies.
type FieldCatalog struct {
	fields []field.Field
}

func NewFieldCatalog() (*FieldCatalog, error) {
	return ParseFieldCatalog(fieldsYAML)
}

func ParseFieldCatalog(raw []byte) (*FieldCatalog, error) {
	var doc fieldDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode field catalog: %w", err)
	}

	out := make([]field.Field, 0, len(doc.Fields))
	for _, entry := range doc.Fields {
		item := field.Field{
			ID:         entry.ID,
			Code:       entry.Code,
			Name:       entry.Name,
			Type:       field.Type(entry.Type),
			Capacity:   entry.Capacity,
			Status:     field.Status(entry.Status),
			Priority:   entry.Priority,
			Zone:       field.Zone(entry.Zone),
			Facilities: entry.Facilities,
			Location:   field.Location{Address: entry.Location.Address, City: entry.Location.City},
			Notes:      entry.Notes,
			IsActive:   entry.Active,
			IsFallback: true,
		}
		if item.Facilities == nil {
			item.Facilities = []string{}
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("field catalog entry %q: %w", entry.ID, err)
		}
		out = append(out, item)
	}
	return &FieldCatalog{fields: out}, nil
}

func (c *FieldCatalog) Fields() []field.Field {
	out := make([]field.Field, 0, len(c.fields))
	for _, item := range c.fields {
		item.Facilities = slices.Clone(item.Facilities)
		out = append(out, item)
	}
	return out
}
