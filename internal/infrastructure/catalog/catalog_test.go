package catalog

import (
	"testing"

	"github.com/tochoprime/league-console/internal/domain/field"
)

func TestNewFieldCatalog(t *testing.T) {
	c, err := NewFieldCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	items := c.Fields()
	if len(items) != 16 {
		t.Fatalf("expected 16 fallback fields, got %d", len(items))
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !item.IsFallback {
			t.Fatalf("field %s must be flagged as fallback", item.ID)
		}
		if item.Zone == field.ZoneUnassigned {
			t.Fatalf("field %s has no zone", item.ID)
		}
		if seen[item.Code] {
			t.Fatalf("duplicate code %s", item.Code)
		}
		seen[item.Code] = true
	}
	if !seen["CAMPO 9"] {
		t.Fatalf("expected CAMPO 9 in catalog")
	}
}

func TestFieldCatalog_FieldsAreCopies(t *testing.T) {
	c, err := NewFieldCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	first := c.Fields()
	first[0].Name = "changed"
	first[0].Facilities[0] = "changed"

	second := c.Fields()
	if second[0].Name == "changed" || second[0].Facilities[0] == "changed" {
		t.Fatalf("catalog leaked a caller mutation")
	}
}

func TestParseFieldCatalog_RejectsInvalidEntry(t *testing.T) {
	raw := []byte(`fields:
  - id: bad
    code: X
    name: X
    type: hielo
    status: available
    zone: top_row
`)
	if _, err := ParseFieldCatalog(raw); err == nil {
		t.Fatalf("expected invalid field type to fail")
	}
}
