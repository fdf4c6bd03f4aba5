package category

import "testing"

func TestCategoryValidate(t *testing.T) {
	base := Category{
		ID:          "cat-1",
		DivisionID:  "div-1",
		SeasonID:    "season-1",
		Name:        "A",
		Level:       1,
		TeamLimit:   12,
		PlayerLimit: 20,
		Price:       2000,
	}

	tests := []struct {
		name    string
		mutate  func(c *Category)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Category) {}},
		{name: "two letter name", mutate: func(c *Category) { c.Name = "AB" }, wantErr: true},
		{name: "empty name", mutate: func(c *Category) { c.Name = "" }, wantErr: true},
		{name: "lowercase name", mutate: func(c *Category) { c.Name = "a" }, wantErr: true},
		{name: "level below range", mutate: func(c *Category) { c.Level = 0 }, wantErr: true},
		{name: "level above range", mutate: func(c *Category) { c.Level = 11 }, wantErr: true},
		{name: "negative price", mutate: func(c *Category) { c.Price = -1 }, wantErr: true},
		{name: "missing division", mutate: func(c *Category) { c.DivisionID = "" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := base
			tc.mutate(&item)
			err := item.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName(" c "); got != "C" {
		t.Fatalf("expected C, got %q", got)
	}
	if err := ValidateName(NormalizeName("ñ")); err != nil {
		t.Fatalf("single multi-byte letter should be valid: %v", err)
	}
}

func TestDefaultSet(t *testing.T) {
	items := DefaultSet("div-1", "season-1")
	if len(items) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(items))
	}
	for idx, item := range items {
		if item.Level != idx+1 {
			t.Fatalf("expected level %d, got %d", idx+1, item.Level)
		}
		if item.Name != DefaultLetters[idx] {
			t.Fatalf("expected name %s, got %s", DefaultLetters[idx], item.Name)
		}
		if item.DivisionID != "div-1" || item.SeasonID != "season-1" {
			t.Fatalf("unexpected ancestry: %+v", item)
		}
	}
}

func TestSortByLevel(t *testing.T) {
	items := []Category{{Name: "C", Level: 3}, {Name: "A", Level: 1}, {Name: "B", Level: 2}}
	SortByLevel(items)
	if items[0].Name != "A" || items[1].Name != "B" || items[2].Name != "C" {
		t.Fatalf("unexpected order: %+v", items)
	}
}
