package field

import "testing"

func TestFilter_ANDSemantics(t *testing.T) {
	items := []Field{
		{ID: "f1", Code: "CAMPO 1", Name: "Norte", Status: StatusAvailable, Type: TypeGrass},
		{ID: "f2", Code: "CAMPO 2", Name: "Sur", Status: StatusReserved, Type: TypeGrass},
		{ID: "f3", Code: "CAMPO 9", Name: "Poniente", Status: StatusMaintenance, Type: TypeSynthetic},
	}

	got := Filter{Search: "campo 9", Status: StatusAvailable}.Apply(items)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}

	got = Filter{Search: "campo 9"}.Apply(items)
	if len(got) != 1 || got[0].ID != "f3" {
		t.Fatalf("expected only f3, got %+v", got)
	}

	got = Filter{Search: "SUR"}.Apply(items)
	if len(got) != 1 || got[0].ID != "f2" {
		t.Fatalf("expected name match on f2, got %+v", got)
	}

	got = Filter{Type: TypeGrass, Status: StatusAvailable}.Apply(items)
	if len(got) != 1 || got[0].ID != "f1" {
		t.Fatalf("expected only f1, got %+v", got)
	}

	if got := (Filter{}).Apply(items); len(got) != len(items) {
		t.Fatalf("empty filter should keep every field, got %d", len(got))
	}
}

func TestGroupByZone(t *testing.T) {
	items := []Field{
		{Code: "CAMPO 8", Zone: ZoneTopRow, Priority: 2},
		{Code: "CAMPO 9", Zone: ZoneTopRow, Priority: 1},
		{Code: "CAMPO 1", Zone: ZoneBottomRow, Priority: 1},
		{Code: "LEGACY", Zone: "", Priority: 1},
	}

	groups := GroupByZone(items)
	if len(groups) != len(MapZones) {
		t.Fatalf("expected %d zones, got %d", len(MapZones), len(groups))
	}
	if groups[0].Zone != ZoneTopRow || len(groups[0].Fields) != 2 {
		t.Fatalf("unexpected top row: %+v", groups[0])
	}
	if groups[0].Fields[0].Code != "CAMPO 9" {
		t.Fatalf("expected priority 1 first, got %s", groups[0].Fields[0].Code)
	}
	last := groups[len(groups)-1]
	if last.Zone != ZoneUnassigned || len(last.Fields) != 1 {
		t.Fatalf("expected invalid zone to land in unassigned, got %+v", last)
	}
}

func TestFieldValidate(t *testing.T) {
	item := Field{ID: "f1", Code: "CAMPO 1", Name: "Uno", Type: TypeGrass, Status: StatusAvailable, Zone: ZoneBottomRow}
	if err := item.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item.Status = "closed"
	if err := item.Validate(); err == nil {
		t.Fatalf("expected invalid status error")
	}
}
