package player

import "testing"

func TestPositionVocabularies(t *testing.T) {
	if !GenericPosition("portero").Valid() {
		t.Fatalf("portero should be a generic position")
	}
	if GenericPosition("quarterback").Valid() {
		t.Fatalf("quarterback must not be accepted as a generic position")
	}
	if !FlagFootballPosition("wide_receiver").Valid() {
		t.Fatalf("wide_receiver should be a flag football position")
	}
	if FlagFootballPosition("delantero").Valid() {
		t.Fatalf("delantero must not be accepted as a flag football position")
	}
}

func TestPlayerValidate(t *testing.T) {
	base := Player{ID: "p1", TeamID: "t1", Name: "Ana", Number: 7, Status: StatusActive, Position: FlagFootballPosition("safety")}

	tests := []struct {
		name    string
		mutate  func(p *Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Player) {}},
		{name: "missing team", mutate: func(p *Player) { p.TeamID = "" }, wantErr: true},
		{name: "blank name", mutate: func(p *Player) { p.Name = "  " }, wantErr: true},
		{name: "number too high", mutate: func(p *Player) { p.Number = 100 }, wantErr: true},
		{name: "no number", mutate: func(p *Player) { p.Number = 0 }},
		{name: "bad position", mutate: func(p *Player) { p.Position = FlagFootballPosition("portero") }, wantErr: true},
		{name: "bad status", mutate: func(p *Player) { p.Status = "retired" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := base
			tc.mutate(&item)
			err := item.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	items := []Player{
		{ID: "p1", Name: "Luis", LastName: "Pérez", Email: "luis@example.com", Phone: "+525511112222", Status: StatusActive, TeamID: "t1", Position: GenericPosition("defensa")},
		{ID: "p2", Name: "Marta", LastName: "Luna", Email: "marta@example.com", Status: StatusInjured, TeamID: "t1", Position: GenericPosition("portero")},
		{ID: "p3", Name: "Jorge", Email: "jorge@example.com", Phone: "5533334444", Status: StatusActive, TeamID: "t2", Position: GenericPosition("defensa")},
	}

	if got := (Filter{Search: "LU"}).Apply(items); len(got) != 2 {
		t.Fatalf("expected name and last name matches, got %+v", got)
	}
	if got := (Filter{Search: "3333"}).Apply(items); len(got) != 1 || got[0].ID != "p3" {
		t.Fatalf("expected phone match p3, got %+v", got)
	}
	if got := (Filter{Search: "lu", Status: StatusInjured}).Apply(items); len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("expected p2, got %+v", got)
	}
	if got := (Filter{Position: "defensa", TeamID: "t2"}).Apply(items); len(got) != 1 || got[0].ID != "p3" {
		t.Fatalf("expected p3, got %+v", got)
	}
}

func TestSortByNumber(t *testing.T) {
	items := []Player{{ID: "a", Number: 12}, {ID: "b", Number: 0}, {ID: "c", Number: 3}}
	SortByNumber(items)
	if items[0].ID != "c" || items[1].ID != "a" || items[2].ID != "b" {
		t.Fatalf("unexpected order: %+v", items)
	}
}
