package postgres

import (
	"strings"
	"testing"

	"github.com/tochoprime/league-console/internal/domain/player"
)

func TestBuildPlayerUpdate_TeamMoveClearsCaptaincy(t *testing.T) {
	query, args, err := buildPlayerUpdate(player.Player{
		ID:        "player-1",
		TeamID:    "team-lobos",
		Name:      "Ana",
		Number:    7,
		Status:    player.StatusActive,
		IsCaptain: true,
	})
	if err != nil {
		t.Fatalf("build update player query: %v", err)
	}

	wants := []string{
		"is_captain = CASE WHEN team_public_id = $14 THEN is_captain ELSE FALSE END",
		"is_vice_captain = CASE WHEN team_public_id = $15 THEN is_vice_captain ELSE FALSE END",
		"WHERE public_id = $16",
	}
	for _, want := range wants {
		if !strings.Contains(query, want) {
			t.Fatalf("expected %q in query: %s", want, query)
		}
	}
	if len(args) != 16 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
	if args[13] != "team-lobos" || args[14] != "team-lobos" || args[15] != "player-1" {
		t.Fatalf("unexpected captaincy args: %v", args[13:])
	}
}
