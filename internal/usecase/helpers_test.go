package usecase

import (
	"testing"

	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
)

func newSeededRepos(t *testing.T) memory.Repositories {
	t.Helper()

	store, err := memory.NewStore(memory.SeedDataset())
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	return store.Repositories()
}

func newSequence(prefix string) *idgen.Sequence {
	return &idgen.Sequence{Prefix: prefix}
}

func nopLogger() *logging.Logger {
	return logging.NewNop()
}
