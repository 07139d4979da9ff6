package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/neurotoxic-dev/tour-server/internal/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog(t *testing.T, defs map[string][]*Event) *Catalog {
	t.Helper()
	c, err := NewCatalog(defs, testLogger())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func giveTrait(s *game.State, member, traitID string) {
	if m := s.Band.Member(member); m != nil {
		m.Traits = append(m.Traits, game.Trait{ID: traitID, Name: traitID})
	}
}
