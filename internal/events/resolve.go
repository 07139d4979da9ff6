package events

import (
	"fmt"
	"log/slog"

	"github.com/neurotoxic-dev/tour-server/internal/game"
	"github.com/neurotoxic-dev/tour-server/internal/random"
)

// ResolveEventChoice runs the full resolve-compile-apply pipeline for one
// choice on an active event and returns the next state together with the
// outcome that produced it. The input state is never mutated.
func ResolveEventChoice(state *game.State, ev *Event, optionIndex int, rng random.Source, log *slog.Logger) (*game.State, *Outcome, error) {
	if state == nil {
		return nil, nil, fmt.Errorf("no state to resolve against")
	}
	if ev == nil {
		return nil, nil, fmt.Errorf("no active event")
	}
	if log == nil {
		log = slog.Default()
	}

	out, err := NewResolver(rng, log).Resolve(state, ev, optionIndex)
	if err != nil {
		return nil, nil, err
	}
	delta := NewCompiler(log).Compile(out, ev)
	next := game.ApplyEventDelta(state, delta)
	return next, out, nil
}
