package events

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/neurotoxic-dev/tour-server/internal/game"
)

// buildEnv produces the environment a condition program runs against:
// flattened state fields plus helper closures for the lookups condition
// authors actually need.
func buildEnv(state *game.State) map[string]interface{} {
	env := map[string]interface{}{
		"money":        state.Player.Money,
		"fame":         state.Player.Fame,
		"day":          state.Player.Day,
		"time":         state.Player.Time,
		"location":     state.Player.Location,
		"fuel":         state.Player.Van.Fuel,
		"vanCondition": state.Player.Van.Condition,
		"harmony":      state.Band.Harmony,
		"luck":         state.Band.Luck,
		"social":       state.Social,
		"storyFlags":   state.ActiveStoryFlags,
		"unlocks":      state.Unlocks,
	}

	env["hasItem"] = func(name string) bool {
		return state.HasItem(name)
	}
	env["hasFlag"] = func(name string) bool {
		return state.HasStoryFlag(name)
	}
	env["onCooldown"] = func(id string) bool {
		return state.OnCooldown(id)
	}
	env["memberMood"] = func(name string) float64 {
		if m := state.Band.Member(name); m != nil {
			return m.Mood
		}
		return 0
	}
	env["anyMoodBelow"] = func(threshold float64) bool {
		for _, m := range state.Band.Members {
			if m.Mood < threshold {
				return true
			}
		}
		return false
	}

	// Pair scans return the first matching pair as a context record so the
	// event template can name the members involved.
	env["relationshipPairBelow"] = func(threshold float64) interface{} {
		return findRelationshipPair(state, func(v float64) bool { return v < threshold })
	}
	env["relationshipPairAbove"] = func(threshold float64) interface{} {
		return findRelationshipPair(state, func(v float64) bool { return v > threshold })
	}
	return env
}

// findRelationshipPair walks members in roster order on both sides so
// the reported pair is the same for identical state.
func findRelationshipPair(state *game.State, match func(float64) bool) interface{} {
	for i := range state.Band.Members {
		m := &state.Band.Members[i]
		for _, other := range state.Band.Members {
			if other.Name == m.Name {
				continue
			}
			v, ok := m.Relationships[other.Name]
			if !ok {
				continue
			}
			if match(v) {
				return map[string]interface{}{
					"member1": m.Name,
					"member2": other.Name,
				}
			}
		}
	}
	return false
}

// evalCondition runs an event's compiled condition against the state.
// A condition that errors makes the event ineligible rather than
// aborting the draw. The returned context carries record results so
// they can feed template substitution.
func evalCondition(ev *Event, state *game.State, log *slog.Logger) (bool, map[string]string) {
	if ev.program == nil {
		return true, nil
	}
	out, err := expr.Run(ev.program, buildEnv(state))
	if err != nil {
		log.Error("event condition failed", "event", ev.ID, "error", err)
		return false, nil
	}
	switch v := out.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case map[string]interface{}:
		ctx := make(map[string]string, len(v))
		for k, val := range v {
			ctx[k] = fmt.Sprintf("%v", val)
		}
		return true, ctx
	case map[string]string:
		return true, v
	default:
		return true, nil
	}
}
