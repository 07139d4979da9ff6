package events

import (
	"fmt"
	"log/slog"

	"github.com/neurotoxic-dev/tour-server/internal/game"
	"github.com/neurotoxic-dev/tour-server/internal/random"
)

const (
	skillRollScale     = 10.0
	critRollFloor      = 8.0
	critBonus          = 2.0
	bandleaderSaveOdds = 0.5
)

// Resolver turns a player's choice on an active event into an outcome.
type Resolver struct {
	rng random.Source
	log *slog.Logger
}

// NewResolver wires a resolver to a randomness source.
func NewResolver(rng random.Source, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{rng: rng, log: log}
}

// Resolve applies the chosen option of an event against the state and
// returns the outcome to compile. Direct options resolve immediately;
// skill checks roll against the derived stat value. The bandleader
// rescue roll is always drawn on failure so the draw sequence stays
// deterministic whether or not a rescue is possible.
func (r *Resolver) Resolve(state *game.State, ev *Event, optionIndex int) (*Outcome, error) {
	if ev == nil {
		return nil, fmt.Errorf("no active event")
	}
	if optionIndex < 0 || optionIndex >= len(ev.Options) {
		return nil, fmt.Errorf("option index %d out of range for event %s", optionIndex, ev.ID)
	}
	choice := &ev.Options[optionIndex]

	var out *Outcome
	switch {
	case choice.SkillCheck != nil:
		out = r.resolveSkillCheck(state, ev, choice)
	case choice.Effect != nil:
		out = &Outcome{
			Effect:      *choice.Effect,
			Result:      OutcomeDirect,
			Description: choice.OutcomeText,
			NextEventID: choice.NextEventID,
		}
	default:
		out = &Outcome{
			Result:      OutcomeDirect,
			Description: choice.OutcomeText,
			NextEventID: choice.NextEventID,
		}
	}

	if ev.HasTag("conflict") && out.Result == OutcomeSuccess {
		out.Effect = withCounter(out.Effect, "conflictsResolved")
	}
	if choice.HasFlag("stageDive") && ev.HasTag("stage_dive") {
		out.Effect = withCounter(out.Effect, "stageDives")
	}
	return out, nil
}

func (r *Resolver) resolveSkillCheck(state *game.State, ev *Event, choice *Choice) *Outcome {
	check := choice.SkillCheck
	value := r.skillValue(state, check.Stat)

	// The roll does not add to the total; it only decides whether the
	// crit bonus applies.
	roll := r.rng.Float() * skillRollScale
	total := value
	if roll > critRollFloor {
		total += critBonus
	}

	if total >= check.Threshold {
		return r.checkOutcome(check.Success, OutcomeSuccess, choice)
	}

	// Drawn unconditionally so a failed check always costs one draw.
	saveRoll := r.rng.Float()
	if ev.HasTag("conflict") && state.Band.HasTrait("bandleader") && saveRoll < bandleaderSaveOdds {
		out := r.checkOutcome(check.Success, OutcomeSuccess, choice)
		out.Description += SavedByBandleaderSuffix
		r.log.Debug("bandleader rescue", "event", ev.ID, "roll", saveRoll)
		return out
	}
	return r.checkOutcome(check.Failure, OutcomeFailure, choice)
}

func (r *Resolver) checkOutcome(eff *Effect, result OutcomeResult, choice *Choice) *Outcome {
	out := &Outcome{Result: result, NextEventID: choice.NextEventID}
	if eff != nil {
		out.Effect = *eff
		out.Description = eff.Description
	}
	if out.Description == "" {
		out.Description = choice.OutcomeText
	}
	return out
}

// skillValue derives the band's value for a checked stat, first match
// wins: luck is a pure roll, a band-level meter is scaled down, anything
// else takes the best member's base stat with the member's dynamic stat
// as fallback. Base stats are checked first so static 1-10 attributes
// are not shadowed by same-named 0-100 ones.
func (r *Resolver) skillValue(state *game.State, stat string) float64 {
	switch stat {
	case "luck":
		return r.rng.Float() * skillRollScale
	case "harmony":
		return state.Band.Harmony / 10
	}

	best := 0.0
	for _, m := range state.Band.Members {
		v, ok := m.BaseStats[stat]
		if !ok {
			switch stat {
			case "mood":
				v = m.Mood
			case "stamina":
				v = m.Stamina
			}
		}
		if v > best {
			best = v
		}
	}
	return best
}

// withCounter wraps an effect in a fresh composite that also bumps a
// player progress counter, leaving the catalog's effect untouched.
func withCounter(eff Effect, counter string) Effect {
	inc := Effect{Type: EffectStatIncrement, Stat: counter, Value: 1}
	if eff.Type == "" {
		return inc
	}
	return Effect{Type: EffectComposite, Effects: []Effect{eff, inc}}
}
