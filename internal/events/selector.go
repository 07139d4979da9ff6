package events

import (
	"log/slog"
	"strings"

	"github.com/neurotoxic-dev/tour-server/internal/game"
	"github.com/neurotoxic-dev/tour-server/internal/random"
)

// chance multiplier for events whose required story flag is active.
const flaggedChanceBoost = 5.0

// Selection is the result of an event draw.
type Selection struct {
	Event *Event
	// FromPending marks a draw that consumed the head of the pending
	// queue; the caller pops the queue when it applies the selection.
	FromPending bool
}

// Selector draws events from a catalog against the current state.
type Selector struct {
	catalog *Catalog
	rng     random.Source
	log     *slog.Logger
}

// NewSelector wires a selector to a catalog and a randomness source.
func NewSelector(catalog *Catalog, rng random.Source, log *slog.Logger) *Selector {
	if log == nil {
		log = slog.Default()
	}
	return &Selector{catalog: catalog, rng: rng, log: log}
}

// Select picks the next event for a category and trigger, or nil when no
// event fires. A pending event queued for this category wins and bypasses
// trigger, cooldown, condition and chance checks.
func (s *Selector) Select(state *game.State, category, trigger string) *Selection {
	if len(state.PendingEvents) > 0 {
		id := state.PendingEvents[0]
		ev, ok := s.catalog.ByID(id)
		if !ok {
			// Consume the bad id so it cannot wedge the queue.
			s.log.Warn("pending event not in catalog", "id", id)
			return &Selection{FromPending: true}
		}
		if ev.Category == category {
			return &Selection{Event: s.instantiate(ev, state, nil), FromPending: true}
		}
		// Queued for another category; it stays put until that
		// category is checked, and the normal draw runs here.
	}

	eligible := s.Filter(s.catalog.Pool(category), state, trigger)
	if len(eligible) == 0 {
		return &Selection{}
	}

	random.Shuffle(len(eligible), s.rng, func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	for _, cand := range eligible {
		chance := cand.Event.Chance
		if cand.Event.RequiredFlag != "" && state.HasStoryFlag(cand.Event.RequiredFlag) {
			chance *= flaggedChanceBoost
		}
		if s.rng.Float() < chance {
			return &Selection{Event: s.instantiate(cand.Event, state, cand.Context)}
		}
	}
	return &Selection{}
}

// Candidate pairs an eligible event with the context its condition
// produced, if any.
type Candidate struct {
	Event   *Event
	Context map[string]string
}

// Filter narrows a pool to the events eligible under the current state:
// trigger match, not on cooldown, condition satisfied. Condition record
// results are carried along for template substitution.
func (s *Selector) Filter(pool []*Event, state *game.State, trigger string) []Candidate {
	var out []Candidate
	for _, ev := range pool {
		if trigger != "" && ev.Trigger != trigger {
			continue
		}
		if state.OnCooldown(ev.ID) {
			continue
		}
		ok, ctx := evalCondition(ev, state, s.log)
		if !ok {
			continue
		}
		out = append(out, Candidate{Event: ev, Context: ctx})
	}
	return out
}

// instantiate returns a presentation copy of the event with its context
// resolved, templates substituted and dynamic options injected. The
// catalog's copy is never mutated.
func (s *Selector) instantiate(ev *Event, state *game.State, condCtx map[string]string) *Event {
	inst := *ev
	inst.Options = append([]Choice(nil), ev.Options...)

	ctx := make(map[string]string, len(ev.Context)+len(condCtx)+1)
	for k, v := range ev.Context {
		ctx[k] = v
	}
	for k, v := range condCtx {
		ctx[k] = v
	}
	if _, ok := ctx["venue"]; !ok {
		if state.Player.Location != "" {
			ctx["venue"] = state.Player.Location
		} else {
			ctx["venue"] = "the venue"
		}
	}
	inst.Context = ctx

	inst.Title = substituteTemplate(inst.Title, ctx)
	inst.Description = substituteTemplate(inst.Description, ctx)
	for i := range inst.Options {
		inst.Options[i].Label = substituteTemplate(inst.Options[i].Label, ctx)
		inst.Options[i].OutcomeText = substituteTemplate(inst.Options[i].OutcomeText, ctx)
	}

	injectDynamicOptions(&inst, state)
	return &inst
}

// substituteTemplate replaces {key} placeholders from the context map.
// Unknown placeholders are left untouched.
func substituteTemplate(text string, ctx map[string]string) string {
	if text == "" || len(ctx) == 0 {
		return text
	}
	for k, v := range ctx {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}

// injectDynamicOptions adds inventory-gated choices that only exist when
// the band carries the right gear.
func injectDynamicOptions(ev *Event, state *game.State) {
	if ev.HasTag("van_breakdown") && state.HasItem("spare_tire") {
		opt := Choice{
			Label:       "Use the spare tire",
			OutcomeText: "Twenty greasy minutes later the van rolls again.",
			Effect: &Effect{
				Type: EffectComposite,
				Effects: []Effect{
					{Type: EffectItem, Item: "spare_tire", Value: -1},
					{Type: EffectStat, Stat: "time", Value: -0.5},
				},
			},
		}
		ev.Options = append([]Choice{opt}, ev.Options...)
	}
}
