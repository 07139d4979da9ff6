// Package engine orchestrates the event pipeline for one game session:
// selection, resolution, effect application and trait unlocks.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/neurotoxic-dev/tour-server/internal/events"
	"github.com/neurotoxic-dev/tour-server/internal/game"
	"github.com/neurotoxic-dev/tour-server/internal/random"
	"github.com/neurotoxic-dev/tour-server/internal/traits"
)

// Engine drives one session's state machine. All methods are safe for
// concurrent use.
type Engine struct {
	mu       sync.Mutex
	state    *game.State
	catalog  *events.Catalog
	selector *events.Selector
	rng      random.Source
	log      *slog.Logger

	active *events.Event
	toasts traits.ToastLog
}

// Resolution is the result of resolving a choice on the active event.
type Resolution struct {
	State   *game.State     `json:"state"`
	Outcome *events.Outcome `json:"outcome"`
	Unlocks []traits.Unlock `json:"unlocks,omitempty"`
	Toasts  []traits.Toast  `json:"toasts,omitempty"`
}

// New creates an engine over a fresh game state.
func New(catalog *events.Catalog, rng random.Source, log *slog.Logger) *Engine {
	return NewFromState(game.NewState(), catalog, rng, log)
}

// NewFromState creates an engine over an existing state, used when
// restoring a saved session.
func NewFromState(state *game.State, catalog *events.Catalog, rng random.Source, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = random.NewCrypto()
	}
	e := &Engine{
		state:    state,
		catalog:  catalog,
		rng:      rng,
		log:      log,
		selector: events.NewSelector(catalog, rng, log),
	}
	if state.ActiveEvent != nil {
		if ev, ok := catalog.ByID(state.ActiveEvent.ID); ok {
			inst := *ev
			inst.Context = state.ActiveEvent.Context
			e.active = &inst
		}
	}
	return e
}

// State returns a snapshot of the current session state.
func (e *Engine) State() *game.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// ActiveEvent returns the event currently awaiting a choice, or nil.
func (e *Engine) ActiveEvent() *events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// CheckEvent draws an event for a category and trigger. It returns nil
// when nothing fires. Drawing while an event is already active is an
// error; the pending choice has to be resolved first.
func (e *Engine) CheckEvent(category, trigger string) (*events.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("event %s is already active", e.active.ID)
	}
	if e.state.GameOver {
		return nil, fmt.Errorf("session is over")
	}

	sel := e.selector.Select(e.state, category, trigger)
	if sel.FromPending {
		e.state.PendingEvents = e.state.PendingEvents[1:]
	}
	if sel.Event == nil {
		return nil, nil
	}

	e.active = sel.Event
	e.state.ActiveEvent = &game.ActiveEvent{
		ID:      sel.Event.ID,
		Title:   sel.Event.Title,
		Tags:    sel.Event.Tags,
		Context: sel.Event.Context,
	}
	e.log.Debug("event drawn", "event", sel.Event.ID, "category", category, "pending", sel.FromPending)
	return sel.Event, nil
}

// ResolveActive resolves the player's choice on the active event, applies
// the compiled effects and runs the post-resolution unlock pass. The
// active slot is cleared even when follow-up events were queued; they are
// drawn on the next check.
func (e *Engine) ResolveActive(optionIndex int) (*Resolution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil, fmt.Errorf("no active event to resolve")
	}

	next, outcome, err := events.ResolveEventChoice(e.state, e.active, optionIndex, e.rng, e.log)
	if err != nil {
		return nil, err
	}
	next.ActiveEvent = nil

	unlocks := traits.CheckTraitUnlocks(next, &traits.Context{Type: traits.EventResolved})
	next = traits.ApplyTraitUnlocks(next, unlocks, &e.toasts)

	e.log.Info("event resolved",
		"event", e.active.ID,
		"option", optionIndex,
		"result", string(outcome.Result),
		"unlocks", len(unlocks))

	e.state = next
	e.active = nil

	return &Resolution{
		State:   next.Clone(),
		Outcome: outcome,
		Unlocks: unlocks,
		Toasts:  e.toasts.Drain(),
	}, nil
}

// ReportMilestone feeds a gameplay milestone through the unlock rules
// and applies any traits earned.
func (e *Engine) ReportMilestone(ctx *traits.Context) ([]traits.Unlock, []traits.Toast, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ctx == nil {
		return nil, nil, fmt.Errorf("milestone context required")
	}
	unlocks := traits.CheckTraitUnlocks(e.state, ctx)
	e.state = traits.ApplyTraitUnlocks(e.state, unlocks, &e.toasts)
	return unlocks, e.toasts.Drain(), nil
}
