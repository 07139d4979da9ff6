package events

import (
	"strings"
	"testing"

	"github.com/neurotoxic-dev/tour-server/internal/game"
	"github.com/neurotoxic-dev/tour-server/internal/random"
)

func simpleEvent(id string) *Event {
	return &Event{
		ID:     id,
		Title:  "Test Event",
		Chance: 1,
		Options: []Choice{
			{Label: "Okay"},
		},
	}
}

func TestSelectPendingEventWins(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{
		"band": {simpleEvent("queued_event"), simpleEvent("other_event")},
	})
	rng := random.NewScripted(0.99)
	sel := NewSelector(c, rng, testLogger())

	s := game.NewState()
	s.PendingEvents = []string{"queued_event"}
	s.EventCooldowns = []string{"queued_event"} // cooldown is bypassed too

	got := sel.Select(s, "band", "")
	if !got.FromPending {
		t.Fatal("expected selection from pending queue")
	}
	if got.Event == nil || got.Event.ID != "queued_event" {
		t.Fatalf("expected queued_event, got %+v", got.Event)
	}
	if rng.Draws() != 0 {
		t.Errorf("pending draw should not consume randomness, used %d", rng.Draws())
	}
}

func TestSelectUnknownPendingConsumed(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{"band": {simpleEvent("real_event")}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	s := game.NewState()
	s.PendingEvents = []string{"no_such_event"}

	got := sel.Select(s, "band", "")
	if !got.FromPending {
		t.Error("expected the bad id to be marked consumed")
	}
	if got.Event != nil {
		t.Errorf("expected no event, got %s", got.Event.ID)
	}
}

func TestSelectPendingWaitsForItsCategory(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{
		"special":   {simpleEvent("queued_chain")},
		"transport": {simpleEvent("roadside_event")},
	})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	s := game.NewState()
	s.PendingEvents = []string{"queued_chain"}

	// A transport check leaves the chained event queued and runs its own
	// draw instead.
	got := sel.Select(s, "transport", "")
	if got.FromPending {
		t.Error("expected the queue untouched for another category")
	}
	if got.Event == nil || got.Event.ID != "roadside_event" {
		t.Fatalf("expected normal transport draw, got %+v", got.Event)
	}

	got = sel.Select(s, "special", "")
	if !got.FromPending || got.Event == nil || got.Event.ID != "queued_chain" {
		t.Fatalf("expected queued chain on its own category, got %+v", got.Event)
	}
}

func TestSelectTriggerFilter(t *testing.T) {
	ev := simpleEvent("travel_only")
	ev.Trigger = "travel"
	c := testCatalog(t, map[string][]*Event{"transport": {ev}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	got := sel.Select(game.NewState(), "transport", "gig_mid")
	if got.Event != nil {
		t.Errorf("expected trigger mismatch to filter event, got %s", got.Event.ID)
	}

	got = sel.Select(game.NewState(), "transport", "travel")
	if got.Event == nil || got.Event.ID != "travel_only" {
		t.Error("expected trigger match to select event")
	}

	// Without a trigger point the whole pool is fair game.
	got = sel.Select(game.NewState(), "transport", "")
	if got.Event == nil || got.Event.ID != "travel_only" {
		t.Error("expected triggered event eligible without a trigger point")
	}
}

func TestSelectTriggerExcludesUntriggered(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{"band": {simpleEvent("anytime_event")}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	if got := sel.Select(game.NewState(), "band", "travel"); got.Event != nil {
		t.Errorf("expected untriggered event filtered under a trigger point, got %s", got.Event.ID)
	}
}

func TestSelectCooldownFilter(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{"band": {simpleEvent("cooled")}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	s := game.NewState()
	s.EventCooldowns = []string{"cooled"}

	if got := sel.Select(s, "band", ""); got.Event != nil {
		t.Errorf("expected cooldown to filter event, got %s", got.Event.ID)
	}
}

func TestSelectConditionFilters(t *testing.T) {
	ev := simpleEvent("rich_band_problems")
	ev.Condition = "money > 10000"
	c := testCatalog(t, map[string][]*Event{"financial": {ev}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	if got := sel.Select(game.NewState(), "financial", ""); got.Event != nil {
		t.Errorf("expected false condition to filter event, got %s", got.Event.ID)
	}

	s := game.NewState()
	s.Player.Money = 20000
	if got := sel.Select(s, "financial", ""); got.Event == nil {
		t.Error("expected true condition to pass event through")
	}
}

func TestSelectConditionErrorFailsClosed(t *testing.T) {
	ev := simpleEvent("broken_condition")
	ev.Condition = "noSuchHelper(3)"
	c := testCatalog(t, map[string][]*Event{"band": {ev}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	if got := sel.Select(game.NewState(), "band", ""); got.Event != nil {
		t.Errorf("expected erroring condition to make event ineligible, got %s", got.Event.ID)
	}
}

func TestSelectConditionRecordFeedsTemplates(t *testing.T) {
	ev := simpleEvent("pair_event")
	ev.Condition = "relationshipPairBelow(100)"
	ev.Description = "{member1} glares at {member2} outside {venue}."
	c := testCatalog(t, map[string][]*Event{"band": {ev}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	got := sel.Select(game.NewState(), "band", "")
	if got.Event == nil {
		t.Fatal("expected record condition to select event")
	}
	if got.Event.Context["member1"] == "" || got.Event.Context["member2"] == "" {
		t.Fatalf("expected member context, got %v", got.Event.Context)
	}
	desc := got.Event.Description
	for _, placeholder := range []string{"{member1}", "{member2}", "{venue}"} {
		if strings.Contains(desc, placeholder) {
			t.Errorf("placeholder %s left in description %q", placeholder, desc)
		}
	}
	if !strings.Contains(desc, "Stendal") {
		t.Errorf("expected current location as venue, got %q", desc)
	}
}

func TestSelectVenueFallsBackWithoutLocation(t *testing.T) {
	ev := simpleEvent("venue_event")
	ev.Description = "Trouble outside {venue}."
	c := testCatalog(t, map[string][]*Event{"gig": {ev}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	s := game.NewState()
	s.Player.Location = ""
	got := sel.Select(s, "gig", "")
	if got.Event == nil {
		t.Fatal("expected event")
	}
	if got.Event.Description != "Trouble outside the venue." {
		t.Errorf("expected default venue, got %q", got.Event.Description)
	}
}

func TestSelectChanceBoostWithStoryFlag(t *testing.T) {
	ev := simpleEvent("flagged_event")
	ev.Chance = 0.15
	ev.RequiredFlag = "unpaid_fine"
	c := testCatalog(t, map[string][]*Event{"financial": {ev}})

	// One candidate means no shuffle draws; 0.5 misses the base chance.
	sel := NewSelector(c, random.NewScripted(0.5), testLogger())
	if got := sel.Select(game.NewState(), "financial", ""); got.Event != nil {
		t.Error("expected 0.5 draw to miss base chance 0.15")
	}

	s := game.NewState()
	s.ActiveStoryFlags = []string{"unpaid_fine"}
	sel = NewSelector(c, random.NewScripted(0.5), testLogger())
	if got := sel.Select(s, "financial", ""); got.Event == nil {
		t.Error("expected boosted chance 0.75 to catch 0.5 draw")
	}
}

func TestSelectInjectsSpareTireOption(t *testing.T) {
	ev := simpleEvent("van_breakdown_flat")
	ev.Tags = []string{"van_breakdown"}
	c := testCatalog(t, map[string][]*Event{"transport": {ev}})
	sel := NewSelector(c, random.NewScripted(0), testLogger())

	s := game.NewState()
	got := sel.Select(s, "transport", "")
	if got.Event == nil {
		t.Fatal("expected event")
	}
	if len(got.Event.Options) != 1 {
		t.Fatalf("expected no injected option without spare tire, got %d", len(got.Event.Options))
	}

	s.Band.Inventory["spare_tire"] = 2.0
	got = sel.Select(s, "transport", "")
	if len(got.Event.Options) != 2 {
		t.Fatalf("expected injected spare tire option, got %d options", len(got.Event.Options))
	}
	// The injected option leads and spends one tire.
	opt := got.Event.Options[0]
	if !strings.Contains(opt.Label, "spare tire") {
		t.Errorf("expected injected option first, got %q", opt.Label)
	}
	tire := opt.Effect.Effects[0]
	if tire.Type != EffectItem || tire.Item != "spare_tire" || tire.Value != -1 {
		t.Errorf("expected the option to consume one tire, got %+v", tire)
	}
	if len(c.Pool("transport")[0].Options) != 1 {
		t.Error("catalog copy mutated by option injection")
	}
}
