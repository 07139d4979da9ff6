package events

import (
	"testing"

	"github.com/neurotoxic-dev/tour-server/internal/game"
)

func compile(t *testing.T, eff Effect, ev *Event) *game.Delta {
	t.Helper()
	return NewCompiler(testLogger()).Compile(&Outcome{Effect: eff}, ev)
}

func TestCompileResourceEffects(t *testing.T) {
	d := compile(t, Effect{Type: EffectResource, Resource: "money", Value: -80}, nil)
	if d.Player.Money != -80 {
		t.Errorf("expected money -80, got %d", d.Player.Money)
	}

	d = compile(t, Effect{Type: EffectResource, Resource: "fuel", Value: 25}, nil)
	if d.Player.Van == nil || d.Player.Van.Fuel != 25 {
		t.Errorf("expected fuel 25, got %+v", d.Player.Van)
	}
}

func TestCompileStatMapping(t *testing.T) {
	cases := []struct {
		stat  string
		check func(*game.Delta) bool
	}{
		{"time", func(d *game.Delta) bool { return d.Player.Time == 2 }},
		{"fame", func(d *game.Delta) bool { return d.Player.Fame == 2 }},
		{"hype", func(d *game.Delta) bool { return d.Player.Fame == 2 }},
		{"crowd_energy", func(d *game.Delta) bool { return d.Player.Fame == 2 }},
		{"harmony", func(d *game.Delta) bool { return d.Band.Harmony == 2 }},
		{"mood", func(d *game.Delta) bool {
			return d.Band.MembersBroadcast != nil && d.Band.MembersBroadcast.MoodChange == 2
		}},
		{"stamina", func(d *game.Delta) bool {
			return d.Band.MembersBroadcast != nil && d.Band.MembersBroadcast.StaminaChange == 2
		}},
		{"van_condition", func(d *game.Delta) bool {
			return d.Player.Van != nil && d.Player.Van.Condition == 2
		}},
		{"viral", func(d *game.Delta) bool { return d.Social["viral"] == 2 }},
		{"controversyLevel", func(d *game.Delta) bool { return d.Social["controversyLevel"] == 2 }},
		{"loyalty", func(d *game.Delta) bool { return d.Social["loyalty"] == 2 }},
		{"score", func(d *game.Delta) bool { return d.Score == 2 }},
		{"luck", func(d *game.Delta) bool { return d.Band.Luck == 2 }},
		{"skill", func(d *game.Delta) bool { return d.Band.Skill == 2 }},
	}
	for _, c := range cases {
		d := compile(t, Effect{Type: EffectStat, Stat: c.stat, Value: 2}, nil)
		if !c.check(d) {
			t.Errorf("stat %s lowered incorrectly: %+v", c.stat, d)
		}
	}
}

func TestCompileStatIncrement(t *testing.T) {
	d := compile(t, Effect{Type: EffectStatIncrement, Stat: "stageDives", Value: 1}, nil)
	if d.Player.Stats["stageDives"] != 1 {
		t.Errorf("expected counter increment, got %v", d.Player.Stats)
	}
}

func TestCompileItemVariants(t *testing.T) {
	grant := false
	d := compile(t, Effect{Type: EffectItem, Item: "spare_tire", ItemGrant: &grant}, nil)
	if v, ok := d.Band.Inventory["spare_tire"].(bool); !ok || v {
		t.Errorf("expected boolean removal, got %v", d.Band.Inventory["spare_tire"])
	}

	d = compile(t, Effect{Type: EffectItem, Item: "patches", Value: -100}, nil)
	if v, ok := d.Band.Inventory["patches"].(float64); !ok || v != -100 {
		t.Errorf("expected numeric adjustment, got %v", d.Band.Inventory["patches"])
	}

	d = compile(t, Effect{Type: EffectItem, Item: "beer_fridge"}, nil)
	if v, ok := d.Band.Inventory["beer_fridge"].(bool); !ok || !v {
		t.Errorf("expected bare item to grant true, got %v", d.Band.Inventory["beer_fridge"])
	}
}

func TestCompileItemEffectsAccumulate(t *testing.T) {
	d := compile(t, Effect{
		Type: EffectComposite,
		Effects: []Effect{
			{Type: EffectItem, Item: "shirts", Value: -10},
			{Type: EffectItem, Item: "shirts", Value: -5},
		},
	}, nil)
	if v, ok := d.Band.Inventory["shirts"].(float64); !ok || v != -15 {
		t.Errorf("expected repeated item effects to add up to -15, got %v", d.Band.Inventory["shirts"])
	}
}

func TestCompileRelationshipPlaceholders(t *testing.T) {
	ev := &Event{
		ID:      "toxic_infighting",
		Context: map[string]string{"member1": "Matze", "member2": "Lars"},
	}
	d := compile(t, Effect{Type: EffectRelationship, Member1: "{member1}", Member2: "{member2}", Value: -10}, ev)

	if len(d.Band.RelationshipChange) != 1 {
		t.Fatalf("expected one relationship change, got %d", len(d.Band.RelationshipChange))
	}
	rc := d.Band.RelationshipChange[0]
	if rc.Member1 != "Matze" || rc.Member2 != "Lars" || rc.Change != -10 {
		t.Errorf("unexpected change %+v", rc)
	}
}

func TestCompileRelationshipUnresolvedSkipped(t *testing.T) {
	ev := &Event{ID: "toxic_infighting"}
	d := compile(t, Effect{Type: EffectRelationship, Member1: "{member1}", Member2: "{member2}", Value: -10}, ev)
	if len(d.Band.RelationshipChange) != 0 {
		t.Errorf("expected unresolved placeholders to be skipped, got %+v", d.Band.RelationshipChange)
	}
}

func TestCompileCooldownDefaultsToEvent(t *testing.T) {
	ev := &Event{ID: "debt_collector"}
	d := compile(t, Effect{Type: EffectCooldown}, ev)
	if len(d.Flags.AddCooldowns) != 1 || d.Flags.AddCooldowns[0] != "debt_collector" {
		t.Errorf("expected cooldown on the source event, got %v", d.Flags.AddCooldowns)
	}

	d = compile(t, Effect{Type: EffectCooldown, EventID: "other_event"}, ev)
	if d.Flags.AddCooldowns[0] != "other_event" {
		t.Errorf("expected explicit cooldown target, got %v", d.Flags.AddCooldowns)
	}
}

func TestCompileFlagChainUnlockGameOver(t *testing.T) {
	d := compile(t, Effect{
		Type: EffectComposite,
		Effects: []Effect{
			{Type: EffectFlag, Flag: "label_interest"},
			{Type: EffectChain, EventID: "label_showcase_offer"},
			{Type: EffectUnlock, Unlock: "road_warrior"},
			{Type: EffectGameOver},
			{Type: EffectSocialSet, Stat: "viral", Value: 0},
		},
	}, nil)

	if len(d.Flags.AddStoryFlags) != 1 || d.Flags.AddStoryFlags[0] != "label_interest" {
		t.Errorf("flag not lowered: %v", d.Flags.AddStoryFlags)
	}
	if len(d.Flags.QueueEvents) != 1 || d.Flags.QueueEvents[0] != "label_showcase_offer" {
		t.Errorf("chain not lowered: %v", d.Flags.QueueEvents)
	}
	if len(d.Flags.Unlocks) != 1 || d.Flags.Unlocks[0] != "road_warrior" {
		t.Errorf("unlock not lowered: %v", d.Flags.Unlocks)
	}
	if !d.Flags.GameOver {
		t.Error("game over not lowered")
	}
	if v, ok := d.SocialSet["viral"]; !ok || v != 0 {
		t.Errorf("social set not lowered: %v", d.SocialSet)
	}
}

func TestCompileNextEventQueued(t *testing.T) {
	c := NewCompiler(testLogger())
	d := c.Compile(&Outcome{NextEventID: "followup_event"}, nil)
	if len(d.Flags.QueueEvents) != 1 || d.Flags.QueueEvents[0] != "followup_event" {
		t.Errorf("expected follow-up queued, got %v", d.Flags.QueueEvents)
	}
}

func TestCompileUnknownKindSkipped(t *testing.T) {
	d := compile(t, Effect{Type: EffectKind("teleport"), Value: 9}, nil)
	if !d.IsZero() {
		t.Errorf("expected unknown kind to produce empty delta, got %+v", d)
	}
}
