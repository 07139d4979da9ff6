package game

import "testing"

func TestApplyEventDeltaMoneyFloor(t *testing.T) {
	s := newTestState()
	s.Player.Money = 50

	d := NewDelta()
	d.Player.Money = -120
	next := ApplyEventDelta(s, d)

	if next.Player.Money != 0 {
		t.Errorf("expected money floored at 0, got %d", next.Player.Money)
	}
	if s.Player.Money != 50 {
		t.Errorf("input state mutated: money %d", s.Player.Money)
	}
}

func TestApplyEventDeltaHarmonyClamp(t *testing.T) {
	s := newTestState()

	d := NewDelta()
	d.Band.Harmony = -200
	next := ApplyEventDelta(s, d)
	if next.Band.Harmony != 1 {
		t.Errorf("expected harmony clamped to 1, got %v", next.Band.Harmony)
	}

	d = NewDelta()
	d.Band.Harmony = 500
	next = ApplyEventDelta(s, d)
	if next.Band.Harmony != 100 {
		t.Errorf("expected harmony clamped to 100, got %v", next.Band.Harmony)
	}
}

func TestApplyEventDeltaVanClamps(t *testing.T) {
	s := newTestState()
	s.Player.Van.Fuel = 10
	s.Player.Van.Condition = 95

	d := NewDelta()
	d.Player.Van = &VanDelta{Fuel: -50, Condition: 20}
	next := ApplyEventDelta(s, d)

	if next.Player.Van.Fuel != 0 {
		t.Errorf("expected fuel clamped to 0, got %v", next.Player.Van.Fuel)
	}
	if next.Player.Van.Condition != 100 {
		t.Errorf("expected condition clamped to 100, got %v", next.Player.Van.Condition)
	}
}

func TestApplyEventDeltaMemberBroadcast(t *testing.T) {
	s := newTestState()

	d := NewDelta()
	d.Band.MembersBroadcast = &MemberDelta{MoodChange: 60, StaminaChange: -60}
	next := ApplyEventDelta(s, d)

	for _, m := range next.Band.Members {
		if m.Mood != 100 {
			t.Errorf("member %s: expected mood clamped to 100, got %v", m.Name, m.Mood)
		}
		if m.Stamina != 0 {
			t.Errorf("member %s: expected stamina clamped to 0, got %v", m.Name, m.Stamina)
		}
	}
}

func TestApplyEventDeltaRelationshipSymmetric(t *testing.T) {
	s := newTestState()

	d := NewDelta()
	d.Band.RelationshipChange = []RelationshipChange{{Member1: "Matze", Member2: "Lars", Change: 10}}
	next := ApplyEventDelta(s, d)

	if got := next.Band.Member("Matze").Relationships["Lars"]; got != 60 {
		t.Errorf("expected Matze->Lars 60, got %v", got)
	}
	if got := next.Band.Member("Lars").Relationships["Matze"]; got != 60 {
		t.Errorf("expected Lars->Matze 60, got %v", got)
	}
}

func TestGrudgeHolderAmplifiesNegativeOnly(t *testing.T) {
	s := withTrait(newTestState(), "Matze", "grudge_holder")

	d := NewDelta()
	d.Band.RelationshipChange = []RelationshipChange{{Member1: "Matze", Member2: "Lars", Change: -10}}
	next := ApplyEventDelta(s, d)

	// Matze holds the grudge, so his side drops by 15 while Lars drops 10.
	if got := next.Band.Member("Matze").Relationships["Lars"]; got != 35 {
		t.Errorf("expected grudge side at 35, got %v", got)
	}
	if got := next.Band.Member("Lars").Relationships["Matze"]; got != 40 {
		t.Errorf("expected plain side at 40, got %v", got)
	}

	// Positive changes are not amplified.
	d = NewDelta()
	d.Band.RelationshipChange = []RelationshipChange{{Member1: "Matze", Member2: "Lars", Change: 10}}
	next = ApplyEventDelta(s, d)
	if got := next.Band.Member("Matze").Relationships["Lars"]; got != 60 {
		t.Errorf("expected positive change unamplified at 60, got %v", got)
	}
}

func TestPeacemakerModifiers(t *testing.T) {
	s := withTrait(newTestState(), "Lars", "peacemaker")

	d := NewDelta()
	d.Band.RelationshipChange = []RelationshipChange{{Member1: "Matze", Member2: "Lars", Change: 10}}
	next := ApplyEventDelta(s, d)
	if got := next.Band.Member("Lars").Relationships["Matze"]; got != 65 {
		t.Errorf("expected peacemaker positive boost to 65, got %v", got)
	}

	d = NewDelta()
	d.Band.RelationshipChange = []RelationshipChange{{Member1: "Matze", Member2: "Lars", Change: -10}}
	next = ApplyEventDelta(s, d)
	if got := next.Band.Member("Lars").Relationships["Matze"]; got != 45 {
		t.Errorf("expected peacemaker negative dampened to 45, got %v", got)
	}
}

func TestTraitModifiersCompose(t *testing.T) {
	s := withTrait(newTestState(), "Matze", "grudge_holder")
	s = withTrait(s, "Matze", "peacemaker")

	d := NewDelta()
	d.Band.RelationshipChange = []RelationshipChange{{Member1: "Matze", Member2: "Lars", Change: -10}}
	next := ApplyEventDelta(s, d)

	// 1.5 from the grudge and 0.5 from the peacemaker cancel to -7.5.
	if got := next.Band.Member("Matze").Relationships["Lars"]; got != 42.5 {
		t.Errorf("expected composed modifiers at 42.5, got %v", got)
	}
}

func TestSkillDeltaAppliesToEveryMember(t *testing.T) {
	s := newTestState()
	s.Band.Members[0].BaseStats["skill"] = 9.5

	d := NewDelta()
	d.Band.Skill = 1
	next := ApplyEventDelta(s, d)

	if got := next.Band.Members[0].BaseStats["skill"]; got != 10 {
		t.Errorf("expected skill clamped to 10, got %v", got)
	}
	for i := 1; i < len(next.Band.Members); i++ {
		before := s.Band.Members[i].BaseStats["skill"]
		after := next.Band.Members[i].BaseStats["skill"]
		if after != before+1 {
			t.Errorf("member %d: expected skill %v, got %v", i, before+1, after)
		}
	}
}

func TestInventoryMergeSemantics(t *testing.T) {
	s := newTestState()
	s.Band.Inventory = map[string]interface{}{
		"patches": float64(100),
		"strings": true,
	}

	d := NewDelta()
	d.Band.Inventory = map[string]interface{}{
		"patches":    float64(-150), // floors at 0
		"strings":    false,         // bool overwrite
		"spare_tire": true,          // new key
	}
	next := ApplyEventDelta(s, d)

	if got := next.Band.Inventory["patches"]; got != float64(0) {
		t.Errorf("expected patches floored at 0, got %v", got)
	}
	if got := next.Band.Inventory["strings"]; got != false {
		t.Errorf("expected strings overwritten to false, got %v", got)
	}
	if got := next.Band.Inventory["spare_tire"]; got != true {
		t.Errorf("expected spare_tire granted, got %v", got)
	}
}

func TestFlagsDeltaSemantics(t *testing.T) {
	s := newTestState()
	s.ActiveStoryFlags = []string{"met_roadie"}
	s.EventCooldowns = []string{"parking_fine"}

	d := NewDelta()
	d.Flags.AddStoryFlags = []string{"met_roadie", "label_interest"}
	d.Flags.QueueEvents = []string{"label_showcase_offer", "viral_clip"}
	d.Flags.AddCooldowns = []string{"parking_fine", "debt_collector"}
	next := ApplyEventDelta(s, d)

	if len(next.ActiveStoryFlags) != 2 {
		t.Errorf("expected flag set semantics, got %v", next.ActiveStoryFlags)
	}
	if len(next.PendingEvents) != 2 || next.PendingEvents[0] != "label_showcase_offer" {
		t.Errorf("expected FIFO pending queue, got %v", next.PendingEvents)
	}
	if len(next.EventCooldowns) != 2 {
		t.Errorf("expected cooldown set semantics, got %v", next.EventCooldowns)
	}
}

func TestGameOverLatches(t *testing.T) {
	s := newTestState()

	d := NewDelta()
	d.Flags.GameOver = true
	next := ApplyEventDelta(s, d)
	if !next.GameOver {
		t.Fatal("expected game over set")
	}

	next = ApplyEventDelta(next, NewDelta())
	if !next.GameOver {
		t.Error("expected game over to stay set")
	}
}

func TestSocialAddThenSet(t *testing.T) {
	s := newTestState()
	s.Social["viral"] = 5

	d := NewDelta()
	d.Social["viral"] = 3
	d.Social["instagram"] = -1000
	d.SocialSet["tiktok"] = 500
	next := ApplyEventDelta(s, d)

	if got := next.Social["viral"]; got != 8 {
		t.Errorf("expected viral 8, got %v", got)
	}
	if got := next.Social["instagram"]; got != 0 {
		t.Errorf("expected instagram floored at 0, got %v", got)
	}
	if got := next.Social["tiktok"]; got != 500 {
		t.Errorf("expected tiktok set to 500, got %v", got)
	}
}
