package game

import (
	"math"
	"time"
)

// Relationship-change multipliers applied per trait of the member whose
// score is being adjusted. Multipliers compose when a member holds both.
const (
	grudgeHolderNegativeFactor = 1.5
	peacemakerPositiveFactor   = 1.5
	peacemakerNegativeFactor   = 0.5
)

// ApplyEventDelta materializes a delta into a new state. The input state is
// never mutated; every numeric invariant is re-established on the copy:
// money >= 0, harmony in [1,100], fuel/condition in [0,100], mood/stamina
// in [0,100], relationships in [0,100], social counts >= 0.
func ApplyEventDelta(state *State, delta *Delta) *State {
	next := state.Clone()
	if delta == nil {
		return next
	}

	applyPlayerDelta(next, &delta.Player)
	applyBandDelta(next, &delta.Band)
	applySocialDelta(next, delta)
	applyFlagsDelta(next, &delta.Flags)

	if delta.Score != 0 {
		next.Player.Score += delta.Score
	}

	next.UpdatedAt = time.Now()
	return next
}

func applyPlayerDelta(next *State, d *PlayerDelta) {
	p := &next.Player

	if d.Money != 0 {
		p.Money = maxInt(0, p.Money+d.Money)
	}
	if d.Time != 0 {
		p.Time += d.Time
	}
	if d.Fame != 0 {
		p.Fame = maxInt(0, p.Fame+d.Fame)
	}
	if d.Day != 0 {
		p.Day += d.Day
	}
	if d.Location != "" {
		p.Location = d.Location
	}
	if d.Van != nil {
		p.Van.Fuel = clamp(p.Van.Fuel+d.Van.Fuel, 0, 100)
		p.Van.Condition = clamp(p.Van.Condition+d.Van.Condition, 0, 100)
	}
	for stat, inc := range d.Stats {
		if p.Stats == nil {
			p.Stats = make(map[string]int)
		}
		p.Stats[stat] += inc
	}
}

func applyBandDelta(next *State, d *BandDelta) {
	b := &next.Band

	if d.Harmony != 0 {
		b.Harmony = clamp(b.Harmony+d.Harmony, 1, 100)
	}

	switch {
	case len(d.MembersEach) > 0:
		for i := range b.Members {
			if i >= len(d.MembersEach) {
				break
			}
			applyMemberDelta(&b.Members[i], d.MembersEach[i])
		}
	case d.MembersBroadcast != nil:
		for i := range b.Members {
			applyMemberDelta(&b.Members[i], *d.MembersBroadcast)
		}
	}

	for _, rc := range d.RelationshipChange {
		applyRelationshipChange(b, rc)
	}

	for item, v := range d.Inventory {
		if b.Inventory == nil {
			b.Inventory = make(map[string]interface{})
		}
		switch dv := v.(type) {
		case bool:
			b.Inventory[item] = dv
		case float64:
			current := 0.0
			if cv, ok := b.Inventory[item].(float64); ok {
				current = cv
			}
			b.Inventory[item] = math.Max(0, current+dv)
		case int:
			current := 0.0
			if cv, ok := b.Inventory[item].(float64); ok {
				current = cv
			}
			b.Inventory[item] = math.Max(0, current+float64(dv))
		}
	}

	if d.Luck != 0 {
		b.Luck = math.Max(0, b.Luck+d.Luck)
	}
	if d.Skill != 0 {
		for i := range b.Members {
			m := &b.Members[i]
			if m.BaseStats == nil {
				m.BaseStats = make(map[string]float64)
			}
			m.BaseStats["skill"] = clamp(m.BaseStats["skill"]+d.Skill, 1, 10)
		}
	}
}

func applyMemberDelta(m *BandMember, d MemberDelta) {
	m.Mood = clamp(m.Mood+d.MoodChange, 0, 100)
	m.Stamina = clamp(m.Stamina+d.StaminaChange, 0, 100)
}

// applyRelationshipChange updates both sides of a relationship. Each side's
// own traits modulate the change applied to its own score: grudge_holder
// amplifies harm, peacemaker amplifies goodwill and dampens harm.
func applyRelationshipChange(b *Band, rc RelationshipChange) {
	adjust(b.Member(rc.Member1), rc.Member2, rc.Change)
	adjust(b.Member(rc.Member2), rc.Member1, rc.Change)
}

func adjust(m *BandMember, other string, change float64) {
	if m == nil {
		return
	}
	modified := change
	if m.HasTrait("grudge_holder") && change < 0 {
		modified *= grudgeHolderNegativeFactor
	}
	if m.HasTrait("peacemaker") {
		if change > 0 {
			modified *= peacemakerPositiveFactor
		} else if change < 0 {
			modified *= peacemakerNegativeFactor
		}
	}
	if m.Relationships == nil {
		m.Relationships = make(map[string]float64)
	}
	m.Relationships[other] = clamp(m.Relationships[other]+modified, 0, 100)
}

func applySocialDelta(next *State, d *Delta) {
	if len(d.Social) > 0 || len(d.SocialSet) > 0 {
		if next.Social == nil {
			next.Social = make(map[string]float64)
		}
	}
	for key, value := range d.Social {
		next.Social[key] = math.Max(0, next.Social[key]+value)
	}
	for key, value := range d.SocialSet {
		next.Social[key] = math.Max(0, value)
	}
}

func applyFlagsDelta(next *State, f *FlagsDelta) {
	for _, flag := range f.AddStoryFlags {
		if flag != "" && !next.HasStoryFlag(flag) {
			next.ActiveStoryFlags = append(next.ActiveStoryFlags, flag)
		}
	}
	for _, id := range f.QueueEvents {
		if id != "" {
			next.PendingEvents = append(next.PendingEvents, id)
		}
	}
	for _, id := range f.AddCooldowns {
		if id != "" && !next.OnCooldown(id) {
			next.EventCooldowns = append(next.EventCooldowns, id)
		}
	}
	for _, u := range f.Unlocks {
		if u != "" && !hasString(next.Unlocks, u) {
			next.Unlocks = append(next.Unlocks, u)
		}
	}
	if f.GameOver {
		next.GameOver = true
	}
}

func hasString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
