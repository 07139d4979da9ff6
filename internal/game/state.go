package game

import (
	"encoding/json"
	"time"
)

// Trait is a character quirk a band member can hold. Traits are appended
// once when unlocked and never removed.
type Trait struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	Effect string `json:"effect"`
}

// BandMember represents one musician in the touring band.
type BandMember struct {
	Name          string             `json:"name"`
	Role          string             `json:"role"`
	Mood          float64            `json:"mood"`    // 0-100
	Stamina       float64            `json:"stamina"` // 0-100
	BaseStats     map[string]float64 `json:"base_stats"`
	Traits        []Trait            `json:"traits"`
	Relationships map[string]float64 `json:"relationships"` // member name -> 0-100
}

// HasTrait reports whether the member holds the given trait.
func (m *BandMember) HasTrait(traitID string) bool {
	for _, t := range m.Traits {
		if t.ID == traitID {
			return true
		}
	}
	return false
}

// Van is the band's tour vehicle.
type Van struct {
	Fuel      float64  `json:"fuel"`      // 0-100
	Condition float64  `json:"condition"` // 0-100
	Upgrades  []string `json:"upgrades"`
}

// Player holds the tour-manager side of the state.
type Player struct {
	Money      int            `json:"money"`
	Fame       int            `json:"fame"`
	Day        int            `json:"day"`
	Time       float64        `json:"time"`
	Score      int            `json:"score"`
	Location   string         `json:"location"`
	Van        Van            `json:"van"`
	Stats      map[string]int `json:"stats"` // accumulated counters (conflictsResolved, stageDives, totalDistance, ...)
	HQUpgrades []string       `json:"hq_upgrades"`
}

// Band holds the shared band state.
type Band struct {
	Members   []BandMember           `json:"members"`
	Harmony   float64                `json:"harmony"` // 1-100
	Luck      float64                `json:"luck"`
	Inventory map[string]interface{} `json:"inventory"` // item id -> bool flag or numeric count
}

// HasTrait reports whether any member holds the given trait.
func (b *Band) HasTrait(traitID string) bool {
	for i := range b.Members {
		if b.Members[i].HasTrait(traitID) {
			return true
		}
	}
	return false
}

// Member returns the member with the given name, or nil.
func (b *Band) Member(name string) *BandMember {
	for i := range b.Members {
		if b.Members[i].Name == name {
			return &b.Members[i]
		}
	}
	return nil
}

// ActiveEvent is the summary of the currently displayed narrative event.
// The resolver only needs its identity, tags and resolved template context;
// the full event record stays with the engine.
type ActiveEvent struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Tags    []string          `json:"tags,omitempty"`
	Context map[string]string `json:"context,omitempty"`
}

// HasTag reports whether the active event carries the given tag.
func (e *ActiveEvent) HasTag(tag string) bool {
	if e == nil {
		return false
	}
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// State is the root aggregate for a tour session. It is replaced, never
// mutated in place, by each delta application.
type State struct {
	Player           Player             `json:"player"`
	Band             Band               `json:"band"`
	Social           map[string]float64 `json:"social"`
	ActiveStoryFlags []string           `json:"active_story_flags"`
	PendingEvents    []string           `json:"pending_events"`
	EventCooldowns   []string           `json:"event_cooldowns"`
	ActiveEvent      *ActiveEvent       `json:"active_event,omitempty"`
	Unlocks          []string           `json:"unlocks,omitempty"`
	GameOver         bool               `json:"game_over"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStoryFlag reports whether a story flag is active.
func (s *State) HasStoryFlag(flag string) bool {
	for _, f := range s.ActiveStoryFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// OnCooldown reports whether the given event id is cooled down.
func (s *State) OnCooldown(eventID string) bool {
	for _, id := range s.EventCooldowns {
		if id == eventID {
			return true
		}
	}
	return false
}

// HasItem reports whether the inventory holds the item, either as a true
// boolean flag or as a positive count.
func (s *State) HasItem(item string) bool {
	switch v := s.Band.Inventory[item].(type) {
	case bool:
		return v
	case float64:
		return v > 0
	case int:
		return v > 0
	default:
		return false
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	next := *s

	next.Player.Stats = copyIntMap(s.Player.Stats)
	next.Player.HQUpgrades = append([]string(nil), s.Player.HQUpgrades...)
	next.Player.Van.Upgrades = append([]string(nil), s.Player.Van.Upgrades...)

	next.Band.Members = make([]BandMember, len(s.Band.Members))
	for i, m := range s.Band.Members {
		mc := m
		mc.BaseStats = copyFloatMap(m.BaseStats)
		mc.Traits = append([]Trait(nil), m.Traits...)
		mc.Relationships = copyFloatMap(m.Relationships)
		next.Band.Members[i] = mc
	}
	next.Band.Inventory = make(map[string]interface{}, len(s.Band.Inventory))
	for k, v := range s.Band.Inventory {
		next.Band.Inventory[k] = v
	}

	next.Social = copyFloatMap(s.Social)
	next.ActiveStoryFlags = append([]string(nil), s.ActiveStoryFlags...)
	next.PendingEvents = append([]string(nil), s.PendingEvents...)
	next.EventCooldowns = append([]string(nil), s.EventCooldowns...)
	next.Unlocks = append([]string(nil), s.Unlocks...)

	if s.ActiveEvent != nil {
		ae := *s.ActiveEvent
		ae.Tags = append([]string(nil), s.ActiveEvent.Tags...)
		if s.ActiveEvent.Context != nil {
			ae.Context = make(map[string]string, len(s.ActiveEvent.Context))
			for k, v := range s.ActiveEvent.Context {
				ae.Context[k] = v
			}
		}
		next.ActiveEvent = &ae
	}

	return &next
}

// MarshalState serializes a state snapshot for persistence.
func MarshalState(s *State) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalState deserializes a persisted state snapshot.
func UnmarshalState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func copyIntMap(src map[string]int) map[string]int {
	if src == nil {
		return nil
	}
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyFloatMap(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
