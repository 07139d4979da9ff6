package events

import "github.com/expr-lang/expr/vm"

// EffectKind discriminates the effect variants.
type EffectKind string

const (
	EffectResource      EffectKind = "resource"
	EffectStat          EffectKind = "stat"
	EffectStatIncrement EffectKind = "stat_increment"
	EffectItem          EffectKind = "item"
	EffectUnlock        EffectKind = "unlock"
	EffectGameOver      EffectKind = "game_over"
	EffectFlag          EffectKind = "flag"
	EffectCooldown      EffectKind = "cooldown"
	EffectSocialSet     EffectKind = "social_set"
	EffectChain         EffectKind = "chain"
	EffectRelationship  EffectKind = "relationship"
	EffectComposite     EffectKind = "composite"
)

// Effect is a tagged description of a state change. A composite effect
// wraps an ordered sequence of sub-effects applied in order. Only the
// fields relevant to Type are populated.
type Effect struct {
	Type        EffectKind `json:"type"`
	Resource    string     `json:"resource,omitempty"` // resource: "money" | "fuel"
	Stat        string     `json:"stat,omitempty"`     // stat / stat_increment / social_set target
	Value       float64    `json:"value,omitempty"`
	Item        string     `json:"item,omitempty"`
	ItemGrant   *bool      `json:"item_grant,omitempty"` // boolean inventory flag; nil means numeric Value
	Flag        string     `json:"flag,omitempty"`       // flag: story flag id
	EventID     string     `json:"event_id,omitempty"`   // chain / cooldown target
	Unlock      string     `json:"unlock,omitempty"`
	Member1     string     `json:"member1,omitempty"` // relationship; may hold {member1} placeholder
	Member2     string     `json:"member2,omitempty"`
	Effects     []Effect   `json:"effects,omitempty"` // composite sub-effects
	Description string     `json:"description,omitempty"`
}

// SkillCheck is a threshold test against a derived stat value plus a
// random roll.
type SkillCheck struct {
	Stat      string  `json:"stat"`
	Threshold float64 `json:"threshold"`
	Success   *Effect `json:"success"`
	Failure   *Effect `json:"failure"`
}

// Choice is one selectable option within an event. Exactly one of Effect
// and SkillCheck is populated.
type Choice struct {
	Label       string     `json:"label"`
	OutcomeText string     `json:"outcome_text,omitempty"`
	Effect      *Effect    `json:"effect,omitempty"`
	SkillCheck  *SkillCheck `json:"skill_check,omitempty"`
	Flags       []string   `json:"flags,omitempty"` // behavioral markers such as "stageDive"
	NextEventID string     `json:"next_event_id,omitempty"`
}

// HasFlag reports whether the choice carries a behavioral marker.
func (c *Choice) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Event is a catalog-defined narrative beat. Events are immutable value
// records; selection returns a copy augmented with resolved context.
type Event struct {
	ID           string            `json:"id"`
	Category     string            `json:"category"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Trigger      string            `json:"trigger,omitempty"`
	Chance       float64           `json:"chance"`
	RequiredFlag string            `json:"required_flag,omitempty"`
	Condition    string            `json:"condition,omitempty"` // expr program source
	Tags         []string          `json:"tags,omitempty"`
	Options      []Choice          `json:"options"`
	Context      map[string]string `json:"context,omitempty"` // resolved on selection

	program *vm.Program
}

// HasTag reports whether the event carries the given tag.
func (e *Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// OutcomeResult tags how a choice resolved.
type OutcomeResult string

const (
	OutcomeDirect  OutcomeResult = "direct"
	OutcomeSuccess OutcomeResult = "success"
	OutcomeFailure OutcomeResult = "failure"
)

// Outcome is the resolved result of a choice: the effect to compile plus
// the resolution tag.
type Outcome struct {
	Effect      Effect        `json:"effect"`
	Result      OutcomeResult `json:"result"`
	Description string        `json:"description,omitempty"`
	NextEventID string        `json:"next_event_id,omitempty"`
}

// SavedByBandleaderSuffix is appended to a rescued outcome's description so
// the UI can surface the save.
const SavedByBandleaderSuffix = " (Saved by Bandleader!)"
