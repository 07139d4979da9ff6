package game

// Delta is a side-effect-free description of intended state mutations,
// produced by the effect compiler and consumed exactly once by
// ApplyEventDelta. A zero value in an additive field means "no change".
type Delta struct {
	Player    PlayerDelta            `json:"player"`
	Band      BandDelta              `json:"band"`
	Social    map[string]float64     `json:"social,omitempty"`     // additive adjustments per channel
	SocialSet map[string]float64     `json:"social_set,omitempty"` // absolute sets, applied after adds
	Flags     FlagsDelta             `json:"flags"`
	Score     int                    `json:"score,omitempty"`
}

// PlayerDelta describes mutations to the player record.
type PlayerDelta struct {
	Money    int            `json:"money,omitempty"`
	Time     float64        `json:"time,omitempty"`
	Fame     int            `json:"fame,omitempty"`
	Day      int            `json:"day,omitempty"`
	Location string         `json:"location,omitempty"`
	Van      *VanDelta      `json:"van,omitempty"`
	Stats    map[string]int `json:"stats,omitempty"` // counter increments
}

// VanDelta describes clamped-add mutations to the van.
type VanDelta struct {
	Fuel      float64 `json:"fuel,omitempty"`
	Condition float64 `json:"condition,omitempty"`
}

// MemberDelta is a mood/stamina adjustment for one member or, when used as
// a broadcast, for every member.
type MemberDelta struct {
	MoodChange    float64 `json:"mood_change,omitempty"`
	StaminaChange float64 `json:"stamina_change,omitempty"`
}

// RelationshipChange adjusts the relationship between two members
// symmetrically. Placeholders are resolved before the delta is built.
type RelationshipChange struct {
	Member1 string  `json:"member1"`
	Member2 string  `json:"member2"`
	Change  float64 `json:"change"`
}

// BandDelta describes mutations to the shared band state.
type BandDelta struct {
	Harmony            float64                `json:"harmony,omitempty"`
	MembersBroadcast   *MemberDelta           `json:"members_broadcast,omitempty"`
	MembersEach        []MemberDelta          `json:"members_each,omitempty"` // element-wise by index
	RelationshipChange []RelationshipChange   `json:"relationship_change,omitempty"`
	Inventory          map[string]interface{} `json:"inventory,omitempty"` // bool overwrites, numbers add
	Luck               float64                `json:"luck,omitempty"`
	Skill              float64                `json:"skill,omitempty"` // applied to every member's base skill
}

// FlagsDelta carries one-shot signals for the session. The slices keep
// composite effects from clobbering each other's flags.
type FlagsDelta struct {
	AddStoryFlags []string `json:"add_story_flags,omitempty"`
	QueueEvents   []string `json:"queue_events,omitempty"`
	AddCooldowns  []string `json:"add_cooldowns,omitempty"`
	Unlocks       []string `json:"unlocks,omitempty"`
	GameOver      bool     `json:"game_over,omitempty"`
}

// NewDelta returns an empty delta skeleton.
func NewDelta() *Delta {
	return &Delta{
		Social:    make(map[string]float64),
		SocialSet: make(map[string]float64),
	}
}

// IsZero reports whether the delta describes no change at all.
func (d *Delta) IsZero() bool {
	if d == nil {
		return true
	}
	p := d.Player
	playerZero := p.Money == 0 && p.Time == 0 && p.Fame == 0 && p.Day == 0 &&
		p.Location == "" && p.Van == nil && len(p.Stats) == 0
	b := d.Band
	bandZero := b.Harmony == 0 && b.MembersBroadcast == nil &&
		len(b.MembersEach) == 0 && len(b.RelationshipChange) == 0 &&
		len(b.Inventory) == 0 && b.Luck == 0 && b.Skill == 0
	f := d.Flags
	flagsZero := len(f.AddStoryFlags) == 0 && len(f.QueueEvents) == 0 &&
		len(f.AddCooldowns) == 0 && len(f.Unlocks) == 0 && !f.GameOver
	return playerZero && bandZero &&
		len(d.Social) == 0 && len(d.SocialSet) == 0 &&
		flagsZero && d.Score == 0
}
