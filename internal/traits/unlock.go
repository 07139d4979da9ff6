package traits

import "github.com/neurotoxic-dev/tour-server/internal/game"

// ContextType names the gameplay milestone being checked.
type ContextType string

const (
	GigComplete    ContextType = "GIG_COMPLETE"
	TravelComplete ContextType = "TRAVEL_COMPLETE"
	Purchase       ContextType = "PURCHASE"
	SocialUpdate   ContextType = "SOCIAL_UPDATE"
	EventResolved  ContextType = "EVENT_RESOLVED"
)

// Context carries the milestone data unlock rules evaluate. Only the
// fields relevant to the context type are populated.
type Context struct {
	Type ContextType `json:"type"`

	// Gig performance.
	Misses     int     `json:"misses,omitempty"`
	Accuracy   float64 `json:"accuracy,omitempty"`
	BPM        float64 `json:"bpm,omitempty"`
	Combo      int     `json:"combo,omitempty"`
	Difficulty int     `json:"difficulty,omitempty"`

	// Travel.
	TotalDistance float64 `json:"total_distance,omitempty"`

	// Purchases.
	Item      string `json:"item,omitempty"`
	GearCount int    `json:"gear_count,omitempty"`
}

// Unlock is one awarded trait and its recipient.
type Unlock struct {
	TraitID string `json:"trait_id"`
	Member  string `json:"member"`
}

const (
	roadWarriorDistance   = 5000.0
	socialManagerFollowers = 1000.0
	bandleaderConflicts   = 3
	showmanStageDives     = 3
	grudgeThreshold       = 30.0
	peacemakerHarmony     = 90.0
)

// CheckTraitUnlocks evaluates every unlock rule for a milestone and
// returns the traits newly earned. A trait held by any member is never
// awarded again.
func CheckTraitUnlocks(state *game.State, ctx *Context) []Unlock {
	if state == nil || ctx == nil || len(state.Band.Members) == 0 {
		return nil
	}

	var unlocks []Unlock
	award := func(traitID, member string) {
		if member == "" || state.Band.HasTrait(traitID) {
			return
		}
		for _, u := range unlocks {
			if u.TraitID == traitID {
				return
			}
		}
		unlocks = append(unlocks, Unlock{TraitID: traitID, Member: member})
	}

	switch ctx.Type {
	case GigComplete:
		if ctx.Misses == 0 {
			award(Virtuoso, recipient(state, Virtuoso))
		}
		if ctx.Accuracy == 100 {
			award(Perfektionist, recipient(state, Perfektionist))
		}
		if ctx.BPM > 160 && ctx.Combo > 50 {
			award(BlastMachine, recipient(state, BlastMachine))
		}
		if ctx.BPM < 120 && ctx.Combo > 30 {
			award(MelodicGenius, recipient(state, MelodicGenius))
		}
		if ctx.Difficulty > 3 && ctx.Accuracy == 100 {
			award(TechWizard, recipient(state, TechWizard))
		}

	case TravelComplete:
		if ctx.TotalDistance >= roadWarriorDistance {
			award(RoadWarrior, recipient(state, RoadWarrior))
		}

	case Purchase:
		if ctx.Item == "beer_fridge" {
			award(PartyAnimal, recipient(state, PartyAnimal))
		}
		if ctx.GearCount >= 5 {
			award(GearNerd, recipient(state, GearNerd))
		}

	case SocialUpdate:
		for channel, followers := range state.Social {
			if channel == "viral" {
				continue
			}
			if followers >= socialManagerFollowers {
				award(SocialManager, recipient(state, SocialManager))
				break
			}
		}

	case EventResolved:
		if state.Player.Stats["conflictsResolved"] >= bandleaderConflicts {
			award(Bandleader, recipient(state, Bandleader))
		}
		if state.Player.Stats["stageDives"] >= showmanStageDives {
			award(Showman, recipient(state, Showman))
		}
		if holder := grudgeHolderRecipient(state); holder != "" {
			award(GrudgeHolder, holder)
		}
		if state.Band.Harmony >= peacemakerHarmony {
			award(Peacemaker, recipient(state, Peacemaker))
		}
	}
	return unlocks
}

// traitRecipients name-routes each milestone trait to the member whose
// playstyle earns it.
var traitRecipients = map[string]string{
	Virtuoso:      "Matze",
	Perfektionist: "Matze",
	TechWizard:    "Matze",
	GearNerd:      "Matze",
	BlastMachine:  "Lars",
	PartyAnimal:   "Lars",
	Showman:       "Lars",
	MelodicGenius: "Marius",
	RoadWarrior:   "Marius",
	SocialManager: "Marius",
	Bandleader:    "Marius",
	Peacemaker:    "Marius",
}

// recipient resolves a trait's named member, or "" when that member is
// not in the roster.
func recipient(state *game.State, traitID string) string {
	name, ok := traitRecipients[traitID]
	if !ok || state.Band.Member(name) == nil {
		return ""
	}
	return name
}

// grudgeHolderRecipient returns the member nursing a relationship below
// the grudge threshold, if any.
func grudgeHolderRecipient(state *game.State) string {
	for _, m := range state.Band.Members {
		for _, v := range m.Relationships {
			if v < grudgeThreshold {
				return m.Name
			}
		}
	}
	return ""
}

// ApplyTraitUnlocks attaches awarded traits to their recipients, records
// the unlock ids on the session, and emits one toast per award. The
// input state is never mutated.
func ApplyTraitUnlocks(state *game.State, unlocks []Unlock, toasts *ToastLog) *game.State {
	if len(unlocks) == 0 {
		return state
	}
	next := state.Clone()
	for _, u := range unlocks {
		def, ok := ByID(u.TraitID)
		if !ok {
			continue
		}
		if m := next.Band.Member(u.Member); m != nil && !m.HasTrait(u.TraitID) {
			m.Traits = append(m.Traits, def)
		}
		found := false
		for _, id := range next.Unlocks {
			if id == u.TraitID {
				found = true
				break
			}
		}
		if !found {
			next.Unlocks = append(next.Unlocks, u.TraitID)
		}
		if toasts != nil {
			toasts.Push(u.TraitID, u.Member, def.Name+" unlocked: "+u.Member)
		}
	}
	return next
}
