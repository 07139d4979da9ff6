// Package traits holds the unlockable trait catalog and the rules that
// award traits to band members from gameplay milestones.
package traits

import "github.com/neurotoxic-dev/tour-server/internal/game"

// Trait ids referenced by gameplay code.
const (
	Virtuoso      = "virtuoso"
	Perfektionist = "perfektionist"
	BlastMachine  = "blast_machine"
	MelodicGenius = "melodic_genius"
	TechWizard    = "tech_wizard"
	RoadWarrior   = "road_warrior"
	PartyAnimal   = "party_animal"
	GearNerd      = "gear_nerd"
	SocialManager = "social_manager"
	Bandleader    = "bandleader"
	Showman       = "showman"
	GrudgeHolder  = "grudge_holder"
	Peacemaker    = "peacemaker"
)

var catalog = map[string]game.Trait{
	Virtuoso: {
		ID:     Virtuoso,
		Name:   "Virtuoso",
		Desc:   "Played a flawless set without a single miss.",
		Effect: "perfect_gig_bonus",
	},
	Perfektionist: {
		ID:     Perfektionist,
		Name:   "Perfektionist",
		Desc:   "Hit every note at full accuracy.",
		Effect: "accuracy_bonus",
	},
	BlastMachine: {
		ID:     BlastMachine,
		Name:   "Blast Machine",
		Desc:   "Held a monster combo at blast-beat tempo.",
		Effect: "fast_song_bonus",
	},
	MelodicGenius: {
		ID:     MelodicGenius,
		Name:   "Melodic Genius",
		Desc:   "Carried a long combo through a slow burner.",
		Effect: "slow_song_bonus",
	},
	TechWizard: {
		ID:     TechWizard,
		Name:   "Tech Wizard",
		Desc:   "Nailed a technical set at full accuracy.",
		Effect: "technical_bonus",
	},
	RoadWarrior: {
		ID:     RoadWarrior,
		Name:   "Road Warrior",
		Desc:   "Clocked five thousand kilometers in the van.",
		Effect: "travel_bonus",
	},
	PartyAnimal: {
		ID:     PartyAnimal,
		Name:   "Party Animal",
		Desc:   "Installed a beer fridge in the rehearsal room.",
		Effect: "party_bonus",
	},
	GearNerd: {
		ID:     GearNerd,
		Name:   "Gear Nerd",
		Desc:   "Hoarded a serious pile of equipment.",
		Effect: "gear_bonus",
	},
	SocialManager: {
		ID:     SocialManager,
		Name:   "Social Manager",
		Desc:   "Grew a channel past a thousand followers.",
		Effect: "social_bonus",
	},
	Bandleader: {
		ID:     Bandleader,
		Name:   "Bandleader",
		Desc:   "Talked the band down from three blowups.",
		Effect: "conflict_rescue",
	},
	Showman: {
		ID:     Showman,
		Name:   "Showman",
		Desc:   "Dove into the crowd one time too many.",
		Effect: "crowd_bonus",
	},
	GrudgeHolder: {
		ID:     GrudgeHolder,
		Name:   "Grudge Holder",
		Desc:   "Does not forgive and does not forget.",
		Effect: "relationship_negative_amplifier",
	},
	Peacemaker: {
		ID:     Peacemaker,
		Name:   "Peacemaker",
		Desc:   "Keeps the peace when the van gets loud.",
		Effect: "relationship_dampener",
	},
}

// ByID returns the catalog definition for a trait id.
func ByID(id string) (game.Trait, bool) {
	t, ok := catalog[id]
	return t, ok
}
