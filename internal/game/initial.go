package game

import "time"

// Default starting values for a fresh tour. Stats mirror the character
// sheets: static 1-10 attributes live in BaseStats, dynamic 0-100 values
// (mood, stamina) on the member itself.
func defaultMembers() []BandMember {
	return []BandMember{
		{
			Name:    "Matze",
			Role:    "Guitar",
			Mood:    80,
			Stamina: 100,
			BaseStats: map[string]float64{
				"skill": 8, "stamina": 7, "charisma": 5, "technical": 9, "improv": 6,
			},
			Traits:        []Trait{},
			Relationships: map[string]float64{"Lars": 50, "Marius": 50},
		},
		{
			Name:    "Lars",
			Role:    "Drums",
			Mood:    80,
			Stamina: 100,
			BaseStats: map[string]float64{
				"skill": 9, "stamina": 8, "charisma": 7, "technical": 7, "improv": 9,
			},
			Traits:        []Trait{},
			Relationships: map[string]float64{"Matze": 50, "Marius": 50},
		},
		{
			Name:    "Marius",
			Role:    "Bass/Vocals",
			Mood:    80,
			Stamina: 100,
			BaseStats: map[string]float64{
				"skill": 7, "stamina": 6, "charisma": 8, "technical": 7, "composition": 7,
			},
			Traits:        []Trait{},
			Relationships: map[string]float64{"Matze": 50, "Lars": 50},
		},
	}
}

// NewState creates the initial state for a new tour session.
func NewState() *State {
	now := time.Now()
	return &State{
		Player: Player{
			Money:    500,
			Fame:     0,
			Day:      1,
			Time:     12,
			Location: "Stendal",
			Van: Van{
				Fuel:      100,
				Condition: 100,
				Upgrades:  []string{},
			},
			Stats:      map[string]int{},
			HQUpgrades: []string{},
		},
		Band: Band{
			Members: defaultMembers(),
			Harmony: 80,
			Luck:    0,
			Inventory: map[string]interface{}{
				"shirts":     float64(50),
				"hoodies":    float64(20),
				"patches":    float64(100),
				"cds":        float64(30),
				"vinyl":      float64(10),
				"strings":    true,
				"cables":     true,
				"drum_parts": true,
			},
		},
		Social: map[string]float64{
			"instagram": 228,
			"tiktok":    64,
			"youtube":   14,
			"viral":     0,
		},
		ActiveStoryFlags: []string{},
		PendingEvents:    []string{},
		EventCooldowns:   []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
