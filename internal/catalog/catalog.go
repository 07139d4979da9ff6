// Package catalog ships the built-in narrative event content.
package catalog

import (
	"log/slog"

	"github.com/neurotoxic-dev/tour-server/internal/events"
)

// Default builds the stock event catalog.
func Default(log *slog.Logger) (*events.Catalog, error) {
	return events.NewCatalog(map[string][]*events.Event{
		"transport": transportEvents(),
		"band":      bandEvents(),
		"gig":       gigEvents(),
		"financial": financialEvents(),
		"special":   specialEvents(),
	}, log)
}

func transportEvents() []*events.Event {
	return []*events.Event{
		{
			ID:          "van_breakdown_flat",
			Title:       "Flat Tire",
			Description: "A loud bang on the Autobahn. The rear left tire is shredded.",
			Trigger:     "travel",
			Chance:      0.15,
			Tags:        []string{"van_breakdown"},
			Options: []events.Choice{
				{
					Label:       "Call roadside assistance",
					OutcomeText: "An hour and a steep invoice later you are rolling again.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectResource, Resource: "money", Value: -80},
							{Type: events.EffectStat, Stat: "time", Value: -1.5},
						},
					},
				},
				{
					Label: "Fix it yourselves",
					SkillCheck: &events.SkillCheck{
						Stat:      "technical",
						Threshold: 10,
						Success: &events.Effect{
							Type:        events.EffectStat,
							Stat:        "time",
							Value:       -0.5,
							Description: "Greasy hands, saved wallet. Back on the road.",
						},
						Failure: &events.Effect{
							Type:        events.EffectComposite,
							Description: "The jack slips and the rim takes a hit. Expensive lesson.",
							Effects: []events.Effect{
								{Type: events.EffectResource, Resource: "money", Value: -120},
								{Type: events.EffectStat, Stat: "van_condition", Value: -10},
								{Type: events.EffectStat, Stat: "time", Value: -2},
							},
						},
					},
				},
			},
		},
		{
			ID:          "van_sputtering_engine",
			Title:       "Sputtering Engine",
			Description: "The van coughs like a smoker on a cold morning. Something is off.",
			Trigger:     "travel",
			Chance:      0.1,
			Condition:   "vanCondition < 60",
			Options: []events.Choice{
				{
					Label:       "Pull over and check",
					OutcomeText: "A loose hose clamp. Could have been worse.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "time", Value: -1},
							{Type: events.EffectStat, Stat: "van_condition", Value: 5},
						},
					},
				},
				{
					Label:       "Keep driving, it'll hold",
					OutcomeText: "It holds. Barely. The noise gets worse.",
					Effect:      &events.Effect{Type: events.EffectStat, Stat: "van_condition", Value: -15},
				},
			},
		},
		{
			ID:          "hitchhiker_roadie",
			Title:       "The Hitchhiker",
			Description: "A guy with a backpack full of cables thumbs a ride outside {venue}.",
			Trigger:     "travel",
			Chance:      0.08,
			Options: []events.Choice{
				{
					Label:       "Pick him up",
					OutcomeText: "Turns out he roadied for half the scene. Good stories, free knowledge.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "mood", Value: 5},
							{Type: events.EffectFlag, Flag: "met_roadie"},
						},
					},
				},
				{
					Label:       "Drive past",
					OutcomeText: "No room anyway. The van smells bad enough as it is.",
				},
			},
		},
	}
}

func bandEvents() []*events.Event {
	return []*events.Event{
		{
			ID:          "toxic_infighting",
			Title:       "Bad Blood",
			Description: "{member1} and {member2} have not spoken a word since soundcheck. The air in the van could be cut with a knife.",
			Chance:      0.3,
			Condition:   "relationshipPairBelow(20)",
			Tags:        []string{"conflict"},
			Options: []events.Choice{
				{
					Label: "Sit them down and talk it out",
					SkillCheck: &events.SkillCheck{
						Stat:      "charisma",
						Threshold: 9,
						Success: &events.Effect{
							Type:        events.EffectComposite,
							Description: "Two hours and many beers later they hug it out.",
							Effects: []events.Effect{
								{Type: events.EffectRelationship, Member1: "{member1}", Member2: "{member2}", Value: 15},
								{Type: events.EffectStat, Stat: "harmony", Value: 10},
							},
						},
						Failure: &events.Effect{
							Type:        events.EffectComposite,
							Description: "The talk derails into a shouting match about the setlist.",
							Effects: []events.Effect{
								{Type: events.EffectRelationship, Member1: "{member1}", Member2: "{member2}", Value: -10},
								{Type: events.EffectStat, Stat: "harmony", Value: -10},
							},
						},
					},
				},
				{
					Label:       "Let them sort it out",
					OutcomeText: "They don't. The silence spreads to the rest of the band.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "harmony", Value: -5},
							{Type: events.EffectStat, Stat: "mood", Value: -5},
						},
					},
				},
			},
		},
		{
			ID:          "songwriting_spark",
			Title:       "The Riff",
			Description: "{member1} plays a riff at rehearsal and {member2} instantly locks in. Something is happening here.",
			Chance:      0.2,
			Condition:   "relationshipPairAbove(80)",
			Options: []events.Choice{
				{
					Label:       "Cancel plans, jam it out",
					OutcomeText: "Four hours later there's a new song. A good one.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "harmony", Value: 5},
							{Type: events.EffectStat, Stat: "mood", Value: 10},
							{Type: events.EffectStat, Stat: "time", Value: -4},
						},
					},
				},
				{
					Label:       "Record a voice memo for later",
					OutcomeText: "The memo is mostly van noise. The riff survives, barely.",
					Effect:      &events.Effect{Type: events.EffectStat, Stat: "mood", Value: 3},
				},
			},
		},
		{
			ID:          "exhaustion_breaking_point",
			Title:       "Running on Fumes",
			Description: "Someone falls asleep mid-sentence at the merch table. The tour is grinding everyone down.",
			Chance:      0.25,
			Condition:   "anyMoodBelow(30)",
			Options: []events.Choice{
				{
					Label:       "Take a day off",
					OutcomeText: "A day of sleep, laundry and actual vegetables. Humanity restored.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "mood", Value: 15},
							{Type: events.EffectStat, Stat: "stamina", Value: 20},
							{Type: events.EffectStat, Stat: "time", Value: -12},
						},
					},
				},
				{
					Label:       "Push through",
					OutcomeText: "The show must go on. The smiles get thinner.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "stamina", Value: -10},
							{Type: events.EffectStat, Stat: "harmony", Value: -5},
						},
					},
				},
			},
		},
	}
}

func gigEvents() []*events.Event {
	return []*events.Event{
		{
			ID:          "gig_mid_stage_diver",
			Title:       "Stage Diver",
			Description: "The pit at {venue} is boiling and the front row is looking at you expectantly.",
			Trigger:     "gig_mid",
			Chance:      0.2,
			Tags:        []string{"stage_dive"},
			Options: []events.Choice{
				{
					Label: "Dive into the crowd",
					Flags: []string{"stageDive"},
					SkillCheck: &events.SkillCheck{
						Stat:      "charisma",
						Threshold: 9,
						Success: &events.Effect{
							Type:        events.EffectComposite,
							Description: "The crowd carries you like a crowd-surfing god.",
							Effects: []events.Effect{
								{Type: events.EffectStat, Stat: "fame", Value: 3},
								{Type: events.EffectStat, Stat: "viral", Value: 2},
							},
						},
						Failure: &events.Effect{
							Type:        events.EffectComposite,
							Description: "The crowd parts. The floor does not.",
							Effects: []events.Effect{
								{Type: events.EffectStat, Stat: "stamina", Value: -10},
								{Type: events.EffectStat, Stat: "mood", Value: -5},
							},
						},
					},
				},
				{
					Label:       "Keep playing",
					OutcomeText: "Professional. Slightly boring, but professional.",
				},
			},
		},
		{
			ID:          "gig_mid_tempo_wobble",
			Title:       "Tempo Wobble",
			Description: "The click is gone, the drums are rushing and the whole song threatens to come apart.",
			Trigger:     "gig_mid",
			Chance:      0.15,
			Options: []events.Choice{
				{
					Label: "Lock eyes and pull it back",
					SkillCheck: &events.SkillCheck{
						Stat:      "skill",
						Threshold: 10,
						Success: &events.Effect{
							Type:        events.EffectStat,
							Stat:        "crowd_energy",
							Value:       2,
							Description: "A tight recovery. Half the crowd never noticed.",
						},
						Failure: &events.Effect{
							Type:        events.EffectStat,
							Stat:        "crowd_energy",
							Value:       -2,
							Description: "The song collapses into a trainwreck ending.",
						},
					},
				},
				{
					Label:       "Abort into a noise outro",
					OutcomeText: "You call it artistic intent. The crowd buys it. Mostly.",
					Effect:      &events.Effect{Type: events.EffectStat, Stat: "mood", Value: -3},
				},
			},
		},
		{
			ID:          "gig_after_label_scout",
			Title:       "The Scout",
			Description: "A guy in a clean band shirt hands you a card after the set. He books for a mid-size label showcase.",
			Trigger:     "gig_after",
			Chance:      0.05,
			Condition:   "fame >= 20",
			Options: []events.Choice{
				{
					Label:       "Take the card",
					OutcomeText: "Could be nothing. Could be everything.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectFlag, Flag: "label_interest"},
							{Type: events.EffectChain, EventID: "label_showcase_offer"},
						},
					},
				},
				{
					Label:       "We stay DIY",
					OutcomeText: "Respect in the scene is worth more than a contract. Probably.",
					Effect:      &events.Effect{Type: events.EffectStat, Stat: "loyalty", Value: 5},
				},
			},
		},
	}
}

func financialEvents() []*events.Event {
	return []*events.Event{
		{
			ID:          "merch_bulk_buyer",
			Title:       "Bulk Buyer",
			Description: "A record store owner at {venue} wants every patch you have, at a discount.",
			Chance:      0.1,
			Condition:   "hasItem(\"patches\")",
			Options: []events.Choice{
				{
					Label:       "Sell the lot",
					OutcomeText: "Cash now beats patches later.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectResource, Resource: "money", Value: 150},
							{Type: events.EffectItem, Item: "patches", Value: -100},
						},
					},
				},
				{
					Label:       "Full price or nothing",
					OutcomeText: "He shrugs and buys two. Principles have a price.",
					Effect:      &events.Effect{Type: events.EffectResource, Resource: "money", Value: 6},
				},
			},
		},
		{
			ID:          "parking_fine",
			Title:       "Parking Fine",
			Description: "The loading zone was apparently not a parking zone. The city disagrees, in writing.",
			Chance:      0.12,
			Options: []events.Choice{
				{
					Label:       "Pay it",
					OutcomeText: "Forty euros for rock and roll.",
					Effect:      &events.Effect{Type: events.EffectResource, Resource: "money", Value: -40},
				},
				{
					Label:       "Ignore it",
					OutcomeText: "Future you can deal with it.",
					Effect:      &events.Effect{Type: events.EffectFlag, Flag: "unpaid_fine"},
				},
			},
		},
		{
			ID:          "debt_collector",
			Title:       "Registered Mail",
			Description: "The ignored fine has grown teeth. And late fees. And a collection agency.",
			Chance:      0.15,
			RequiredFlag: "unpaid_fine",
			Options: []events.Choice{
				{
					Label:       "Pay up",
					OutcomeText: "The forty euro fine is now a hundred and twenty. Lesson learned.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectResource, Resource: "money", Value: -120},
							{Type: events.EffectCooldown, EventID: "debt_collector"},
						},
					},
				},
			},
		},
	}
}

func specialEvents() []*events.Event {
	return []*events.Event{
		{
			ID:          "label_showcase_offer",
			Title:       "Showcase Offer",
			Description: "The scout calls. One slot, one night, industry crowd. No pressure.",
			Chance:      1,
			Options: []events.Choice{
				{
					Label:       "Take the slot",
					OutcomeText: "Everything rides on one set now.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "fame", Value: 5},
							{Type: events.EffectFlag, Flag: "showcase_booked"},
						},
					},
				},
				{
					Label:       "Turn it down",
					OutcomeText: "The scout doesn't call twice.",
					Effect:      &events.Effect{Type: events.EffectCooldown, EventID: "label_showcase_offer"},
				},
			},
		},
		{
			ID:          "viral_clip",
			Title:       "The Clip",
			Description: "Someone filmed last night's encore. It is everywhere this morning.",
			Chance:      0.05,
			Condition:   "social[\"viral\"] > 5",
			Options: []events.Choice{
				{
					Label:       "Repost it everywhere",
					OutcomeText: "The numbers climb all day.",
					Effect: &events.Effect{
						Type: events.EffectComposite,
						Effects: []events.Effect{
							{Type: events.EffectStat, Stat: "fame", Value: 4},
							{Type: events.EffectSocialSet, Stat: "viral", Value: 0},
						},
					},
				},
				{
					Label:       "Let it ride organically",
					OutcomeText: "It peaks and fades. A good day either way.",
					Effect:      &events.Effect{Type: events.EffectStat, Stat: "fame", Value: 2},
				},
			},
		},
	}
}
