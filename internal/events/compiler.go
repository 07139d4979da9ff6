package events

import (
	"log/slog"
	"strings"

	"github.com/neurotoxic-dev/tour-server/internal/game"
)

// Compiler lowers resolved outcomes into state deltas. Compilation never
// touches the state; it only describes what the mutator should do.
type Compiler struct {
	log *slog.Logger
}

// NewCompiler returns an effect compiler.
func NewCompiler(log *slog.Logger) *Compiler {
	if log == nil {
		log = slog.Default()
	}
	return &Compiler{log: log}
}

// Compile lowers an outcome's effect tree into a single delta. The event
// supplies the context for placeholder resolution and the default
// cooldown target. Chained follow-ups on the outcome are queued as
// pending events.
func (c *Compiler) Compile(out *Outcome, ev *Event) *game.Delta {
	delta := game.NewDelta()
	if out == nil {
		return delta
	}
	var ctx map[string]string
	eventID := ""
	if ev != nil {
		ctx = ev.Context
		eventID = ev.ID
	}
	c.compileEffect(delta, &out.Effect, ctx, eventID)
	if out.NextEventID != "" {
		delta.Flags.QueueEvents = append(delta.Flags.QueueEvents, out.NextEventID)
	}
	return delta
}

func (c *Compiler) compileEffect(d *game.Delta, eff *Effect, ctx map[string]string, eventID string) {
	switch eff.Type {
	case "":
		// Outcome with no effect, nothing to lower.

	case EffectComposite:
		for i := range eff.Effects {
			c.compileEffect(d, &eff.Effects[i], ctx, eventID)
		}

	case EffectResource:
		switch eff.Resource {
		case "money":
			d.Player.Money += int(eff.Value)
		case "fuel":
			vanDelta(d).Fuel += eff.Value
		default:
			c.log.Debug("unknown resource skipped", "resource", eff.Resource)
		}

	case EffectStat:
		c.compileStat(d, eff.Stat, eff.Value)

	case EffectStatIncrement:
		if d.Player.Stats == nil {
			d.Player.Stats = make(map[string]int)
		}
		d.Player.Stats[eff.Stat] += int(eff.Value)

	case EffectItem:
		if d.Band.Inventory == nil {
			d.Band.Inventory = make(map[string]interface{})
		}
		switch {
		case eff.ItemGrant != nil:
			d.Band.Inventory[eff.Item] = *eff.ItemGrant
		case eff.Value != 0:
			// Repeated numeric effects for one item add up instead of
			// clobbering each other.
			current := 0.0
			if cv, ok := d.Band.Inventory[eff.Item].(float64); ok {
				current = cv
			}
			d.Band.Inventory[eff.Item] = current + eff.Value
		default:
			d.Band.Inventory[eff.Item] = true
		}

	case EffectRelationship:
		m1 := resolvePlaceholder(eff.Member1, ctx)
		m2 := resolvePlaceholder(eff.Member2, ctx)
		if m1 == "" || m2 == "" {
			c.log.Debug("relationship effect with unresolved members skipped",
				"member1", eff.Member1, "member2", eff.Member2)
			return
		}
		d.Band.RelationshipChange = append(d.Band.RelationshipChange, game.RelationshipChange{
			Member1: m1,
			Member2: m2,
			Change:  eff.Value,
		})

	case EffectFlag:
		d.Flags.AddStoryFlags = append(d.Flags.AddStoryFlags, eff.Flag)

	case EffectCooldown:
		target := eff.EventID
		if target == "" {
			target = eventID
		}
		d.Flags.AddCooldowns = append(d.Flags.AddCooldowns, target)

	case EffectChain:
		d.Flags.QueueEvents = append(d.Flags.QueueEvents, eff.EventID)

	case EffectUnlock:
		d.Flags.Unlocks = append(d.Flags.Unlocks, eff.Unlock)

	case EffectGameOver:
		d.Flags.GameOver = true

	case EffectSocialSet:
		d.SocialSet[eff.Stat] = eff.Value

	default:
		c.log.Debug("unknown effect kind skipped", "type", string(eff.Type))
	}
}

func (c *Compiler) compileStat(d *game.Delta, stat string, value float64) {
	switch stat {
	case "time":
		d.Player.Time += value
	case "fame", "hype", "crowd_energy":
		d.Player.Fame += int(value)
	case "harmony":
		d.Band.Harmony += value
	case "mood":
		broadcast(d).MoodChange += value
	case "stamina":
		broadcast(d).StaminaChange += value
	case "van_condition":
		vanDelta(d).Condition += value
	case "viral", "controversyLevel", "loyalty":
		d.Social[stat] += value
	case "score":
		d.Score += int(value)
	case "luck":
		d.Band.Luck += value
	case "skill":
		d.Band.Skill += value
	default:
		c.log.Debug("unknown stat skipped", "stat", stat)
	}
}

func vanDelta(d *game.Delta) *game.VanDelta {
	if d.Player.Van == nil {
		d.Player.Van = &game.VanDelta{}
	}
	return d.Player.Van
}

func broadcast(d *game.Delta) *game.MemberDelta {
	if d.Band.MembersBroadcast == nil {
		d.Band.MembersBroadcast = &game.MemberDelta{}
	}
	return d.Band.MembersBroadcast
}

// resolvePlaceholder maps "{member1}" style references through the event
// context; literal names pass through unchanged.
func resolvePlaceholder(name string, ctx map[string]string) string {
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
		return ctx[strings.Trim(name, "{}")]
	}
	return name
}
