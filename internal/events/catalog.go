package events

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
)

// ValidCategories are the event pools the selector draws from.
var ValidCategories = map[string]bool{
	"transport": true,
	"band":      true,
	"gig":       true,
	"financial": true,
	"special":   true,
}

// Catalog holds the loaded event pools keyed by category, with a flat
// index by event id for chain and pending-queue lookups.
type Catalog struct {
	pools map[string][]*Event
	byID  map[string]*Event
	log   *slog.Logger
}

// NewCatalog builds a catalog from raw event definitions. Events with
// missing or duplicate ids are dropped with an error log; events in an
// unknown category are kept but warned about. Condition sources are
// compiled once here so selection never pays compile cost.
func NewCatalog(defs map[string][]*Event, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = slog.Default()
	}
	c := &Catalog{
		pools: make(map[string][]*Event),
		byID:  make(map[string]*Event),
		log:   log,
	}
	for category, pool := range defs {
		if !ValidCategories[category] {
			log.Warn("unknown event category", "category", category)
		}
		for _, ev := range pool {
			if ev.ID == "" {
				log.Error("event without id dropped", "category", category, "title", ev.Title)
				continue
			}
			if _, dup := c.byID[ev.ID]; dup {
				log.Error("duplicate event id dropped", "id", ev.ID, "category", category)
				continue
			}
			if ev.Category == "" {
				ev.Category = category
			}
			if err := c.compileCondition(ev); err != nil {
				return nil, fmt.Errorf("compile condition for event %s: %w", ev.ID, err)
			}
			c.pools[category] = append(c.pools[category], ev)
			c.byID[ev.ID] = ev
		}
	}
	return c, nil
}

func (c *Catalog) compileCondition(ev *Event) error {
	if ev.Condition == "" {
		return nil
	}
	prog, err := expr.Compile(ev.Condition, expr.AllowUndefinedVariables())
	if err != nil {
		return err
	}
	ev.program = prog
	return nil
}

// Pool returns the events registered under a category.
func (c *Catalog) Pool(category string) []*Event {
	return c.pools[category]
}

// ByID looks up an event anywhere in the catalog.
func (c *Catalog) ByID(id string) (*Event, bool) {
	ev, ok := c.byID[id]
	return ev, ok
}

// Len reports the total number of registered events.
func (c *Catalog) Len() int {
	return len(c.byID)
}
