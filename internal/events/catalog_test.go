package events

import "testing"

func TestCatalogDropsInvalidEvents(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{
		"band": {
			simpleEvent("keeper"),
			{Title: "No ID"},
			simpleEvent("keeper"), // duplicate
		},
	})

	if c.Len() != 1 {
		t.Errorf("expected 1 surviving event, got %d", c.Len())
	}
	if _, ok := c.ByID("keeper"); !ok {
		t.Error("expected keeper to survive")
	}
}

func TestCatalogRejectsBadCondition(t *testing.T) {
	ev := simpleEvent("broken")
	ev.Condition = "money >"
	if _, err := NewCatalog(map[string][]*Event{"band": {ev}}, testLogger()); err == nil {
		t.Error("expected compile error for malformed condition")
	}
}

func TestCatalogAssignsCategory(t *testing.T) {
	c := testCatalog(t, map[string][]*Event{"gig": {simpleEvent("tagged")}})
	ev, _ := c.ByID("tagged")
	if ev.Category != "gig" {
		t.Errorf("expected category backfilled, got %q", ev.Category)
	}
}
