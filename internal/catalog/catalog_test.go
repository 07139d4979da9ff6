package catalog

import (
	"io"
	"log/slog"
	"testing"
)

func TestDefaultCatalogLoads(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := Default(log)
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	if c.Len() < 10 {
		t.Errorf("expected a meaningful catalog, got %d events", c.Len())
	}

	for _, category := range []string{"transport", "band", "gig", "financial", "special"} {
		pool := c.Pool(category)
		if len(pool) == 0 {
			t.Errorf("category %s is empty", category)
		}
		for _, ev := range pool {
			if len(ev.Options) == 0 {
				t.Errorf("event %s has no options", ev.ID)
			}
			for _, opt := range ev.Options {
				if opt.Effect != nil && opt.SkillCheck != nil {
					t.Errorf("event %s option %q mixes direct effect and skill check", ev.ID, opt.Label)
				}
			}
		}
	}
}

func TestStageDiverWiring(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := Default(log)
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	ev, ok := c.ByID("gig_mid_stage_diver")
	if !ok {
		t.Fatal("expected gig_mid_stage_diver in catalog")
	}
	if !ev.HasTag("stage_dive") {
		t.Error("expected stage_dive tag")
	}
	if !ev.Options[0].HasFlag("stageDive") {
		t.Error("expected dive option flagged stageDive")
	}
}

func TestChainTargetsExist(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := Default(log)
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	// The scout card chains into the showcase offer.
	if _, ok := c.ByID("label_showcase_offer"); !ok {
		t.Error("expected chain target label_showcase_offer in catalog")
	}
}
