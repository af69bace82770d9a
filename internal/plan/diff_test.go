package plan

import (
	"testing"

	"git.home.luguber.info/inful/actiongraph/internal/config"
)

func TestDiffIdenticalPlans(t *testing.T) {
	p1, err := Assemble(testConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	p2, err := Assemble(testConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	d := DiffPlans(p1, p2)
	if d.Changed() {
		t.Fatalf("identical plans should not differ: %+v", d)
	}
	if d.Unchanged != 2 {
		t.Fatalf("expected 2 unchanged actions, got %d", d.Unchanged)
	}
}

func TestDiffDetectsChanges(t *testing.T) {
	p1, _ := Assemble(testConfig())

	cfg := testConfig()
	cfg.Phases[1].Include = []string{"assets/**"} // changed matcher
	cfg.Phases = append(cfg.Phases, config.PhaseConfig{
		Builder: "copy",
		Package: "app",
		Include: []string{"docs/**"},
	})
	p2, err := Assemble(cfg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	d := DiffPlans(p2, p1)
	if !d.Changed() {
		t.Fatal("expected diff to report changes")
	}
	// The generate action is untouched; the copy action was modified
	// (one removed, one added) and a new copy action was appended.
	if d.Unchanged != 1 {
		t.Errorf("expected 1 unchanged action, got %d", d.Unchanged)
	}
	if len(d.Added) != 2 {
		t.Errorf("expected 2 added actions, got %d", len(d.Added))
	}
	if len(d.Removed) != 1 {
		t.Errorf("expected 1 removed action, got %d", len(d.Removed))
	}
}

func TestDiffAgainstEmptyPrevious(t *testing.T) {
	p, _ := Assemble(testConfig())
	d := DiffFingerprints(p, nil)
	if len(d.Added) != 2 || d.Unchanged != 0 || len(d.Removed) != 0 {
		t.Fatalf("unexpected diff against empty previous: %+v", d)
	}
}
