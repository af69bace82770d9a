package plan

import (
	"testing"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
	"git.home.luguber.info/inful/actiongraph/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Workspace: config.WorkspaceConfig{Root: ".", RootPackage: "app"},
		Phases: []config.PhaseConfig{
			{
				Builder: "generate",
				Package: "app",
				Include: []string{"lib/**.dart"},
				Exclude: []string{"lib/**.g.dart"},
				Options: map[string]any{"from": ".dart", "to": ".g.dart"},
			},
			{
				Builder:    "copy",
				Package:    "app",
				Include:    []string{"web/**"},
				HideOutput: true,
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	p, err := Assemble(testConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(p.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(p.Actions))
	}
	if p.Signature == "" {
		t.Fatal("expected non-empty signature")
	}
	if !p.Actions[1].HidesOutput() {
		t.Fatal("expected second action to hide output")
	}
}

func TestAssembleUnknownBuilder(t *testing.T) {
	cfg := testConfig()
	cfg.Phases[0].Builder = "nope"
	if _, err := Assemble(cfg); err == nil {
		t.Fatal("expected error for unknown builder")
	}
}

func TestAssembleBadPattern(t *testing.T) {
	cfg := testConfig()
	cfg.Phases[0].Include = []string{"[unclosed"}
	if _, err := Assemble(cfg); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestAssembleDeduplicates(t *testing.T) {
	cfg := testConfig()
	cfg.Phases = append(cfg.Phases, cfg.Phases[0]) // exact duplicate phase
	p, err := Assemble(cfg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(p.Actions) != 2 {
		t.Fatalf("duplicate phase should be dropped, got %d actions", len(p.Actions))
	}
}

func TestSignatureIgnoresPhaseOrder(t *testing.T) {
	p1, err := Assemble(testConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	cfg := testConfig()
	cfg.Phases[0], cfg.Phases[1] = cfg.Phases[1], cfg.Phases[0]
	p2, err := Assemble(cfg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if p1.Signature != p2.Signature {
		t.Fatal("signature must not depend on phase declaration order")
	}
}

func TestSignatureSensitiveToContent(t *testing.T) {
	p1, _ := Assemble(testConfig())
	cfg := testConfig()
	cfg.Phases[0].Optional = true
	p2, err := Assemble(cfg)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if p1.Signature == p2.Signature {
		t.Fatal("signature must change when an action's flags change")
	}
}

func TestActionsFor(t *testing.T) {
	p, err := Assemble(testConfig())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	claimed := p.ActionsFor(asset.New("app", "lib/a.dart"))
	if len(claimed) != 1 {
		t.Fatalf("expected exactly the generate action, got %d", len(claimed))
	}
	if got := p.ActionsFor(asset.New("app", "lib/a.g.dart")); len(got) != 0 {
		t.Fatalf("generated file should be excluded, got %d actions", len(got))
	}
	if got := p.ActionsFor(asset.New("other", "lib/a.dart")); len(got) != 0 {
		t.Fatalf("foreign package should never match, got %d actions", len(got))
	}
}
