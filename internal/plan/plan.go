// Package plan assembles build actions from configuration and compares
// plans across incremental runs by action identity.
package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"git.home.luguber.info/inful/actiongraph/internal/action"
	"git.home.luguber.info/inful/actiongraph/internal/asset"
	"git.home.luguber.info/inful/actiongraph/internal/builder"
	"git.home.luguber.info/inful/actiongraph/internal/config"
	"git.home.luguber.info/inful/actiongraph/internal/logfields"
)

// Plan is an immutable set of deduplicated build actions in phase order,
// together with a deterministic signature over their fingerprints.
type Plan struct {
	Actions   []*action.BuildAction
	Signature string
	CreatedAt time.Time
}

// Assemble turns the configured phases into build actions. Duplicate
// actions (same fingerprint) are dropped with a warning; the first
// occurrence wins so phase order stays stable.
func Assemble(cfg *config.Config) (*Plan, error) {
	seen := make(map[action.Fingerprint]struct{}, len(cfg.Phases))
	actions := make([]*action.BuildAction, 0, len(cfg.Phases))

	for i, phase := range cfg.Phases {
		a, err := buildAction(phase)
		if err != nil {
			return nil, fmt.Errorf("phase %d (%s on %s): %w", i, phase.Builder, phase.Package, err)
		}
		fp := a.Fingerprint()
		if _, dup := seen[fp]; dup {
			slog.Warn("Dropping duplicate build action",
				logfields.Builder(a.BuilderTypeName()),
				logfields.Package(a.Package()))
			continue
		}
		seen[fp] = struct{}{}
		actions = append(actions, a)
	}

	return &Plan{
		Actions:   actions,
		Signature: computeSignature(actions),
		CreatedAt: time.Now(),
	}, nil
}

func buildAction(phase config.PhaseConfig) (*action.BuildAction, error) {
	factory, err := builder.Lookup(phase.Builder)
	if err != nil {
		return nil, err
	}
	b, err := factory(phase.Options)
	if err != nil {
		return nil, fmt.Errorf("construct builder: %w", err)
	}
	opts, err := action.OptionsFromYAML(phase.Options)
	if err != nil {
		return nil, err
	}

	actionOpts := []action.Option{
		action.WithInclude(phase.Include...),
		action.WithExclude(phase.Exclude...),
		action.WithOptions(opts),
	}
	if phase.Optional {
		actionOpts = append(actionOpts, action.WithOptional())
	}
	if phase.HideOutput {
		actionOpts = append(actionOpts, action.WithHiddenOutput())
	}
	return action.New(b, phase.Package, actionOpts...)
}

// computeSignature hashes the sorted action fingerprints so that two plans
// with the same action set always share a signature, regardless of phase
// declaration order.
func computeSignature(actions []*action.BuildAction) string {
	fps := make([]string, len(actions))
	for i, a := range actions {
		fps[i] = string(a.Fingerprint())
	}
	sort.Strings(fps)

	h := sha256.New()
	for _, fp := range fps {
		h.Write([]byte(fp))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprints returns the fingerprint of each action, keyed to its
// diagnostic description.
func (p *Plan) Fingerprints() map[action.Fingerprint]string {
	out := make(map[action.Fingerprint]string, len(p.Actions))
	for _, a := range p.Actions {
		out[a.Fingerprint()] = a.String()
	}
	return out
}

// ActionsFor returns the actions that claim the given asset id as a
// primary input, in phase order.
func (p *Plan) ActionsFor(id asset.ID) []*action.BuildAction {
	var out []*action.BuildAction
	for _, a := range p.Actions {
		if a.Matches(id) {
			out = append(out, a)
		}
	}
	return out
}
