package plan

import (
	"sort"

	"git.home.luguber.info/inful/actiongraph/internal/action"
)

// Change identifies one action that appeared in or disappeared from a plan.
type Change struct {
	Fingerprint action.Fingerprint
	Description string
}

// Diff is the result of comparing a current plan against a previous one by
// action identity.
type Diff struct {
	Added     []Change
	Removed   []Change
	Unchanged int
}

// Changed reports whether the two plans differ at all.
func (d *Diff) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// DiffFingerprints compares the current plan against a previous action set
// given as fingerprint → description. Added and Removed are sorted by
// description for stable output.
func DiffFingerprints(current *Plan, previous map[action.Fingerprint]string) *Diff {
	d := &Diff{}
	currentFPs := make(map[action.Fingerprint]struct{}, len(current.Actions))

	for _, a := range current.Actions {
		fp := a.Fingerprint()
		currentFPs[fp] = struct{}{}
		if _, ok := previous[fp]; ok {
			d.Unchanged++
		} else {
			d.Added = append(d.Added, Change{Fingerprint: fp, Description: a.String()})
		}
	}
	for fp, desc := range previous {
		if _, ok := currentFPs[fp]; !ok {
			d.Removed = append(d.Removed, Change{Fingerprint: fp, Description: desc})
		}
	}

	sort.Slice(d.Added, func(i, j int) bool { return d.Added[i].Description < d.Added[j].Description })
	sort.Slice(d.Removed, func(i, j int) bool { return d.Removed[i].Description < d.Removed[j].Description })
	return d
}

// DiffPlans compares two assembled plans.
func DiffPlans(current, previous *Plan) *Diff {
	return DiffFingerprints(current, previous.Fingerprints())
}
