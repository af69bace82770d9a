package config

import (
	"fmt"
	"strings"
)

// NormalizeResult carries non-fatal findings from normalization.
type NormalizeResult struct {
	Warnings []string
}

// Normalize trims and cleans pattern lists in place. Pattern order is
// preserved: it participates in matcher identity and display. Empty entries
// are dropped with a warning.
func Normalize(cfg *Config) (*NormalizeResult, error) {
	res := &NormalizeResult{}
	for i := range cfg.Phases {
		p := &cfg.Phases[i]
		p.Include = cleanPatterns(p.Include, fmt.Sprintf("phase %d include", i), res)
		p.Exclude = cleanPatterns(p.Exclude, fmt.Sprintf("phase %d exclude", i), res)
		p.Builder = strings.TrimSpace(p.Builder)
		p.Package = strings.TrimSpace(p.Package)
	}
	cfg.Workspace.Root = strings.TrimSpace(cfg.Workspace.Root)
	cfg.Workspace.RootPackage = strings.TrimSpace(cfg.Workspace.RootPackage)
	return res, nil
}

func cleanPatterns(patterns []string, where string, res *NormalizeResult) []string {
	out := patterns[:0]
	for _, pat := range patterns {
		trimmed := strings.TrimSpace(pat)
		if trimmed == "" {
			res.Warnings = append(res.Warnings, where+": dropped empty pattern")
			continue
		}
		if trimmed != pat {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: trimmed whitespace from %q", where, pat))
		}
		out = append(out, trimmed)
	}
	return out
}
