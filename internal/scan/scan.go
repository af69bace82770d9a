// Package scan enumerates asset identifiers from the workspace on disk and
// evaluates which build actions claim them as primary inputs.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/actiongraph/internal/action"
	"git.home.luguber.info/inful/actiongraph/internal/asset"
	"git.home.luguber.info/inful/actiongraph/internal/config"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
)

// Assets walks every configured package directory and returns the asset
// identifiers found, sorted by package then path. Hidden files and
// directories (dot-prefixed) are skipped.
func Assets(ws config.WorkspaceConfig) ([]asset.ID, error) {
	packages := ws.Packages
	if len(packages) == 0 {
		packages = map[string]string{ws.RootPackage: "."}
	}

	var ids []asset.ID
	for pkg, dir := range packages {
		root := filepath.Join(ws.Root, dir)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if strings.HasPrefix(name, ".") && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			ids = append(ids, asset.New(pkg, filepath.ToSlash(rel)))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan package %s: %w", pkg, err)
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Package != ids[j].Package {
			return ids[i].Package < ids[j].Package
		}
		return ids[i].Path < ids[j].Path
	})
	return ids, nil
}

// Claim pairs an asset with the actions that claim it as a primary input.
type Claim struct {
	Asset   asset.ID
	Actions []*action.BuildAction
}

// Claims evaluates every asset against every action in the plan. Assets no
// action claims are omitted.
func Claims(p *plan.Plan, assets []asset.ID) []Claim {
	var out []Claim
	for _, id := range assets {
		if actions := p.ActionsFor(id); len(actions) > 0 {
			out = append(out, Claim{Asset: id, Actions: actions})
		}
	}
	return out
}
