package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/actiongraph/internal/asset"
	"git.home.luguber.info/inful/actiongraph/internal/config"
	"git.home.luguber.info/inful/actiongraph/internal/plan"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestAssetsWalk(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"lib/a.dart",
		"lib/src/b.dart",
		"web/index.html",
		".git/config",
		".hidden",
	)

	ids, err := Assets(config.WorkspaceConfig{Root: root, RootPackage: "app"})
	require.NoError(t, err)

	want := []asset.ID{
		asset.New("app", "lib/a.dart"),
		asset.New("app", "lib/src/b.dart"),
		asset.New("app", "web/index.html"),
	}
	assert.Equal(t, want, ids)
}

func TestAssetsMultiplePackages(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "app/lib/a.dart", "pkgs/shared/lib/s.dart")

	ids, err := Assets(config.WorkspaceConfig{
		Root:        root,
		RootPackage: "app",
		Packages:    map[string]string{"app": "app", "shared": "pkgs/shared"},
	})
	require.NoError(t, err)

	want := []asset.ID{
		asset.New("app", "lib/a.dart"),
		asset.New("shared", "lib/s.dart"),
	}
	assert.Equal(t, want, ids)
}

func TestClaims(t *testing.T) {
	cfg := &config.Config{
		Workspace: config.WorkspaceConfig{RootPackage: "app"},
		Phases: []config.PhaseConfig{{
			Builder: "copy",
			Package: "app",
			Include: []string{"lib/**"},
			Exclude: []string{"**/*.g.dart"},
		}},
	}
	p, err := plan.Assemble(cfg)
	require.NoError(t, err)

	assets := []asset.ID{
		asset.New("app", "lib/a.dart"),
		asset.New("app", "lib/a.g.dart"),
		asset.New("app", "web/index.html"),
		asset.New("shared", "lib/a.dart"),
	}
	claims := Claims(p, assets)
	require.Len(t, claims, 1)
	assert.Equal(t, asset.New("app", "lib/a.dart"), claims[0].Asset)
	assert.Len(t, claims[0].Actions, 1)
}
