package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/actiongraph/internal/snapshot"
)

func writeConfig(t *testing.T) (configPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "snapshots.db")
	configPath = filepath.Join(dir, "actiongraph.yaml")
	content := fmt.Sprintf(`
workspace:
  root: %s
  root_package: app
phases:
  - builder: generate
    include: ["lib/**.dart"]
    exclude: ["lib/**.g.dart"]
  - builder: copy
    include: ["web/**"]
snapshot:
  path: %s
`, dir, dbPath)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath, dbPath
}

func TestPlanCommandRecordsSnapshot(t *testing.T) {
	configPath, dbPath := writeConfig(t)
	root := &CLI{Config: configPath}

	cmd := &PlanCmd{}
	require.NoError(t, cmd.Run(&Global{}, root))

	store, err := snapshot.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Len(t, rec.Actions, 2)
	assert.NotEmpty(t, rec.Signature)
}

func TestPlanCommandNoSnapshot(t *testing.T) {
	configPath, dbPath := writeConfig(t)
	root := &CLI{Config: configPath}

	cmd := &PlanCmd{NoSnapshot: true}
	require.NoError(t, cmd.Run(&Global{}, root))

	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "snapshot database should not be created")
}

func TestDiffCommandAgainstRecordedSnapshot(t *testing.T) {
	configPath, _ := writeConfig(t)
	root := &CLI{Config: configPath}

	require.NoError(t, (&PlanCmd{}).Run(&Global{}, root))

	// Unchanged config: diff must not report changes even with --exit-code.
	diff := &DiffCmd{ExitCode: true}
	require.NoError(t, diff.Run(&Global{}, root))

	// Narrow a phase and expect a non-nil error with --exit-code.
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	changed := []byte(strings.Replace(string(data), `include: ["web/**"]`, `include: ["web/**.css"]`, 1))
	require.NoError(t, os.WriteFile(configPath, changed, 0o644))

	err = diff.Run(&Global{}, root)
	assert.Error(t, err)
}

func TestMatchCommand(t *testing.T) {
	configPath, _ := writeConfig(t)
	root := &CLI{Config: configPath}

	cmd := &MatchCmd{Assets: []string{"app|lib/a.dart", "app|lib/a.g.dart"}}
	require.NoError(t, cmd.Run(&Global{}, root))

	bad := &MatchCmd{Assets: []string{"not-an-asset-id"}}
	assert.Error(t, bad.Run(&Global{}, root))
}

func TestScanCommand(t *testing.T) {
	configPath, _ := writeConfig(t)
	root := &CLI{Config: configPath}

	// Drop some workspace files next to the config.
	dir := filepath.Dir(configPath)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "a.dart"), []byte("x"), 0o644))

	cmd := &ScanCmd{Unclaimed: true}
	require.NoError(t, cmd.Run(&Global{}, root))
}
