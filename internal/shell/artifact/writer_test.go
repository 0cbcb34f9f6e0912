package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/stager/internal/core/plan"
	"github.com/artpar/stager/internal/core/supervisor"
)

// =============================================================================
// Supervision Tree Tests
// =============================================================================

func TestWriteSupervisionTree_Layout(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, slog.Default())

	records := supervisor.BuildRecords(
		[]supervisor.TaskSpec{{
			Name:      "queue-high",
			Command:   "php artisan queue:work --queue=high",
			DependsOn: []string{"laravel-horizon"},
		}},
		supervisor.Builtins{Horizon: true},
	)

	err := writer.WriteSupervisionTree("default", records)
	require.NoError(t, err)

	base := filepath.Join(dir, "default", "etc", "s6-overlay", "s6-rc.d")

	// type holds the literal longrun token.
	typeContent, err := os.ReadFile(filepath.Join(base, "laravel-horizon", "type"))
	require.NoError(t, err)
	assert.Equal(t, "longrun", string(typeContent))

	// dependencies are newline-joined, empty for the builtin.
	deps, err := os.ReadFile(filepath.Join(base, "laravel-horizon", "dependencies"))
	require.NoError(t, err)
	assert.Equal(t, "", string(deps))

	deps, err = os.ReadFile(filepath.Join(base, "queue-high", "dependencies"))
	require.NoError(t, err)
	assert.Equal(t, "laravel-horizon", string(deps))

	script, err := os.ReadFile(filepath.Join(base, "queue-high", "script"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "#!/command/with-contenv bash")
	assert.Contains(t, string(script), "cd /var/www/html")
	assert.Contains(t, string(script), "php artisan queue:work --queue=high")

	run, err := os.ReadFile(filepath.Join(base, "queue-high", "run"))
	require.NoError(t, err)
	assert.Equal(t, "#!/command/execlineb -P\n\n/etc/s6-overlay/s6-rc.d/queue-high/script\n", string(run))
}

func TestWriteSupervisionTree_ExecutableModes(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)

	err := writer.WriteSupervisionTree("default", supervisor.BuildRecords(nil, supervisor.Builtins{Horizon: true}))
	require.NoError(t, err)

	serviceDir := filepath.Join(dir, "default", "etc", "s6-overlay", "s6-rc.d", "laravel-horizon")

	for _, name := range []string{"script", "run"} {
		info, err := os.Stat(filepath.Join(serviceDir, name))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode().Perm()&0100, "%s must be executable", name)
	}

	info, err := os.Stat(filepath.Join(serviceDir, "type"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0100, "type must not be executable")
}

func TestWriteSupervisionTree_AutostartMarker(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)

	err := writer.WriteSupervisionTree("default", supervisor.BuildRecords(nil, supervisor.Builtins{Horizon: true, Scheduler: true}))
	require.NoError(t, err)

	markerDir := filepath.Join(dir, "default", "etc", "s6-overlay", "s6-rc.d", "user", "contents.d")

	for _, name := range []string{"laravel-horizon", "laravel-scheduler"} {
		info, err := os.Stat(filepath.Join(markerDir, name))
		require.NoError(t, err)
		assert.Zero(t, info.Size(), "marker %s must be empty", name)
	}
}

func TestWriteSupervisionTree_NoRecords(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)

	err := writer.WriteSupervisionTree("default", nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "default"))
	assert.True(t, os.IsNotExist(err))
}

// =============================================================================
// Plan Manifest Tests
// =============================================================================

func TestWritePlanManifest(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)

	manifest := PlanManifest{
		ID:    "0f6b7c1e-8a9f-4b52-9f64-2f4ca4c2f111",
		Stage: "production",
		App:   "MyApp",
		Services: plan.Build(plan.Params{
			Web: &plan.WebSpec{},
		}),
	}

	err := writer.WritePlanManifest(manifest)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "plan.json"))
	require.NoError(t, err)

	var decoded PlanManifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, manifest.ID, decoded.ID)
	assert.Equal(t, "production", decoded.Stage)
	require.Len(t, decoded.Services, 1)
	assert.Equal(t, plan.RoleWeb, decoded.Services[0].Role)
	assert.Equal(t, "8.3", decoded.Services[0].Build.RuntimeVersion)
}

// =============================================================================
// Environment Overlay Tests
// =============================================================================

func TestAppendEnvFile_SortedLines(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)
	path := filepath.Join(dir, ".env.production")

	err := writer.AppendEnvFile(path, map[string]string{
		"HOST":       "db.local",
		"CONNECTION": "pgsql",
		"PORT":       "5432",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CONNECTION=pgsql\nHOST=db.local\nPORT=5432\n", string(data))
}

func TestAppendEnvFile_SecondCallDuplicatesLines(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)
	path := filepath.Join(dir, ".env")
	env := map[string]string{"APP_ENV": "production"}

	require.NoError(t, writer.AppendEnvFile(path, env))
	require.NoError(t, writer.AppendEnvFile(path, env))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Append-only by contract: a second run duplicates, it does not rewrite.
	assert.Equal(t, "APP_ENV=production\nAPP_ENV=production\n", string(data))
}

func TestAppendEnvFile_EmptyMapWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, nil)
	path := filepath.Join(dir, ".env")

	require.NoError(t, writer.AppendEnvFile(path, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
