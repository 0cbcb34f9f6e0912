package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Builtin Synthesis Tests
// =============================================================================

func TestBuildRecords_BuiltinsOnly(t *testing.T) {
	records := BuildRecords(nil, Builtins{Horizon: true, Scheduler: true})

	require.Len(t, records, 2)
	assert.Equal(t, "laravel-horizon", records[0].Name)
	assert.Equal(t, "laravel-scheduler", records[1].Name)
	assert.Empty(t, records[0].Dependencies)
	assert.Empty(t, records[1].Dependencies)
}

func TestBuildRecords_HorizonCommand(t *testing.T) {
	records := BuildRecords(nil, Builtins{Horizon: true})

	require.Len(t, records, 1)
	assert.Contains(t, records[0].Script, "php artisan horizon")
}

func TestBuildRecords_SchedulerCommand(t *testing.T) {
	records := BuildRecords(nil, Builtins{Scheduler: true})

	require.Len(t, records, 1)
	assert.Contains(t, records[0].Script, "php artisan schedule:work")
}

func TestBuildRecords_NoBuiltinsNoTasks(t *testing.T) {
	records := BuildRecords(nil, Builtins{})

	assert.Empty(t, records)
}

// =============================================================================
// Merge Semantics Tests
// =============================================================================

func TestBuildRecords_UserTaskOverridesBuiltin(t *testing.T) {
	tasks := []TaskSpec{
		{Name: "laravel-horizon", Command: "php artisan horizon --environment=production"},
	}

	records := BuildRecords(tasks, Builtins{Horizon: true, Scheduler: true})

	// One record for the name, carrying the user's command, in the builtin's slot.
	require.Len(t, records, 2)
	assert.Equal(t, "laravel-horizon", records[0].Name)
	assert.Contains(t, records[0].Script, "php artisan horizon --environment=production")
	assert.Equal(t, "laravel-scheduler", records[1].Name)
}

func TestBuildRecords_UserTasksAppendAfterBuiltins(t *testing.T) {
	tasks := []TaskSpec{
		{Name: "queue-high", Command: "php artisan queue:work --queue=high"},
		{Name: "queue-low", Command: "php artisan queue:work --queue=low"},
	}

	records := BuildRecords(tasks, Builtins{Horizon: true})

	require.Len(t, records, 3)
	assert.Equal(t, "laravel-horizon", records[0].Name)
	assert.Equal(t, "queue-high", records[1].Name)
	assert.Equal(t, "queue-low", records[2].Name)
}

func TestBuildRecords_DuplicateUserTaskLastWriteWins(t *testing.T) {
	tasks := []TaskSpec{
		{Name: "reporter", Command: "php artisan report:old"},
		{Name: "reporter", Command: "php artisan report:new"},
	}

	records := BuildRecords(tasks, Builtins{})

	require.Len(t, records, 1)
	assert.Contains(t, records[0].Script, "php artisan report:new")
}

// =============================================================================
// Dependency Pass-Through Tests
// =============================================================================

func TestBuildRecords_DependenciesCopiedVerbatim(t *testing.T) {
	tasks := []TaskSpec{
		{Name: "consumer", Command: "php artisan queue:work", DependsOn: []string{"laravel-horizon"}},
	}

	records := BuildRecords(tasks, Builtins{Horizon: true})

	require.Len(t, records, 2)
	assert.Equal(t, []string{"laravel-horizon"}, records[1].Dependencies)
}

func TestBuildRecords_UnknownDependencyPreserved(t *testing.T) {
	tasks := []TaskSpec{
		{Name: "consumer", Command: "php artisan queue:work", DependsOn: []string{"no-such-task"}},
	}

	records := BuildRecords(tasks, Builtins{})

	// Dependencies are a structural pass-through, not a referential check.
	require.Len(t, records, 1)
	assert.Equal(t, []string{"no-such-task"}, records[0].Dependencies)
}

// =============================================================================
// Record Body Tests
// =============================================================================

func TestBuildRecords_RecordBodies(t *testing.T) {
	records := BuildRecords([]TaskSpec{{Name: "pruner", Command: "php artisan model:prune"}}, Builtins{})

	require.Len(t, records, 1)
	record := records[0]

	assert.Equal(t, "longrun", record.Type)
	assert.Equal(t, "#!/command/with-contenv bash\n\ncd /var/www/html\n\nphp artisan model:prune\n", record.Script)
	assert.Equal(t, "#!/command/execlineb -P\n\n/etc/s6-overlay/s6-rc.d/pruner/script\n", record.Run)
}

// =============================================================================
// Layout Tests
// =============================================================================

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t, "etc/s6-overlay/s6-rc.d/laravel-horizon", ServiceDir("laravel-horizon"))
	assert.Equal(t, "/etc/s6-overlay/s6-rc.d/laravel-horizon/script", ScriptPath("laravel-horizon"))
	assert.Equal(t, "etc/s6-overlay/s6-rc.d/user/contents.d/laravel-horizon", MarkerPath("laravel-horizon"))
}
