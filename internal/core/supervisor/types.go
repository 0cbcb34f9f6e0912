package supervisor

// =============================================================================
// Task Declaration Types
// =============================================================================

// TaskSpec declares one named long-running task for a worker.
// Names are unique within a worker; DependsOn refers to sibling task names
// and is passed through without existence validation.
type TaskSpec struct {
	Name      string
	Command   string
	DependsOn []string
}

// Builtins toggles the tasks synthesized before user declarations are merged.
type Builtins struct {
	Horizon   bool
	Scheduler bool
}

// =============================================================================
// Supervision Record Types
// =============================================================================

// Record is the computed descriptor for one supervised task. It maps onto
// four fixed-name files plus an autostart marker in the s6-overlay layout,
// and is carried verbatim into the emitted plan document.
type Record struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Script       string   `json:"script"`
	Run          string   `json:"run"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// =============================================================================
// Builtin Task Constants
// =============================================================================

// Builtin task names and commands. The names are part of the produced
// artifact layout and must not change between releases.
const (
	HorizonTaskName   = "laravel-horizon"
	SchedulerTaskName = "laravel-scheduler"

	horizonCommand   = "php artisan horizon"
	schedulerCommand = "php artisan schedule:work"
)

// TypeLongRun is the literal content of every record's type file.
const TypeLongRun = "longrun"
