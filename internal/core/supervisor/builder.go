package supervisor

// =============================================================================
// Record Building Functions
// =============================================================================

// BuildRecords turns a worker's task declarations into its supervision
// records. Builtin tasks are synthesized first, then user-declared tasks are
// merged in by name:
//  1. horizon flag set → a "laravel-horizon" task with its fixed command
//  2. scheduler flag set → a "laravel-scheduler" task with its fixed command
//  3. each user task either replaces a same-named earlier task in place or
//     is appended, preserving declaration order
//
// A user task that reuses a builtin name therefore overrides the builtin's
// command without producing a duplicate record. Dependency names are copied
// verbatim; they are not checked against the declared task set.
//
// Example:
//
//	records := BuildRecords(
//	    []TaskSpec{{Name: "queue-high", Command: "php artisan queue:work --queue=high"}},
//	    Builtins{Horizon: true},
//	)
//	// Result: [laravel-horizon, queue-high]
func BuildRecords(tasks []TaskSpec, builtins Builtins) []Record {
	merged := mergeTasks(tasks, builtins)

	records := make([]Record, 0, len(merged))
	for _, task := range merged {
		records = append(records, Record{
			Name:         task.Name,
			Type:         TypeLongRun,
			Script:       scriptBody(task.Command),
			Run:          runBody(task.Name),
			Dependencies: task.DependsOn,
		})
	}

	return records
}

// mergeTasks builds the ordered task list: builtins first, user tasks merged
// by name with last-write-wins semantics that keep the first occurrence's
// position.
func mergeTasks(tasks []TaskSpec, builtins Builtins) []TaskSpec {
	var merged []TaskSpec

	if builtins.Horizon {
		merged = append(merged, TaskSpec{Name: HorizonTaskName, Command: horizonCommand})
	}
	if builtins.Scheduler {
		merged = append(merged, TaskSpec{Name: SchedulerTaskName, Command: schedulerCommand})
	}

	for _, task := range tasks {
		replaced := false
		for i := range merged {
			if merged[i].Name == task.Name {
				merged[i] = task
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, task)
		}
	}

	return merged
}

// =============================================================================
// File Body Functions
// =============================================================================

// scriptBody wraps a task command in the shell preamble every supervised
// task runs under. The working directory matches the application root baked
// into the image.
func scriptBody(command string) string {
	return "#!/command/with-contenv bash\n\ncd /var/www/html\n\n" + command + "\n"
}

// runBody produces the run wrapper that the supervisor executes; it does
// nothing but invoke the task's script at its container-absolute path.
func runBody(name string) string {
	return "#!/command/execlineb -P\n\n" + ScriptPath(name) + "\n"
}
