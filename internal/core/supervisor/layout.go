package supervisor

import "path"

// =============================================================================
// s6-overlay Layout Functions
// =============================================================================

// Directory layout consumed by the s6-overlay init system inside the worker
// image. Paths are relative to the image build context; ScriptPath is the
// container-absolute form referenced from run wrappers.
const (
	serviceRoot  = "etc/s6-overlay/s6-rc.d"
	autostartDir = "etc/s6-overlay/s6-rc.d/user/contents.d"
)

// ServiceDir returns the build-context-relative directory holding one
// record's files.
//
// Example:
//
//	ServiceDir("laravel-horizon")
//	// Result: "etc/s6-overlay/s6-rc.d/laravel-horizon"
func ServiceDir(name string) string {
	return path.Join(serviceRoot, name)
}

// ScriptPath returns the container-absolute path of a record's script file,
// as invoked by its run wrapper at container runtime.
func ScriptPath(name string) string {
	return "/" + path.Join(serviceRoot, name, "script")
}

// MarkerPath returns the build-context-relative path of the zero-byte
// autostart marker registering a task with the supervisor's user bundle.
func MarkerPath(name string) string {
	return path.Join(autostartDir, name)
}
