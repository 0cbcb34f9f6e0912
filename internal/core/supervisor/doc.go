// Package supervisor builds the on-disk process-supervision descriptor set
// for a worker service.
//
// A worker declares named long-running tasks (plus the horizon and scheduler
// builtin toggles). This package turns those declarations into one
// supervision record per task: a script body holding the literal command, a
// run wrapper invoking the script, a type marker, and a newline-joined
// dependency list. Every record autostarts; there is no manual-start mode.
//
// The package is pure: it computes Record values only. Writing the records
// to disk in the s6-overlay layout is the job of internal/shell/artifact.
//
// Key functions:
//   - BuildRecords: merge builtins and user tasks into the final record set
//   - ServiceDir, ScriptPath, MarkerPath: s6-overlay layout paths
package supervisor
