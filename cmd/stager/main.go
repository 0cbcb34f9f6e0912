// Package main provides the stager binary that turns a deployment manifest
// into resolved configuration artifacts and locates the running containers
// afterwards.
//
// Usage:
//
//	stager <command> [flags]
//
// Commands:
//
//	plan            - Resolve the manifest and write plan artifacts
//	locate-cluster  - Print the cluster ARN for the configured stage and app
//	locate-task     - Print one running task, prompting when ambiguous
//	connect         - Print the exec invocation for a running task
//	logs            - Print the awslogs target for a running task
//	version         - Show stager version
//
// Every command reads its defaults from the optional config file and the
// STAGER_ environment, with flags taking precedence. Any failure prints a
// single diagnostic line to stderr and exits non-zero.
package main

import (
	"fmt"
	"os"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: stager <command> [flags]")
		return ExitUsage
	}

	return dispatch(args[0], args[1:])
}

// versionCmd handles the "version" command.
func versionCmd() int {
	fmt.Printf("stager %s (built %s)\n", Version, BuildTime)
	return ExitSuccess
}
