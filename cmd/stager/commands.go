package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/artpar/stager/internal/core/manifest"
)

// dispatch routes the command to the appropriate handler.
func dispatch(cmd string, args []string) int {
	switch cmd {
	case "plan":
		return planCmd(args)

	// Discovery commands
	case "locate-cluster":
		return locateClusterCmd(args)
	case "locate-task":
		return locateTaskCmd(args)

	// Operational commands
	case "connect":
		return connectCmd(args)
	case "logs":
		return logsCmd(args)

	case "version":
		return versionCmd()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		fmt.Fprintln(os.Stderr, "usage: stager <command> [flags]")
		return ExitUsage
	}
}

// fail prints the single diagnostic line every failure path ends with.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "stager: %v\n", err)
	return ExitFailure
}

// loadManifest reads and parses the manifest file, surfacing any warnings
// recorded during parsing through the logger.
func loadManifest(path string, logger *slog.Logger) (*manifest.Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := manifest.ParseManifest(string(content))
	if err != nil {
		return nil, err
	}

	for _, warning := range m.Warnings {
		logger.Warn(warning)
	}
	return m, nil
}

// firstNonEmpty returns the first non-empty string, so flags can override
// config values which in turn override defaults.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
