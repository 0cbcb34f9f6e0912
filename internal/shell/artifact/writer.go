// Package artifact writes the file artifacts of a plan run: per-worker
// supervision trees for the image build step, the plan manifest for the
// provisioning step, and the optional environment overlay file.
//
// This is part of the imperative shell. All content is computed by the core
// packages first; this package only puts bytes on disk.
package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/artpar/stager/internal/core/plan"
	"github.com/artpar/stager/internal/core/supervisor"
)

// =============================================================================
// Writer
// =============================================================================

// Writer emits plan artifacts under a base output directory.
type Writer struct {
	logger *slog.Logger
	outDir string
}

// NewWriter creates a new artifact writer.
// outDir is the base directory plan artifacts are written to.
func NewWriter(outDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if outDir == "" {
		outDir = "."
	}
	return &Writer{
		logger: logger,
		outDir: outDir,
	}
}

// =============================================================================
// Supervision Tree Emission
// =============================================================================

// WriteSupervisionTree writes one worker's supervision records into its
// image build context at {outDir}/{serviceName}. Each record becomes a
// service directory holding four fixed-name files plus a zero-byte autostart
// marker:
//
//	etc/s6-overlay/s6-rc.d/{task}/type          "longrun"
//	etc/s6-overlay/s6-rc.d/{task}/dependencies  newline-joined names
//	etc/s6-overlay/s6-rc.d/{task}/script        executable
//	etc/s6-overlay/s6-rc.d/{task}/run           executable
//	etc/s6-overlay/s6-rc.d/user/contents.d/{task}
func (w *Writer) WriteSupervisionTree(serviceName string, records []supervisor.Record) error {
	base := filepath.Join(w.outDir, serviceName)

	for _, record := range records {
		serviceDir := filepath.Join(base, supervisor.ServiceDir(record.Name))
		if err := os.MkdirAll(serviceDir, 0755); err != nil {
			return fmt.Errorf("failed to create service directory for %s: %w", record.Name, err)
		}

		files := []struct {
			name    string
			content string
			mode    os.FileMode
		}{
			{"type", record.Type, 0644},
			{"dependencies", strings.Join(record.Dependencies, "\n"), 0644},
			{"script", record.Script, 0755},
			{"run", record.Run, 0755},
		}
		for _, f := range files {
			path := filepath.Join(serviceDir, f.name)
			if err := os.WriteFile(path, []byte(f.content), f.mode); err != nil {
				return fmt.Errorf("failed to write %s for task %s: %w", f.name, record.Name, err)
			}
		}

		marker := filepath.Join(base, supervisor.MarkerPath(record.Name))
		if err := os.MkdirAll(filepath.Dir(marker), 0755); err != nil {
			return fmt.Errorf("failed to create autostart directory: %w", err)
		}
		if err := os.WriteFile(marker, nil, 0644); err != nil {
			return fmt.Errorf("failed to write autostart marker for %s: %w", record.Name, err)
		}

		w.logger.Debug("wrote supervision record",
			"service", serviceName,
			"task", record.Name,
			"dir", serviceDir,
		)
	}

	return nil
}

// =============================================================================
// Plan Manifest Emission
// =============================================================================

// PlanManifest is the plan.json document the provisioning collaborator
// consumes: one entry per planned service with its image parameters,
// environment, ports, and scaling bounds.
type PlanManifest struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Stage       string             `json:"stage"`
	App         string             `json:"app"`
	Services    []plan.ServicePlan `json:"services"`
}

// WritePlanManifest writes the plan manifest as {outDir}/plan.json.
func (w *Writer) WritePlanManifest(manifest PlanManifest) error {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan manifest: %w", err)
	}

	path := filepath.Join(w.outDir, "plan.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write plan manifest: %w", err)
	}

	w.logger.Debug("wrote plan manifest", "path", path, "services", len(manifest.Services))
	return nil
}

// =============================================================================
// Environment Overlay Emission
// =============================================================================

// AppendEnvFile appends resolved variables to a flat KEY=value overlay file,
// one line per variable, keys sorted. Lines are appended, never rewritten:
// calling this twice for the same plan duplicates lines, so callers append
// once per plan run.
func (w *Writer) AppendEnvFile(path string, env map[string]string) error {
	if len(env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, env[key])
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append env file: %w", err)
	}

	w.logger.Debug("appended env overlay", "path", path, "vars", len(keys))
	return nil
}
