package main

import (
	"flag"
	"time"

	"github.com/google/uuid"

	"github.com/artpar/stager/internal/core/plan"
	"github.com/artpar/stager/internal/shell/artifact"
)

// planCmd handles the "plan" command: resolve the manifest into per-service
// plans and write the artifacts the provisioning collaborator consumes.
func planCmd(args []string) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	manifestPath := fs.String("manifest", "", "Path to the deployment manifest")
	appName := fs.String("app", "", "App to plan when the manifest declares several")
	stage := fs.String("stage", "", "Stage override")
	outDir := fs.String("out", "", "Directory to write plan artifacts into")
	envFile := fs.String("env-file", "", "Overlay file to append the resolved environment to")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	logger := SetupLogger(cfg)

	m, err := loadManifest(firstNonEmpty(*manifestPath, cfg.Manifest.Path), logger)
	if err != nil {
		return fail(err)
	}

	app, err := m.SelectApp(firstNonEmpty(*appName, cfg.Manifest.App))
	if err != nil {
		return fail(err)
	}

	stageName, err := m.ResolveStage(firstNonEmpty(*stage, cfg.Manifest.Stage))
	if err != nil {
		return fail(err)
	}

	params, err := m.PlanParams(app)
	if err != nil {
		return fail(err)
	}
	plans := plan.Build(params)

	writer := artifact.NewWriter(firstNonEmpty(*outDir, cfg.Output.Dir), logger)

	if err := writer.WritePlanManifest(artifact.PlanManifest{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Stage:       stageName,
		App:         app.Name,
		Services:    plans,
	}); err != nil {
		return fail(err)
	}

	for _, service := range plans {
		if len(service.Records) == 0 {
			continue
		}
		if err := writer.WriteSupervisionTree(service.Name, service.Records); err != nil {
			return fail(err)
		}
	}

	// Every service shares the same resolved environment, so the first
	// plan's variables are the overlay content.
	if overlay := firstNonEmpty(*envFile, cfg.Output.EnvFile); overlay != "" && len(plans) > 0 {
		if err := writer.AppendEnvFile(overlay, plans[0].Environment); err != nil {
			return fail(err)
		}
	}

	logger.Info("plan written",
		"stage", stageName,
		"app", app.Name,
		"services", len(plans),
	)
	return ExitSuccess
}
