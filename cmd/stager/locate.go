package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/artpar/stager/internal/shell/cluster"
	"github.com/artpar/stager/internal/shell/prompt"
)

// =============================================================================
// Shared Flags
// =============================================================================

// locateFlags are the flags shared by every command that resolves running
// infrastructure.
type locateFlags struct {
	config   string
	manifest string
	app      string
	stage    string
	cluster  string
	service  string
}

func (f *locateFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.StringVar(&f.manifest, "manifest", "", "Path to the deployment manifest")
	fs.StringVar(&f.app, "app", "", "App to target when the manifest declares several")
	fs.StringVar(&f.stage, "stage", "", "Stage override")
	fs.StringVar(&f.cluster, "cluster", "", "Cluster ARN (skips cluster resolution)")
	fs.StringVar(&f.service, "service", "", "Service hint: web, worker, or a worker name")
}

// =============================================================================
// Resolution Helpers
// =============================================================================

// newLocator builds the cluster locator from configured credentials. Empty
// credential fields defer to the SDK's default chain.
func newLocator(ctx context.Context, cfg *Config, selector cluster.TaskSelector, logger *slog.Logger) (*cluster.Locator, error) {
	api, err := cluster.NewECSClient(ctx, cluster.ClientConfig{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		return nil, err
	}
	return cluster.NewLocator(api, selector, logger), nil
}

// resolveCluster returns the cluster ARN for the given flags. An explicit
// -cluster wins; otherwise the stage and app come from the manifest and the
// cluster is located through the API.
func resolveCluster(ctx context.Context, f *locateFlags, cfg *Config, loc *cluster.Locator, logger *slog.Logger) (string, error) {
	if f.cluster != "" {
		return f.cluster, nil
	}

	m, err := loadManifest(firstNonEmpty(f.manifest, cfg.Manifest.Path), logger)
	if err != nil {
		return "", err
	}

	app, err := m.SelectApp(firstNonEmpty(f.app, cfg.Manifest.App))
	if err != nil {
		return "", err
	}

	stage, err := m.ResolveStage(firstNonEmpty(f.stage, cfg.Manifest.Stage))
	if err != nil {
		return "", err
	}

	return loc.LocateCluster(ctx, stage, app.Name)
}

// =============================================================================
// Discovery Commands
// =============================================================================

// locateClusterCmd handles the "locate-cluster" command.
func locateClusterCmd(args []string) int {
	var f locateFlags
	fs := flag.NewFlagSet("locate-cluster", flag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := LoadConfig(f.config)
	if err != nil {
		return fail(err)
	}
	logger := SetupLogger(cfg)

	ctx := context.Background()
	loc, err := newLocator(ctx, cfg, nil, logger)
	if err != nil {
		return fail(err)
	}

	arn, err := resolveCluster(ctx, &f, cfg, loc, logger)
	if err != nil {
		return fail(err)
	}

	fmt.Println(arn)
	return ExitSuccess
}

// locateTaskCmd handles the "locate-task" command.
func locateTaskCmd(args []string) int {
	var f locateFlags
	fs := flag.NewFlagSet("locate-task", flag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := LoadConfig(f.config)
	if err != nil {
		return fail(err)
	}
	logger := SetupLogger(cfg)

	ctx := context.Background()
	loc, err := newLocator(ctx, cfg, prompt.NewTerminal(), logger)
	if err != nil {
		return fail(err)
	}

	clusterARN, err := resolveCluster(ctx, &f, cfg, loc, logger)
	if err != nil {
		return fail(err)
	}

	task, err := loc.LocateTask(ctx, clusterARN, f.service)
	if err != nil {
		return fail(err)
	}

	fmt.Println(task.ARN)
	return ExitSuccess
}

// =============================================================================
// Operational Commands
// =============================================================================

// connectCmd handles the "connect" command: locate one running task and print
// the exec invocation for it. The session transport itself stays external.
func connectCmd(args []string) int {
	var f locateFlags
	fs := flag.NewFlagSet("connect", flag.ContinueOnError)
	f.register(fs)
	container := fs.String("container", "", "Container to attach to (default first)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := LoadConfig(f.config)
	if err != nil {
		return fail(err)
	}
	logger := SetupLogger(cfg)

	ctx := context.Background()
	loc, err := newLocator(ctx, cfg, prompt.NewTerminal(), logger)
	if err != nil {
		return fail(err)
	}

	clusterARN, err := resolveCluster(ctx, &f, cfg, loc, logger)
	if err != nil {
		return fail(err)
	}

	task, err := loc.LocateTask(ctx, clusterARN, f.service)
	if err != nil {
		return fail(err)
	}

	target := cluster.Attach(task, *container)
	fmt.Printf("aws ecs execute-command --cluster %s --task %s --container %s --interactive --command /bin/sh --region %s\n",
		target.Cluster, target.TaskID, target.Container, target.Region)
	return ExitSuccess
}

// logsCmd handles the "logs" command: locate one running task and print its
// awslogs group, region, and per-container streams.
func logsCmd(args []string) int {
	var f locateFlags
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := LoadConfig(f.config)
	if err != nil {
		return fail(err)
	}
	logger := SetupLogger(cfg)

	ctx := context.Background()
	loc, err := newLocator(ctx, cfg, prompt.NewTerminal(), logger)
	if err != nil {
		return fail(err)
	}

	clusterARN, err := resolveCluster(ctx, &f, cfg, loc, logger)
	if err != nil {
		return fail(err)
	}

	task, err := loc.LocateTask(ctx, clusterARN, f.service)
	if err != nil {
		return fail(err)
	}

	target, err := loc.ResolveLogTarget(ctx, task)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("group:  %s\n", target.Group)
	fmt.Printf("region: %s\n", target.Region)
	for _, stream := range target.Streams {
		fmt.Printf("stream: %s\n", stream)
	}
	return ExitSuccess
}
