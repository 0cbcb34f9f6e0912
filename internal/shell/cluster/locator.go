package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/artpar/stager/internal/core/locate"
)

// describeTasksBatchSize is the DescribeTasks API limit per call.
const describeTasksBatchSize = 100

// =============================================================================
// Locator
// =============================================================================

// TaskSelector resolves an ambiguous task candidate set, typically by asking
// the operator. It blocks until a task is chosen or the selection is aborted.
type TaskSelector interface {
	SelectTask(tasks []locate.Task) (locate.Task, error)
}

// Locator resolves clusters and running task instances against the ECS API.
// Results are best-effort snapshots: a task can stop between listing and use.
type Locator struct {
	api      API
	selector TaskSelector
	logger   *slog.Logger
}

// NewLocator creates a new locator. The selector handles ambiguous task
// candidate sets and may be nil when the caller guarantees unambiguous input.
func NewLocator(api API, selector TaskSelector, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		api:      api,
		selector: selector,
		logger:   logger,
	}
}

// =============================================================================
// Cluster Resolution
// =============================================================================

// LocateCluster resolves the cluster ARN for a stage and component by
// matching the derived pattern against all cluster ARNs. Zero matches fail
// with locate.ErrClusterNotFound; several matches resolve to the first in
// lexical order so repeated invocations agree.
func (l *Locator) LocateCluster(ctx context.Context, stage, component string) (string, error) {
	pattern := locate.ClusterPattern(stage, component)

	var arns []string
	var nextToken *string
	for {
		out, err := l.api.ListClusters(ctx, &ecs.ListClustersInput{NextToken: nextToken})
		if err != nil {
			return "", fmt.Errorf("failed to list clusters: %w", err)
		}
		arns = append(arns, out.ClusterArns...)
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	matched := locate.MatchClusters(pattern, arns)
	if len(matched) == 0 {
		return "", fmt.Errorf("no cluster matching %q: %w", pattern, locate.ErrClusterNotFound)
	}
	if len(matched) > 1 {
		sort.Strings(matched)
		l.logger.Warn("multiple clusters match, using first",
			"pattern", pattern,
			"matches", len(matched),
			"selected", matched[0],
		)
	}

	l.logger.Debug("located cluster", "pattern", pattern, "cluster", matched[0])
	return matched[0], nil
}

// =============================================================================
// Task Resolution
// =============================================================================

// LocateTask resolves one running task instance in a cluster. A service hint
// that matches exactly one task wins; no hint, no match, or several matches
// defer to the selector over the full running set. A cluster with no running
// tasks at all fails with locate.ErrNoRunningTasks.
func (l *Locator) LocateTask(ctx context.Context, clusterARN, hint string) (locate.Task, error) {
	tasks, err := l.listRunningTasks(ctx, clusterARN)
	if err != nil {
		return locate.Task{}, err
	}
	if len(tasks) == 0 {
		return locate.Task{}, fmt.Errorf("cluster %s: %w", locate.TrailingSegment(clusterARN), locate.ErrNoRunningTasks)
	}

	if hint != "" {
		matched := locate.MatchTasks(tasks, locate.ContainerNeedle(hint))
		if len(matched) == 1 {
			l.logger.Debug("located task by hint", "hint", hint, "task", matched[0].ID())
			return matched[0], nil
		}
		l.logger.Debug("hint is ambiguous, deferring to selection",
			"hint", hint,
			"matches", len(matched),
			"running", len(tasks),
		)
	}

	if l.selector == nil {
		return locate.Task{}, fmt.Errorf("task selection is ambiguous for cluster %s and no selector is configured",
			locate.TrailingSegment(clusterARN))
	}
	return l.selector.SelectTask(tasks)
}

// listRunningTasks lists and describes every running task in the cluster.
func (l *Locator) listRunningTasks(ctx context.Context, clusterARN string) ([]locate.Task, error) {
	var arns []string
	var nextToken *string
	for {
		out, err := l.api.ListTasks(ctx, &ecs.ListTasksInput{
			Cluster:       aws.String(clusterARN),
			DesiredStatus: ecstypes.DesiredStatusRunning,
			NextToken:     nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		arns = append(arns, out.TaskArns...)
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	var tasks []locate.Task
	for start := 0; start < len(arns); start += describeTasksBatchSize {
		end := start + describeTasksBatchSize
		if end > len(arns) {
			end = len(arns)
		}

		out, err := l.api.DescribeTasks(ctx, &ecs.DescribeTasksInput{
			Cluster: aws.String(clusterARN),
			Tasks:   arns[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe tasks: %w", err)
		}
		for _, task := range out.Tasks {
			tasks = append(tasks, convertTask(task))
		}
	}

	return tasks, nil
}

// convertTask maps an ECS task to the core snapshot type.
func convertTask(task ecstypes.Task) locate.Task {
	converted := locate.Task{
		ARN:               aws.ToString(task.TaskArn),
		ClusterARN:        aws.ToString(task.ClusterArn),
		TaskDefinitionARN: aws.ToString(task.TaskDefinitionArn),
		LastStatus:        aws.ToString(task.LastStatus),
	}
	for _, container := range task.Containers {
		converted.ContainerNames = append(converted.ContainerNames, aws.ToString(container.Name))
	}
	if task.StartedAt != nil {
		converted.StartedAt = *task.StartedAt
	}
	return converted
}

// =============================================================================
// Log and Attach Targets
// =============================================================================

// LogTarget identifies the log streams of one running task.
type LogTarget struct {
	Group   string
	Region  string
	Streams []string
}

// ResolveLogTarget reads the task's definition and derives its log streams.
// Only the awslogs driver is supported; anything else fails with
// locate.ErrUnsupportedLogDriver.
func (l *Locator) ResolveLogTarget(ctx context.Context, task locate.Task) (LogTarget, error) {
	out, err := l.api.DescribeTaskDefinition(ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: aws.String(task.TaskDefinitionARN),
	})
	if err != nil {
		return LogTarget{}, fmt.Errorf("failed to describe task definition: %w", err)
	}

	var logConfig *ecstypes.LogConfiguration
	for _, def := range out.TaskDefinition.ContainerDefinitions {
		if def.LogConfiguration != nil {
			logConfig = def.LogConfiguration
			break
		}
	}
	if logConfig == nil || logConfig.LogDriver != ecstypes.LogDriverAwslogs {
		return LogTarget{}, fmt.Errorf("task %s: %w", task.ID(), locate.ErrUnsupportedLogDriver)
	}

	target := LogTarget{
		Group:  logConfig.Options["awslogs-group"],
		Region: logConfig.Options["awslogs-region"],
	}
	prefix := logConfig.Options["awslogs-stream-prefix"]
	for _, name := range task.ContainerNames {
		target.Streams = append(target.Streams, fmt.Sprintf("%s/%s/%s", prefix, name, task.ID()))
	}

	return target, nil
}

// AttachTarget is the parameter set for attaching an interactive shell to
// one container of a running task. The attach transport itself is external;
// stager only computes the parameters.
type AttachTarget struct {
	Cluster   string
	TaskID    string
	Container string
	Region    string
}

// Attach derives the attach parameters for a located task. An empty
// container name picks the task's first container.
func Attach(task locate.Task, container string) AttachTarget {
	if container == "" && len(task.ContainerNames) > 0 {
		container = task.ContainerNames[0]
	}
	return AttachTarget{
		Cluster:   locate.TrailingSegment(task.ClusterARN),
		TaskID:    task.ID(),
		Container: container,
		Region:    locate.ARNRegion(task.ARN),
	}
}
