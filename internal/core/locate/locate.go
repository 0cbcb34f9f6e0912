// Package locate contains the pure matching rules for resolving deployed
// clusters and running task instances. This is part of the functional core:
// the network calls live in internal/shell/cluster, which feeds identifier
// lists into these functions.
package locate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrClusterNotFound means no cluster matched the derived pattern.
	ErrClusterNotFound = errors.New("no cluster matches the derived pattern")

	// ErrNoRunningTasks means the cluster exists but runs no tasks.
	ErrNoRunningTasks = errors.New("cluster has no running tasks")

	// ErrUnsupportedLogDriver means the task's log configuration is not the
	// expected streaming kind.
	ErrUnsupportedLogDriver = errors.New("task does not use the awslogs driver")
)

// =============================================================================
// Cluster Matching Functions
// =============================================================================

// ClusterPattern derives the cluster-name pattern for a stage and component.
// Hyphens are stripped from the component name before concatenation.
// Pattern: {stage}-{Component}Cluster
//
// Example:
//
//	ClusterPattern("production", "My-App") // returns "production-MyAppCluster"
func ClusterPattern(stage, component string) string {
	return fmt.Sprintf("%s-%sCluster", stage, strings.ReplaceAll(component, "-", ""))
}

// MatchClusters returns the cluster ARNs whose trailing segment contains the
// pattern. Provisioned cluster names carry generated suffixes, so this is a
// containment check, not an equality check.
func MatchClusters(pattern string, arns []string) []string {
	var matched []string
	for _, arn := range arns {
		if strings.Contains(TrailingSegment(arn), pattern) {
			matched = append(matched, arn)
		}
	}
	return matched
}

// TrailingSegment returns the resource name at the end of an ARN, the part
// after the last "/". A string without a "/" is returned unchanged.
//
// Example:
//
//	TrailingSegment("arn:aws:ecs:eu-west-1:123:cluster/production-MyAppCluster")
//	// returns "production-MyAppCluster"
func TrailingSegment(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}

// ARNRegion returns the region field of an ARN, its fourth colon-separated
// element, or an empty string for malformed input.
func ARNRegion(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) > 3 {
		return parts[3]
	}
	return ""
}

// =============================================================================
// Task Matching Functions
// =============================================================================

// Task is a best-effort snapshot of one running task instance. The task may
// stop between listing and attaching; callers must not treat it as a live
// handle.
type Task struct {
	ARN               string
	ClusterARN        string
	TaskDefinitionARN string
	ContainerNames    []string
	LastStatus        string
	StartedAt         time.Time
}

// ID returns the task's short identifier, the trailing segment of its ARN.
func (t Task) ID() string {
	return TrailingSegment(t.ARN)
}

// Label renders the task for selection lists.
func (t Task) Label() string {
	label := t.ID()
	if len(t.ContainerNames) > 0 {
		label += " (" + strings.Join(t.ContainerNames, ", ") + ")"
	}
	if !t.StartedAt.IsZero() {
		label += " started " + t.StartedAt.Format(time.RFC3339)
	}
	return label
}

// ContainerNeedle maps a service hint to the substring matched against
// container names: "web" gives "-web", "worker" gives "-worker", any other
// hint gives "-{hint}". An empty hint gives an empty needle, which matches
// nothing and defers to interactive selection.
func ContainerNeedle(hint string) string {
	if hint == "" {
		return ""
	}
	return "-" + hint
}

// MatchTasks returns the tasks with at least one container name containing
// the needle, case-insensitively. An empty needle matches no tasks.
func MatchTasks(tasks []Task, needle string) []Task {
	if needle == "" {
		return nil
	}

	needle = strings.ToLower(needle)
	var matched []Task
	for _, task := range tasks {
		for _, name := range task.ContainerNames {
			if strings.Contains(strings.ToLower(name), needle) {
				matched = append(matched, task)
				break
			}
		}
	}
	return matched
}
