// Package cluster resolves running infrastructure through the ECS management
// API: which cluster a stage and component deployed to, which task instance
// an operator means, and how to attach to or stream logs from it.
//
// This is part of the imperative shell. The matching rules are pure and live
// in internal/core/locate; this package performs the network calls and the
// interactive fallback.
package cluster

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
)

// =============================================================================
// ECS Client Construction
// =============================================================================

// API is the subset of the ECS control plane the locator reads. It is
// satisfied by *ecs.Client and by test fakes.
type API interface {
	ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	ListTasks(ctx context.Context, params *ecs.ListTasksInput, optFns ...func(*ecs.Options)) (*ecs.ListTasksOutput, error)
	DescribeTasks(ctx context.Context, params *ecs.DescribeTasksInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error)
	DescribeTaskDefinition(ctx context.Context, params *ecs.DescribeTaskDefinitionInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTaskDefinitionOutput, error)
}

// ClientConfig selects the region and credentials for the ECS client.
// Without explicit keys the default AWS credential chain applies.
type ClientConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewECSClient builds an ECS client from the given configuration.
func NewECSClient(ctx context.Context, cfg ClientConfig) (*ecs.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ecs.NewFromConfig(awsCfg), nil
}
