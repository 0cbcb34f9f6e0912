package plan

import (
	"github.com/artpar/stager/internal/core/environment"
	"github.com/artpar/stager/internal/core/supervisor"
)

// =============================================================================
// Service Plan Types
// =============================================================================

// Role tags a planned service with its traffic shape.
type Role string

const (
	RoleWeb    Role = "web"
	RoleWorker Role = "worker"
)

// ServicePlan is the complete planned configuration for one service. It is
// built fresh on every plan run and persisted only as files for the image
// build step.
type ServicePlan struct {
	Name        string              `json:"name"`
	Role        Role                `json:"role"`
	Environment map[string]string   `json:"environment"`
	Build       BuildParams         `json:"build"`
	Ports       []PortMapping       `json:"ports,omitempty"`
	Scale       Scale               `json:"scale"`
	Records     []supervisor.Record `json:"tasks,omitempty"`
}

// BuildParams are the image build parameters the build collaborator consumes.
type BuildParams struct {
	RuntimeVersion string `json:"runtime_version"`
	OpcacheEnabled bool   `json:"opcache_enabled"`
	Role           Role   `json:"role"`
}

// PortMapping maps a public load-balancer port to the container port behind it.
type PortMapping struct {
	PublicPort    int `json:"public_port"`
	ContainerPort int `json:"container_port"`
}

// Scale bounds the number of running instances of a service.
type Scale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// =============================================================================
// Planner Input Types
// =============================================================================

// WebSpec declares the HTTP-facing service.
type WebSpec struct {
	// Domain carries the configured public domain or verbatim URL, nil when
	// the service has neither.
	Domain *environment.Domain
	Scale  Scale
}

// WorkerSpec declares one background worker service.
type WorkerSpec struct {
	Name     string
	Builtins supervisor.Builtins
	Tasks    []supervisor.TaskSpec
	Scale    Scale
}

// Params contains all inputs for one plan run.
type Params struct {
	// RuntimeVersion selects the application runtime image; empty means
	// DefaultRuntimeVersion.
	RuntimeVersion string

	// Opcache toggles the build-time optimization flag; nil means enabled.
	Opcache *bool

	Bindings     []environment.Binding
	ExplicitVars map[string]string

	Web     *WebSpec
	Workers []WorkerSpec
}

// =============================================================================
// Planning Defaults
// =============================================================================

const (
	// DefaultRuntimeVersion is used when an app declares no runtime.
	DefaultRuntimeVersion = "8.3"

	// ContainerHTTPPort is the port every application image listens on.
	ContainerHTTPPort = 8080
)
