package plan

import (
	"fmt"

	"github.com/artpar/stager/internal/core/environment"
	"github.com/artpar/stager/internal/core/supervisor"
)

// =============================================================================
// Plan Building Functions
// =============================================================================

// Build produces one ServicePlan per declared service.
//
// The environment is resolved once from the app's bindings, explicit
// variables, and web domain, and every service receives that same resolved
// set; workers are not yet differentiated from the web service by their
// links. Supervision records are built per worker.
//
// Build is total: an input with no web service and no workers yields an
// empty plan list.
//
// Example:
//
//	plans := Build(Params{
//	    Web:     &WebSpec{Domain: &environment.Domain{Host: "app.example.com"}},
//	    Workers: []WorkerSpec{{Name: "default", Builtins: supervisor.Builtins{Horizon: true}}},
//	})
//	// Result: [web plan with ports 80 and 443, worker plan "default"]
func Build(params Params) []ServicePlan {
	var domain *environment.Domain
	if params.Web != nil {
		domain = params.Web.Domain
	}
	env := environment.Resolve(params.Bindings, params.ExplicitVars, domain)

	plans := make([]ServicePlan, 0, 1+len(params.Workers))

	if params.Web != nil {
		plans = append(plans, ServicePlan{
			Name:        string(RoleWeb),
			Role:        RoleWeb,
			Environment: cloneEnv(env),
			Build:       buildParams(params, RoleWeb),
			Ports:       webPorts(params.Web.Domain),
			Scale:       defaultScale(params.Web.Scale),
		})
	}

	for i, worker := range params.Workers {
		plans = append(plans, ServicePlan{
			Name:        workerName(worker, i),
			Role:        RoleWorker,
			Environment: cloneEnv(env),
			Build:       buildParams(params, RoleWorker),
			Scale:       defaultScale(worker.Scale),
			Records:     supervisor.BuildRecords(worker.Tasks, worker.Builtins),
		})
	}

	return plans
}

// webPorts computes the public port list for the web service. Plain HTTP is
// always exposed; HTTPS is added only when a domain is configured, since
// certificate issuance is keyed to it.
func webPorts(domain *environment.Domain) []PortMapping {
	ports := []PortMapping{{PublicPort: 80, ContainerPort: ContainerHTTPPort}}
	if domain != nil {
		ports = append(ports, PortMapping{PublicPort: 443, ContainerPort: ContainerHTTPPort})
	}
	return ports
}

// workerName returns the worker's declared name, or a 1-based positional
// fallback for unnamed workers.
//
// Example:
//
//	workerName(WorkerSpec{}, 0)
//	// Result: "worker-1"
func workerName(worker WorkerSpec, index int) string {
	if worker.Name != "" {
		return worker.Name
	}
	return fmt.Sprintf("worker-%d", index+1)
}

// buildParams applies the cross-cutting build defaults.
func buildParams(params Params, role Role) BuildParams {
	version := params.RuntimeVersion
	if version == "" {
		version = DefaultRuntimeVersion
	}

	opcache := true
	if params.Opcache != nil {
		opcache = *params.Opcache
	}

	return BuildParams{
		RuntimeVersion: version,
		OpcacheEnabled: opcache,
		Role:           role,
	}
}

// defaultScale fills an undeclared scale with a single instance.
func defaultScale(scale Scale) Scale {
	if scale.Min == 0 && scale.Max == 0 {
		return Scale{Min: 1, Max: 1}
	}
	return scale
}

// cloneEnv copies a resolved environment so each plan owns its map.
func cloneEnv(env map[string]string) map[string]string {
	clone := make(map[string]string, len(env))
	for key, value := range env {
		clone[key] = value
	}
	return clone
}
