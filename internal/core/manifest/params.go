package manifest

import (
	"fmt"

	"github.com/artpar/stager/internal/core/environment"
	"github.com/artpar/stager/internal/core/plan"
	"github.com/artpar/stager/internal/core/resource"
	"github.com/artpar/stager/internal/core/supervisor"
)

// =============================================================================
// Plan Input Assembly
// =============================================================================

// Bindings compiles an app's link list into ordered environment bindings.
// Each link with an override map gets an override function that applies the
// map's template over the resource's default environment.
func (m *Manifest) Bindings(app App) ([]environment.Binding, error) {
	bindings := make([]environment.Binding, 0, len(app.Links))
	for i, link := range app.Links {
		linked, ok := m.resourceByName(link.Resource)
		if !ok {
			return nil, NewConfigError(
				fmt.Sprintf("apps.%s.links[%d]", app.Name, i),
				fmt.Sprintf("resource %q is not declared", link.Resource),
				ErrUnknownLink,
			)
		}

		binding := environment.Binding{Resource: linked}
		if link.Env != nil {
			binding.Override = overrideFunc(link.Env)
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// PlanParams assembles the plan inputs for one selected app.
func (m *Manifest) PlanParams(app App) (plan.Params, error) {
	bindings, err := m.Bindings(app)
	if err != nil {
		return plan.Params{}, err
	}

	params := plan.Params{
		RuntimeVersion: app.Runtime,
		Opcache:        app.Opcache,
		Bindings:       bindings,
		ExplicitVars:   app.Env,
	}

	if app.Web != nil {
		web := &plan.WebSpec{Scale: plan.Scale(app.Web.Scale)}
		switch {
		case app.Web.AppURL != "":
			web.Domain = &environment.Domain{URL: app.Web.AppURL}
		case app.Web.Domain != "":
			web.Domain = &environment.Domain{Host: app.Web.Domain}
		}
		params.Web = web
	}

	for _, worker := range app.Workers {
		spec := plan.WorkerSpec{
			Name: worker.Name,
			Builtins: supervisor.Builtins{
				Horizon:   worker.Horizon,
				Scheduler: worker.Scheduler,
			},
			Scale: plan.Scale(worker.Scale),
		}
		for _, task := range worker.Tasks {
			spec.Tasks = append(spec.Tasks, supervisor.TaskSpec{
				Name:      task.Name,
				Command:   task.Command,
				DependsOn: task.DependsOn,
			})
		}
		params.Workers = append(params.Workers, spec)
	}

	return params, nil
}

// overrideFunc compiles an override template. Template values may reference
// the resource's default environment with ${KEY} placeholders.
func overrideFunc(template map[string]string) environment.OverrideFunc {
	return func(r resource.Resource) map[string]string {
		defaults := environment.ForResource(r)
		out := make(map[string]string, len(template))
		for key, value := range template {
			out[key] = environment.SubstituteVariables(value, defaults)
		}
		return out
	}
}

// resourceByName looks up a declared resource by its logical name.
func (m *Manifest) resourceByName(name string) (resource.Resource, bool) {
	for _, r := range m.Resources {
		if r.LogicalName() == name {
			return r, true
		}
	}
	return nil, false
}
