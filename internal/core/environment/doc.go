// Package environment computes the environment variable set a service
// receives from its linked resources, operator overrides, and explicit
// variables.
//
// All functions are pure (no I/O, no side effects). The on-disk overlay
// file produced from a resolved environment is written by the imperative
// shell (internal/shell/artifact), never from here.
//
// # Functions
//
//   - ForResource: map one linked resource to its default variables
//   - Resolve: merge resource defaults, overrides, explicit variables, and
//     the domain-derived APP_URL in fixed precedence order
//
// # Precedence
//
// Later writes win. Resolution applies, in order: per-resource defaults,
// the resource's override function, binding-list order across resources,
// explicit variables, and finally APP_URL when a domain is configured.
package environment
