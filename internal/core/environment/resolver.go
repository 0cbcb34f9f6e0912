package environment

import "github.com/artpar/stager/internal/core/resource"

// =============================================================================
// Bindings
// =============================================================================

// OverrideFunc derives a partial environment map from a resource. Operators
// supply one per binding to rename or extend the resource's default
// variables. Overrides apply strictly after the defaults for that resource.
type OverrideFunc func(resource.Resource) map[string]string

// Binding pairs a linked resource with an optional environment override.
type Binding struct {
	Resource resource.Resource
	Override OverrideFunc
}

// =============================================================================
// Domain
// =============================================================================

// Domain configures APP_URL derivation for the web service. Exactly one of
// Host or URL is set: a Host is served over HTTPS, a URL is used verbatim.
type Domain struct {
	Host string
	URL  string
}

// AppURL returns the derived APP_URL value.
func (d Domain) AppURL() string {
	if d.URL != "" {
		return d.URL
	}
	return "https://" + d.Host
}

// =============================================================================
// Resolution
// =============================================================================

// Resolve produces the final environment map for a service.
//
// Precedence, each step overwriting keys set by the previous:
//
//  1. each binding's resource defaults (ForResource)
//  2. the binding's override, merged over that resource's defaults
//  3. bindings merged in list order (later bindings win on collision)
//  4. explicit operator variables
//  5. APP_URL derived from the domain, when one is configured
//
// Resolve never fails for well-formed input. Empty bindings and explicit
// variables yield an empty map (plus APP_URL if a domain is set). Calling
// twice with identical input yields an identical map.
func Resolve(bindings []Binding, explicit map[string]string, domain *Domain) map[string]string {
	env := make(map[string]string)

	for _, b := range bindings {
		if b.Resource == nil {
			continue
		}

		contributed := ForResource(b.Resource)
		if b.Override != nil {
			for k, v := range b.Override(b.Resource) {
				contributed[k] = v
			}
		}

		for k, v := range contributed {
			env[k] = v
		}
	}

	for k, v := range explicit {
		env[k] = v
	}

	// The domain-derived APP_URL is set last and always wins.
	if domain != nil {
		env[KeyAppURL] = domain.AppURL()
	}

	return env
}
