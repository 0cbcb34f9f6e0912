package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artpar/stager/internal/core/resource"
)

// =============================================================================
// Parser Functions
// =============================================================================

// ParseManifest parses manifest YAML into a Manifest.
// This is a pure function - no I/O, no side effects.
// Input: raw YAML string
// Output: Manifest struct or error
//
// Resource declarations are normalized here: attribute aliases are resolved,
// and a database with no declared engine is classified by port, recording a
// warning on the returned Manifest.
func ParseManifest(yamlContent string) (*Manifest, error) {
	// Input validation
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	var doc document
	if err := yaml.Unmarshal([]byte(yamlContent), &doc); err != nil {
		return nil, NewConfigError("", err.Error(), ErrInvalidYAML)
	}

	// Validate required fields
	if len(doc.Apps) == 0 {
		return nil, ErrNoApps
	}

	m := &Manifest{
		Stage:     doc.Stage,
		Resources: make([]resource.Resource, 0, len(doc.Resources)),
		Apps:      make([]App, 0, len(doc.Apps)),
	}

	// Normalize resources
	declared := make(map[string]bool)
	for i, decl := range doc.Resources {
		field := fmt.Sprintf("resources[%d]", i)
		if decl.Name == "" {
			return nil, NewConfigError(field, "resource must have a name", ErrResourceNoName)
		}
		if declared[decl.Name] {
			return nil, NewConfigError(field, fmt.Sprintf("resource %q declared twice", decl.Name), ErrDuplicateResource)
		}
		declared[decl.Name] = true

		normalized, warning, err := normalizeResource(decl)
		if err != nil {
			return nil, err
		}
		if warning != "" {
			m.Warnings = append(m.Warnings, warning)
		}
		m.Resources = append(m.Resources, normalized)
	}

	// Validate apps
	for _, app := range doc.Apps {
		if err := validateApp(app, declared); err != nil {
			return nil, err
		}
		m.Apps = append(m.Apps, app)
	}

	return m, nil
}

// =============================================================================
// Resource Normalization
// =============================================================================

// normalizeResource converts a raw declaration into its typed variant.
// Unknown kinds normalize to resource.Unknown rather than erroring, so
// manifests written against newer resource kinds keep parsing.
func normalizeResource(decl resourceDecl) (resource.Resource, string, error) {
	switch resource.Kind(decl.Kind) {
	case resource.KindDatabase:
		return normalizeDatabase(decl)

	case resource.KindCache:
		return resource.Cache{
			Name:     decl.Name,
			Host:     firstNonEmpty(decl.Host, decl.Address),
			Port:     decl.Port,
			Password: decl.Password,
		}, "", nil

	case resource.KindObjectStore:
		return resource.ObjectStore{Name: decl.Name, Bucket: decl.Bucket}, "", nil

	case resource.KindQueue:
		return resource.Queue{Name: decl.Name, URL: decl.URL}, "", nil

	case resource.KindMailer:
		return resource.Mailer{Name: decl.Name}, "", nil

	default:
		return resource.Unknown{Name: decl.Name, Declared: decl.Kind}, "", nil
	}
}

// normalizeDatabase resolves the engine discriminator. An explicit engine is
// taken as declared; a missing engine falls back to port classification with
// a warning for the caller to surface.
func normalizeDatabase(decl resourceDecl) (resource.Resource, string, error) {
	db := resource.Database{
		Name:         decl.Name,
		Host:         firstNonEmpty(decl.Host, decl.Address),
		Port:         decl.Port,
		DatabaseName: firstNonEmpty(decl.Database, decl.DBName),
		Username:     decl.Username,
		Password:     decl.Password,
	}

	switch resource.Engine(decl.Engine) {
	case resource.EnginePostgres, resource.EngineMySQL:
		db.Engine = resource.Engine(decl.Engine)
		return db, "", nil

	case "":
		db.Engine = resource.ClassifyEngine(decl.Port)
		warning := fmt.Sprintf("resource %q: no engine declared, classified as %s from port %d",
			decl.Name, db.Engine, decl.Port)
		return db, warning, nil

	default:
		return nil, "", NewConfigError(
			"resources."+decl.Name+".engine",
			fmt.Sprintf("unknown engine %q (expected %s or %s)", decl.Engine, resource.EnginePostgres, resource.EngineMySQL),
			ErrInvalidEngine,
		)
	}
}

// =============================================================================
// App Validation
// =============================================================================

// validateApp checks one app declaration against the declared resource set.
func validateApp(app App, declared map[string]bool) error {
	if app.Name == "" {
		return NewConfigError("apps", "app must have a name", ErrAppNoName)
	}

	for i, link := range app.Links {
		if !declared[link.Resource] {
			return NewConfigError(
				fmt.Sprintf("apps.%s.links[%d]", app.Name, i),
				fmt.Sprintf("resource %q is not declared", link.Resource),
				ErrUnknownLink,
			)
		}
	}

	if app.Web != nil && app.Web.Domain != "" && app.Web.AppURL != "" {
		return NewConfigError("apps."+app.Name+".web", "domain and app_url are mutually exclusive", ErrDomainConflict)
	}

	for wi, worker := range app.Workers {
		for ti, task := range worker.Tasks {
			field := fmt.Sprintf("apps.%s.workers[%d].tasks[%d]", app.Name, wi, ti)
			if task.Name == "" {
				return NewConfigError(field, "task must have a name", ErrTaskNoName)
			}
			if task.Command == "" {
				return NewConfigError(field, "task must have a command", ErrTaskNoCommand)
			}
		}
	}

	return nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
