package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/artpar/stager/internal/core/resource"
)

// =============================================================================
// Manifest Types
// =============================================================================

// Manifest is the parsed and normalized app manifest.
type Manifest struct {
	// Stage is the manifest's default deployment stage; a CLI flag overrides it.
	Stage string

	// Resources are the normalized linked resources, by declaration order.
	Resources []resource.Resource

	// Apps are the declared applications, validated.
	Apps []App

	// Warnings collects non-fatal normalization notes (e.g. a database
	// classified by port because no engine was declared) for the caller to log.
	Warnings []string
}

// App declares one application: its services, links, and build inputs.
type App struct {
	Name    string            `yaml:"name"`
	Runtime string            `yaml:"runtime"`
	Opcache *bool             `yaml:"opcache"`
	Env     map[string]string `yaml:"env"`
	Links   []Link            `yaml:"links"`
	Web     *WebConfig        `yaml:"web"`
	Workers []WorkerConfig    `yaml:"workers"`
}

// WebConfig declares the HTTP-facing service. Domain and AppURL are mutually
// exclusive: Domain derives APP_URL as https://<domain>, AppURL is taken
// verbatim.
type WebConfig struct {
	Domain string      `yaml:"domain"`
	AppURL string      `yaml:"app_url"`
	Scale  ScaleConfig `yaml:"scale"`
}

// WorkerConfig declares one background worker service.
type WorkerConfig struct {
	Name      string      `yaml:"name"`
	Horizon   bool        `yaml:"horizon"`
	Scheduler bool        `yaml:"scheduler"`
	Tasks     []TaskDecl  `yaml:"tasks"`
	Scale     ScaleConfig `yaml:"scale"`
}

// TaskDecl declares one named long-running worker task.
type TaskDecl struct {
	Name      string   `yaml:"name"`
	Command   string   `yaml:"command"`
	DependsOn []string `yaml:"depends_on"`
}

// ScaleConfig bounds the instance count of a service.
type ScaleConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// =============================================================================
// Link Type
// =============================================================================

// Link binds an app to a declared resource, optionally with an environment
// override map. Values in Env may use ${KEY} placeholders that refer to the
// resource's default environment.
type Link struct {
	Resource string
	Env      map[string]string
}

// UnmarshalYAML accepts either a bare resource name or a
// {resource, env} mapping, so link lists can mix both forms.
func (l *Link) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&l.Resource)

	case yaml.MappingNode:
		var decl struct {
			Resource string            `yaml:"resource"`
			Env      map[string]string `yaml:"env"`
		}
		if err := node.Decode(&decl); err != nil {
			return err
		}
		l.Resource = decl.Resource
		l.Env = decl.Env
		return nil

	default:
		return NewConfigError("links", "link must be a resource name or a mapping", ErrInvalidYAML)
	}
}

// =============================================================================
// Raw Document Types
// =============================================================================

// document is the raw YAML shape before resource normalization.
type document struct {
	Stage     string         `yaml:"stage"`
	Resources []resourceDecl `yaml:"resources"`
	Apps      []App          `yaml:"apps"`
}

// resourceDecl carries one raw resource declaration. Attribute aliases
// (address for host, db_name for database) are resolved during normalization.
type resourceDecl struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Engine   string `yaml:"engine"`
	Host     string `yaml:"host"`
	Address  string `yaml:"address"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	DBName   string `yaml:"db_name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Bucket   string `yaml:"bucket"`
	URL      string `yaml:"url"`
}
