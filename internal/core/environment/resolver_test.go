package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/stager/internal/core/resource"
)

// =============================================================================
// Resolution Precedence Tests
// =============================================================================

func TestResolve_DefaultsOnly(t *testing.T) {
	bindings := []Binding{
		{Resource: resource.Database{
			Engine:       resource.EnginePostgres,
			Host:         "db.local",
			Port:         5432,
			DatabaseName: "app",
			Username:     "u",
			Password:     "p",
		}},
	}

	env := Resolve(bindings, nil, nil)

	assert.Equal(t, map[string]string{
		"CONNECTION": "pgsql",
		"HOST":       "db.local",
		"DATABASE":   "app",
		"USERNAME":   "u",
		"PASSWORD":   "p",
		"PORT":       "5432",
	}, env)
}

func TestResolve_OverrideBeatsDefault(t *testing.T) {
	bindings := []Binding{
		{
			Resource: resource.Database{Engine: resource.EnginePostgres, Host: "db.local", Port: 5432},
			Override: func(r resource.Resource) map[string]string {
				return map[string]string{KeyHost: "pgbouncer.internal"}
			},
		},
	}

	env := Resolve(bindings, nil, nil)

	// The override replaces only the key it names; siblings keep defaults.
	assert.Equal(t, "pgbouncer.internal", env[KeyHost])
	assert.Equal(t, "pgsql", env[KeyConnection])
	assert.Equal(t, "5432", env[KeyPort])
}

func TestResolve_ExplicitBeatsBindings(t *testing.T) {
	bindings := []Binding{
		{Resource: resource.Cache{Host: "cache.internal", Port: 6379}},
	}
	explicit := map[string]string{
		KeyHost:     "custom.example.com",
		"APP_DEBUG": "false",
	}

	env := Resolve(bindings, explicit, nil)

	assert.Equal(t, "custom.example.com", env[KeyHost])
	assert.Equal(t, "false", env["APP_DEBUG"])
	assert.Equal(t, "6379", env[KeyPort])
}

func TestResolve_AppURLBeatsEverything(t *testing.T) {
	explicit := map[string]string{KeyAppURL: "https://wrong.example.com"}
	domain := &Domain{Host: "myapp.example.com"}

	env := Resolve(nil, explicit, domain)

	assert.Equal(t, "https://myapp.example.com", env[KeyAppURL])
}

func TestResolve_LaterBindingWinsOnCollision(t *testing.T) {
	bindings := []Binding{
		{Resource: resource.Database{Engine: resource.EnginePostgres, Host: "first", Port: 5432}},
		{Resource: resource.Database{Engine: resource.EngineMySQL, Host: "second", Port: 3306}},
	}

	env := Resolve(bindings, nil, nil)

	assert.Equal(t, "second", env[KeyHost])
	assert.Equal(t, "mysql", env[KeyConnection])
}

func TestResolve_NilResourceBindingSkipped(t *testing.T) {
	bindings := []Binding{
		{Resource: nil},
		{Resource: resource.Mailer{Name: "outbound"}},
	}

	env := Resolve(bindings, nil, nil)

	assert.Equal(t, map[string]string{"MAILER": "ses"}, env)
}

func TestResolve_EmptyInputsYieldEmptyMap(t *testing.T) {
	env := Resolve(nil, nil, nil)

	require.NotNil(t, env)
	assert.Empty(t, env)
}

// =============================================================================
// Determinism Tests
// =============================================================================

func TestResolve_Deterministic(t *testing.T) {
	bindings := []Binding{
		{Resource: resource.Database{Engine: resource.EnginePostgres, Host: "db", Port: 5432}},
		{Resource: resource.Cache{Host: "cache", Port: 6379}},
		{Resource: resource.ObjectStore{Bucket: "uploads"}},
	}
	explicit := map[string]string{"APP_ENV": "production"}
	domain := &Domain{Host: "app.example.com"}

	first := Resolve(bindings, explicit, domain)
	second := Resolve(bindings, explicit, domain)

	assert.Equal(t, first, second)
}

// =============================================================================
// Domain Tests
// =============================================================================

func TestDomainAppURL_FromHost(t *testing.T) {
	d := Domain{Host: "myapp.example.com"}
	assert.Equal(t, "https://myapp.example.com", d.AppURL())
}

func TestDomainAppURL_ExplicitURLVerbatim(t *testing.T) {
	d := Domain{Host: "ignored.example.com", URL: "http://localhost:8080"}
	assert.Equal(t, "http://localhost:8080", d.AppURL())
}
