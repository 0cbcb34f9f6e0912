// Package manifest contains pure functions for parsing and validating the
// stager app manifest. This is part of the functional core - all functions
// are pure with no I/O; classification warnings are returned as values for
// the shell to log.
package manifest

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyInput = errors.New("manifest is empty")

	// YAML parsing errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// Structure errors
	ErrNoApps       = errors.New("manifest must declare at least one app")
	ErrMissingStage = errors.New("no stage configured")

	// Resource declaration errors
	ErrResourceNoName    = errors.New("resource must have a name")
	ErrDuplicateResource = errors.New("duplicate resource name")
	ErrInvalidEngine     = errors.New("invalid database engine")

	// App declaration errors
	ErrAppNoName      = errors.New("app must have a name")
	ErrUnknownApp     = errors.New("app is not declared in the manifest")
	ErrAmbiguousApp   = errors.New("multiple apps declared, select one explicitly")
	ErrUnknownLink    = errors.New("link references an undeclared resource")
	ErrDomainConflict = errors.New("web declares both domain and app_url")
	ErrTaskNoName     = errors.New("worker task must have a name")
	ErrTaskNoCommand  = errors.New("worker task must have a command")
)

// ConfigError wraps errors with context about which declaration failed.
type ConfigError struct {
	Field   string // e.g., "apps.MyApp.links[2]"
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
