package manifest

import (
	"fmt"
	"strings"
)

// =============================================================================
// App and Stage Selection
// =============================================================================

// SelectApp returns the app matching name, or the manifest's only app when
// name is empty.
//
// With several declared apps and no explicit name, selection fails with
// ErrAmbiguousApp. Ambiguity is never resolved automatically: the caller
// must name an app.
func (m *Manifest) SelectApp(name string) (App, error) {
	if name == "" {
		switch len(m.Apps) {
		case 0:
			return App{}, ErrNoApps
		case 1:
			return m.Apps[0], nil
		default:
			names := make([]string, 0, len(m.Apps))
			for _, app := range m.Apps {
				names = append(names, app.Name)
			}
			return App{}, NewConfigError(
				"apps",
				fmt.Sprintf("manifest declares %d apps (%s), pass --app to select one", len(m.Apps), strings.Join(names, ", ")),
				ErrAmbiguousApp,
			)
		}
	}

	for _, app := range m.Apps {
		if app.Name == name {
			return app, nil
		}
	}
	return App{}, NewConfigError("apps", fmt.Sprintf("app %q is not declared", name), ErrUnknownApp)
}

// ResolveStage picks the effective stage: an explicit override wins over the
// manifest default.
func (m *Manifest) ResolveStage(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if m.Stage != "" {
		return m.Stage, nil
	}
	return "", NewConfigError("stage", "declare a stage in the manifest or pass --stage", ErrMissingStage)
}
