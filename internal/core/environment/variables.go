package environment

import "regexp"

// =============================================================================
// Variable Substitution Functions
// =============================================================================

// placeholderRegex matches ${VAR} and ${VAR:-default} patterns.
// Groups:
//   - Group 1: Variable name (required)
//   - Group 2: ":-default" marker including the separator (optional)
//   - Group 3: Default value (may be empty)
var placeholderRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// SubstituteVariables replaces ${VAR} and ${VAR:-default} placeholders with
// values from the variables map. Override templates use this to reference a
// resource's default environment.
//
// Behavior:
//   - ${VAR} - replaced with variables["VAR"] if present, otherwise kept as-is
//   - ${VAR:-default} - replaced with variables["VAR"] if present, otherwise "default"
//   - Unmatched text is left unchanged
//
// Examples:
//
//	SubstituteVariables("${HOST}", map[string]string{"HOST": "db.local"})
//	// Returns: "db.local"
//
//	SubstituteVariables("${PORT:-5432}", nil)
//	// Returns: "5432"
//
//	SubstituteVariables("${MISSING}", nil)
//	// Returns: "${MISSING}"
//
//	SubstituteVariables("pgsql://${HOST}:${PORT}", map[string]string{"HOST": "db", "PORT": "5432"})
//	// Returns: "pgsql://db:5432"
func SubstituteVariables(value string, variables map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(value, func(match string) string {
		submatch := placeholderRegex.FindStringSubmatch(match)
		name := submatch[1]

		if val, ok := variables[name]; ok {
			return val
		}
		// A present ":-" marker means a default exists, even an empty one.
		if submatch[2] != "" {
			return submatch[3]
		}
		return match
	})
}
