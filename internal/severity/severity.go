// Package severity provides severity level constants for validation issues.
//
//   - SeverityInfo: Informational messages
//   - SeverityWarning: Problems that do not make the input invalid
//   - SeverityError: Input that disagrees with the schema
//   - SeverityCritical: A schema that cannot be used at all
package severity

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates input that disagrees with the schema.
	SeverityError Severity = iota

	// SeverityWarning indicates a problem that does not make the input invalid.
	SeverityWarning

	// SeverityInfo indicates an informational message.
	SeverityInfo

	// SeverityCritical indicates a schema that cannot be used, so validation
	// of the affected subtree was abandoned.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
