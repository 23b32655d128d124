package relgraph

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the schema graph.
var (
	// ErrBuild is returned when a mutating call would leave the graph in an
	// invalid state, such as a duplicate column or an index without columns.
	ErrBuild = errors.New("relgraph: invalid schema structure")

	// ErrResolution is returned when a reference by name (a foreign table, a
	// local or foreign column, a relation) cannot be resolved.
	ErrResolution = errors.New("relgraph: unresolved reference")

	// ErrConfig is returned for invalid configuration values.
	ErrConfig = errors.New("relgraph: invalid configuration")
)

// BuildError represents a structural error raised synchronously by the
// mutating call that triggered it.
type BuildError struct {
	Kind    string // Entity kind, e.g. "column" or "index"
	Name    string // Entity name
	Table   string // Owning table, if any
	Message string
}

// Error returns the error string.
func (e *BuildError) Error() string {
	var b strings.Builder
	b.WriteString("relgraph: ")
	b.WriteString(e.Kind)
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Table != "" {
		fmt.Fprintf(&b, " in table %q", e.Table)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target error matches ErrBuild.
func (e *BuildError) Is(err error) bool {
	return err == ErrBuild
}

// NewBuildError returns a new BuildError.
func NewBuildError(kind, name, table, message string) *BuildError {
	return &BuildError{Kind: kind, Name: name, Table: table, Message: message}
}

// IsBuildError returns true if the error is a BuildError.
func IsBuildError(err error) bool {
	if err == nil {
		return false
	}
	var e *BuildError
	return errors.As(err, &e) || errors.Is(err, ErrBuild)
}

// ResolutionError represents a reference that could not be resolved at the
// time it was first needed.
type ResolutionError struct {
	Kind  string // What was being resolved, e.g. "local column"
	Name  string // The unresolved name
	Table string // Table the lookup ran against
	From  string // Referencing entity, e.g. the foreign key name
}

// Error returns the error string.
func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "relgraph: %s %q not found", e.Kind, e.Name)
	if e.Table != "" {
		fmt.Fprintf(&b, " in table %q", e.Table)
	}
	if e.From != "" {
		fmt.Fprintf(&b, " (referenced by %s)", e.From)
	}
	return b.String()
}

// Is reports whether the target error matches ErrResolution.
func (e *ResolutionError) Is(err error) bool {
	return err == ErrResolution
}

// NewResolutionError returns a new ResolutionError.
func NewResolutionError(kind, name, table, from string) *ResolutionError {
	return &ResolutionError{Kind: kind, Name: name, Table: table, From: from}
}

// IsResolutionError returns true if the error is a ResolutionError.
func IsResolutionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ResolutionError
	return errors.As(err, &e) || errors.Is(err, ErrResolution)
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("relgraph: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("relgraph: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target error matches ErrConfig.
func (e *ConfigError) Is(err error) bool {
	return err == ErrConfig
}

// NewConfigError returns a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e) || errors.Is(err, ErrConfig)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "relgraph: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("relgraph: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors so errors.Is and errors.As
// inspect each of them.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
