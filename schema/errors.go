package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with [errors.Is].
var (
	// ErrConfiguration matches every error that rejects a document.
	ErrConfiguration = errors.New("configuration error")
	// ErrFieldRequired indicates a required field is missing.
	ErrFieldRequired = errors.New("field required")
	// ErrFieldMismatch indicates an identity field conflicts with an
	// externally requested value.
	ErrFieldMismatch = errors.New("field mismatch")
	// ErrSchemaViolation indicates a structural or cross-field failure.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrUnsupportedSchema indicates no model is registered for a
	// variant/version pair.
	ErrUnsupportedSchema = errors.New("unsupported schema")
)

// ConfigurationError is implemented by all errors that reject a document.
// FieldPath locates the offending node as a dotted path such as
// "storage.disks[2].partitions[0]"; it is empty for the document root.
type ConfigurationError interface {
	error
	FieldPath() string
}

// FieldRequiredError reports a missing required field.
type FieldRequiredError struct {
	// Path is the dotted path of the missing field.
	Path string
	// Flag names the command-line flag that could have supplied a default,
	// without leading dashes. Empty when no flag applies.
	Flag string
}

// Error returns a human-readable error message.
func (e *FieldRequiredError) Error() string {
	if e.Flag == "" {
		return prefixPath(e.Path, "field is required")
	}

	return prefixPath(e.Path, fmt.Sprintf("field is required; set it in a document or pass --%s", e.Flag))
}

// FieldPath implements [ConfigurationError].
func (e *FieldRequiredError) FieldPath() string { return e.Path }

// Is reports whether target matches this error type.
func (e *FieldRequiredError) Is(target error) bool {
	return target == ErrFieldRequired || target == ErrConfiguration
}

// FieldMismatchError reports a document value that conflicts with a value
// requested on the command line.
type FieldMismatchError struct {
	// Path is the dotted path of the conflicting field.
	Path string
	// Flag names the command-line flag, without leading dashes.
	Flag string
	// Value is the value found in the document.
	Value string
	// Requested is the value passed with Flag.
	Requested string
}

// Error returns a human-readable error message.
func (e *FieldMismatchError) Error() string {
	return prefixPath(e.Path, fmt.Sprintf("documents set %q but --%s requests %q", e.Value, e.Flag, e.Requested))
}

// FieldPath implements [ConfigurationError].
func (e *FieldMismatchError) FieldPath() string { return e.Path }

// Is reports whether target matches this error type.
func (e *FieldMismatchError) Is(target error) bool {
	return target == ErrFieldMismatch || target == ErrConfiguration
}

// ViolationError reports a field that does not conform to the schema.
type ViolationError struct {
	// Cause is the underlying error, if any.
	Cause error
	// Path is the dotted path of the offending node.
	Path string
	// Message describes the failure.
	Message string
}

// Error returns a human-readable error message.
func (e *ViolationError) Error() string {
	return prefixPath(e.Path, e.Message)
}

// FieldPath implements [ConfigurationError].
func (e *ViolationError) FieldPath() string { return e.Path }

// Unwrap returns the underlying cause for error chaining.
func (e *ViolationError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ViolationError) Is(target error) bool {
	return target == ErrSchemaViolation || target == ErrConfiguration
}

// UnsupportedSchemaError reports a variant/version pair without a
// registered model.
type UnsupportedSchemaError struct {
	// Cause is the underlying error, if any.
	Cause error
	// Variant is the requested variant.
	Variant string
	// Version is the requested version.
	Version string
	// Supported lists the registered pairs as "variant version".
	Supported []string
}

// Error returns a human-readable error message.
func (e *UnsupportedSchemaError) Error() string {
	msg := fmt.Sprintf("unsupported schema: variant %q version %q", e.Variant, e.Version)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	if len(e.Supported) > 0 {
		msg += " (supported: " + strings.Join(e.Supported, ", ") + ")"
	}

	return msg
}

// FieldPath implements [ConfigurationError].
func (e *UnsupportedSchemaError) FieldPath() string { return "" }

// Unwrap returns the underlying cause for error chaining.
func (e *UnsupportedSchemaError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *UnsupportedSchemaError) Is(target error) bool {
	return target == ErrUnsupportedSchema || target == ErrConfiguration
}

func prefixPath(path, msg string) string {
	if path == "" {
		return msg
	}

	return path + ": " + msg
}

// JoinKey returns the path of the field key below path.
func JoinKey(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

// JoinIndex returns the path of element i of the list at path.
func JoinIndex(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
