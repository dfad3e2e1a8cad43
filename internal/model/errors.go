package model

import (
	"fmt"
	"sort"
	"strings"
)

// Reason classifies a single field-level validation failure.
type Reason string

// Field error reasons.
const (
	ReasonMissing          Reason = "missing"
	ReasonInvalidType      Reason = "invalid_type"
	ReasonInvalidEnumValue Reason = "invalid_enum_value"
	ReasonInvalidFormat    Reason = "invalid_format"
	ReasonInconsistent     Reason = "inconsistent"
)

// FieldError is one node of a field error tree: either a leaf failure
// (Reason set) or a subtree mirroring a nested entity (Nested set).
type FieldError struct {
	Reason  Reason      `json:"reason,omitempty"`
	Message string      `json:"message,omitempty"`
	Nested  FieldErrors `json:"nested,omitempty"`
}

// FieldErrors is a validation error report keyed by field name. Its shape
// mirrors the nesting of the raw input; list entries are keyed by index.
// Validation always returns the complete tree, never just the first
// violation.
type FieldErrors map[string]*FieldError

// Add records a leaf failure for a field.
func (e FieldErrors) Add(field string, reason Reason, message string) {
	e[field] = &FieldError{Reason: reason, Message: message}
}

// Merge attaches a nested entity's error tree under the parent field.
// Empty subtrees are dropped.
func (e FieldErrors) Merge(field string, nested FieldErrors) {
	if len(nested) == 0 {
		return
	}
	e[field] = &FieldError{Nested: nested}
}

// Empty reports whether the tree holds no errors.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Flatten returns dotted path -> reason for every leaf in the tree.
// Useful for reporting and tests.
func (e FieldErrors) Flatten() map[string]Reason {
	out := make(map[string]Reason)
	e.flattenInto("", out)
	return out
}

func (e FieldErrors) flattenInto(prefix string, out map[string]Reason) {
	for field, fe := range e {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		if fe.Nested != nil {
			fe.Nested.flattenInto(path, out)
			continue
		}
		out[path] = fe.Reason
	}
}

// Error implements error. Paths are sorted so the message is stable.
func (e FieldErrors) Error() string {
	flat := e.Flatten()
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", path, flat[path]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ParseErrorKind tags a structural failure of an input XML document.
type ParseErrorKind string

// Parse error kinds.
const (
	ParseMalformed           ParseErrorKind = "malformed"
	ParseWrongSchema         ParseErrorKind = "wrong_schema"
	ParseMissingElement      ParseErrorKind = "missing_element"
	ParseUnsupportedEncoding ParseErrorKind = "unsupported_encoding"
)

// ParseError describes why an XML document could not be decoded. It is the
// only error the parser returns; validation errors never appear here.
type ParseError struct {
	Kind    ParseErrorKind
	Path    string // element path for missing_element, otherwise optional
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (%v)", e.Cause)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a parse error.
func NewParseError(kind ParseErrorKind, path, message string, cause error) *ParseError {
	return &ParseError{Kind: kind, Path: path, Message: message, Cause: cause}
}

// NewMissingElement creates a missing_element error for an element path.
func NewMissingElement(path string) *ParseError {
	return &ParseError{Kind: ParseMissingElement, Path: path, Message: "required element not found"}
}
