// Package scribe provides custom error types for better error handling and reporting.
package scribe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRegistryFrozen is returned when a registry is modified after the document was finalized.
	ErrRegistryFrozen = errors.New("registry is frozen")
	// ErrDocumentFinalized is returned when content is added after a successful Finalize.
	ErrDocumentFinalized = errors.New("document already finalized")
	// ErrNotFinalized is wrapped by WriteError when Serialize receives an unresolved document.
	ErrNotFinalized = errors.New("document has not been finalized")
)

// DuplicateStyleError is returned when a style id is registered twice
type DuplicateStyleError struct {
	ID StyleID
}

func (e *DuplicateStyleError) Error() string {
	return fmt.Sprintf("style %q is already defined", e.ID)
}

// UnknownStyleError represents a reference to a style that is not registered.
// ReferencedBy is the style whose basedOn names ID, or empty for a direct reference.
type UnknownStyleError struct {
	ID           StyleID
	ReferencedBy StyleID
	Path         string
}

func (e *UnknownStyleError) Error() string {
	msg := fmt.Sprintf("unknown style %q", e.ID)
	if e.ReferencedBy != "" {
		msg = fmt.Sprintf("unknown style %q (basedOn of %q)", e.ID, e.ReferencedBy)
	}
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

// CyclicStyleError is returned when a basedOn chain revisits a style
type CyclicStyleError struct {
	Chain []StyleID
	Path  string
}

func (e *CyclicStyleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		parts[i] = string(id)
	}
	msg := "cyclic style chain: " + strings.Join(parts, " -> ")
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

// DuplicateNumberingError is returned when a numbering reference is registered twice
type DuplicateNumberingError struct {
	Reference string
}

func (e *DuplicateNumberingError) Error() string {
	return fmt.Sprintf("numbering %q is already defined", e.Reference)
}

// UnknownNumberingError represents a citation of an unregistered numbering reference
type UnknownNumberingError struct {
	Reference string
	Path      string
}

func (e *UnknownNumberingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: unknown numbering %q", e.Path, e.Reference)
	}
	return fmt.Sprintf("unknown numbering %q", e.Reference)
}

// InvalidPageBreakError is returned for a page-break-only paragraph that carries runs
type InvalidPageBreakError struct {
	Path string
	Runs int
}

func (e *InvalidPageBreakError) Error() string {
	return fmt.Sprintf("%s: page break paragraph must not have runs (has %d)", e.Path, e.Runs)
}

// EmptyParagraphError is returned for a paragraph with no runs that is not a page break
type EmptyParagraphError struct {
	Path string
}

func (e *EmptyParagraphError) Error() string {
	return fmt.Sprintf("%s: paragraph has no runs", e.Path)
}

// InvalidValueError represents a field holding a value the container cannot express
type InvalidValueError struct {
	Path    string
	Field   string
	Value   interface{}
	Message string
}

func (e *InvalidValueError) Error() string {
	loc := e.Field
	if e.Path != "" {
		loc = e.Path + "." + e.Field
	}
	return fmt.Sprintf("invalid %s %v: %s", loc, e.Value, e.Message)
}

// NoActiveSectionError is returned by Append before any AddSection call
type NoActiveSectionError struct{}

func (e *NoActiveSectionError) Error() string {
	return "no active section: call AddSection before Append"
}

// ValidationError collects every structural defect found by Finalize
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation error"
	}
	if len(e.Errors) == 1 {
		return "validation error: " + e.Errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation errors:", len(e.Errors)))
	for i, err := range e.Errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

func (e *ValidationError) add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *ValidationError) err() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// WriteError wraps a packaging failure raised at the serialization boundary
type WriteError struct {
	Packager string
	Cause    error
}

func (e *WriteError) Error() string {
	if e.Packager != "" {
		return fmt.Sprintf("write error (%s): %v", e.Packager, e.Cause)
	}
	return fmt.Sprintf("write error: %v", e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Retryable reports that the failure is independent of tree validity.
func (e *WriteError) Retryable() bool {
	return !errors.Is(e.Cause, ErrNotFinalized)
}

// RecoverError converts a panic recovery value to an error
func RecoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return fmt.Errorf("panic recovered: %w", v)
	case string:
		return fmt.Errorf("panic recovered: %s", v)
	default:
		return fmt.Errorf("panic recovered: %v", v)
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsWriteError checks if an error is a write error
func IsWriteError(err error) bool {
	var target *WriteError
	return errors.As(err, &target)
}

// ValidationErrors returns the individual defects of a validation error, or nil.
func ValidationErrors(err error) []error {
	var target *ValidationError
	if errors.As(err, &target) {
		return target.Errors
	}
	return nil
}
