package modelkit

import (
	"errors"
	"fmt"
	"strings"
)

// Violation is a single validation entry: a dotted/bracketed field path and a
// human-readable description of what was wrong with the value found there.
type Violation struct {
	Path    string // e.g. deviceConfig.ports[2].name
	Message string
}

// ValidationError aggregates every violation found during one full walk of an
// object graph. Field-level checks never fail fast; the top-level entry point
// raises a single ValidationError carrying the violations in the order they
// were recorded, without deduplication.
type ValidationError struct {
	Violations []Violation
}

// Error summarizes the first few violations.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(e.Violations)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Violations[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidation extracts a *ValidationError from err using errors.As.
func AsValidation(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// TypeResolutionError indicates a declared type name could not be resolved
// among the registered generated types. It signals a generator/metadata
// mismatch, never a user-input problem, and is therefore fatal.
type TypeResolutionError struct {
	TypeName string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("modelkit: unknown type %q: generated metadata and registry disagree", e.TypeName)
}

// UnsupportedEncodingError indicates a serialization format outside the
// supported set (JSON, YAML, map) was requested.
type UnsupportedEncodingError struct {
	Encoding Encoding
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("modelkit: encoding %q not supported", string(e.Encoding))
}

// Sentinel errors for use with errors.Is.
var (
	// ErrUnknownField is returned when a caller reads or writes a field name
	// that is absent from the type's schema metadata.
	ErrUnknownField = errors.New("field not declared in schema metadata")

	// ErrOutOfRange is returned by container index and name lookups that find
	// no matching item.
	ErrOutOfRange = errors.New("index out of range")

	// ErrItemType is returned when an item of the wrong generated type is
	// placed into a container.
	ErrItemType = errors.New("item type mismatch")
)
