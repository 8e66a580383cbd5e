package oasguard

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags the variant of a semantic Error.
type Kind uint8

const (
	KindSchemaError Kind = iota + 1
	KindExtraParameters
	KindParameterDuplicate
	KindUnresolvableParameter
	KindDuplicateOperationID
	KindDuplicateTagName
	KindUnknownTagParent
	KindCircularTagHierarchy
	KindUnknownJSONSchemaDialect
	KindReferenceUnresolvable
)

func (k Kind) String() string {
	switch k {
	case KindSchemaError:
		return "SchemaError"
	case KindExtraParameters:
		return "ExtraParameters"
	case KindParameterDuplicate:
		return "ParameterDuplicate"
	case KindUnresolvableParameter:
		return "UnresolvableParameter"
	case KindDuplicateOperationID:
		return "DuplicateOperationID"
	case KindDuplicateTagName:
		return "DuplicateTagName"
	case KindUnknownTagParent:
		return "UnknownTagParent"
	case KindCircularTagHierarchy:
		return "CircularTagHierarchy"
	case KindUnknownJSONSchemaDialect:
		return "UnknownJSONSchemaDialect"
	case KindReferenceUnresolvable:
		return "ReferenceUnresolvable"
	default:
		return "Unknown"
	}
}

var (
	// ErrOpenAPIVersionNotFound is returned by FindVersion when no known
	// (keyword, major.minor) pair matches the document.
	ErrOpenAPIVersionNotFound = errors.New("oasguard: openapi version not found")

	// ErrValidatorDetect is returned by NewSpecValidator, wrapped together
	// with ErrOpenAPIVersionNotFound, when version detection fails.
	ErrValidatorDetect = errors.New("oasguard: unable to detect validator for document")

	// ErrUnknownJSONSchemaDialect is the sentinel wrapped by UnknownJSONSchemaDialect errors.
	ErrUnknownJSONSchemaDialect = errors.New("oasguard: unknown json schema dialect")

	// ErrReferenceUnresolvable is the sentinel wrapped by ReferenceUnresolvable errors.
	ErrReferenceUnresolvable = errors.New("oasguard: reference not resolvable")
)

// Fatal reports whether an error, once yielded from iter_errors, must
// terminate the iteration (spec §7).
func Fatal(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == KindReferenceUnresolvable
	}
	return false
}

// Error is the single tagged-variant error type every semantic validator
// yields. It carries the JSON pointer to the offending node, the schema
// pointer when applicable, a human message, and a chain of underlying causes
// for composite (meta-schema) failures.
type Error struct {
	Kind          Kind
	Message       string
	Pointer       string // JSON pointer to the offending node
	SchemaPointer string // JSON pointer into the schema, if applicable
	Causes        []*Error
	Err           error // underlying error for fatal kinds, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Pointer != "" {
		fmt.Fprintf(&b, " at %q", e.Pointer)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	for _, c := range e.Causes {
		fmt.Fprintf(&b, "\n  - %s", c.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return nil
}

func newSchemaError(pointer, schemaPointer, message string, causes []*Error) *Error {
	return &Error{Kind: KindSchemaError, Pointer: pointer, SchemaPointer: schemaPointer, Message: message, Causes: causes}
}

func newExtraParameters(pointer string, names []string) *Error {
	return &Error{Kind: KindExtraParameters, Pointer: pointer,
		Message: fmt.Sprintf("required properties without a local definition: %s", strings.Join(names, ", "))}
}

func newParameterDuplicate(pointer, name, in string) *Error {
	return &Error{Kind: KindParameterDuplicate, Pointer: pointer,
		Message: fmt.Sprintf("duplicate parameter %q in %q", name, in)}
}

func newUnresolvableParameter(pointer, name string) *Error {
	return &Error{Kind: KindUnresolvableParameter, Pointer: pointer,
		Message: fmt.Sprintf("path parameter %q is not declared in the parameters list", name)}
}

func newDuplicateOperationID(pointer, id string) *Error {
	return &Error{Kind: KindDuplicateOperationID, Pointer: pointer,
		Message: fmt.Sprintf("operationId %q is already used", id)}
}

func newDuplicateTagName(pointer, name string) *Error {
	return &Error{Kind: KindDuplicateTagName, Pointer: pointer,
		Message: fmt.Sprintf("tag name %q is declared more than once", name)}
}

func newUnknownTagParent(pointer, name, parent string) *Error {
	return &Error{Kind: KindUnknownTagParent, Pointer: pointer,
		Message: fmt.Sprintf("tag %q declares unknown parent %q", name, parent)}
}

func newCircularTagHierarchy(pointer string, cycle []string) *Error {
	return &Error{Kind: KindCircularTagHierarchy, Pointer: pointer,
		Message: fmt.Sprintf("circular tag hierarchy: %s", strings.Join(cycle, " → "))}
}

func newUnknownJSONSchemaDialect(pointer, dialect string) *Error {
	return &Error{Kind: KindUnknownJSONSchemaDialect, Pointer: pointer,
		Message: fmt.Sprintf("unknown json schema dialect %q", dialect), Err: ErrUnknownJSONSchemaDialect}
}

func newReferenceUnresolvable(pointer, ref string, cause error) *Error {
	return &Error{Kind: KindReferenceUnresolvable, Pointer: pointer,
		Message: fmt.Sprintf("unable to resolve reference %q: %v", ref, cause),
		Err:     fmt.Errorf("%w: %s", ErrReferenceUnresolvable, ref)}
}
