// Package engine implements the two JSON Schema evaluation backends
// oasguard ships (spec §6.3): a native backend on
// santhosh-tekuri/jsonschema/v5 and an alternate backend on
// kaptinlin/jsonschema, selected at runtime by
// OPENAPI_SPEC_VALIDATOR_SCHEMA_VALIDATOR_BACKEND. The package has no
// dependency on oasguard itself so the two can be wired together from the
// outside (cmd/oasguard, or any caller of the library) without an import
// cycle.
package engine

import "fmt"

// Failure is one leaf or branch of a schema evaluation failure.
type Failure struct {
	InstancePointer string
	SchemaPointer   string
	Message         string
	Causes          []Failure
}

// Result is the outcome of validating one instance against one compiled
// schema.
type Result struct {
	Valid    bool
	Failures []Failure
}

// Schema is a schema compiled once and evaluated against many instances.
type Schema interface {
	Validate(instance []byte) Result
}

// Engine compiles a raw JSON Schema document, optionally pinned to dialect
// (a JSON Schema $schema URI; empty selects the engine's default).
type Engine interface {
	Compile(schema []byte, dialect string) (Schema, error)
}

const (
	BackendNative = "native"
	BackendAlt    = "alt"
	BackendAuto   = "auto"
)

// Select constructs the Engine named by backend. "auto" uses the native
// backend: it is the faster of the two and covers every dialect oasguard
// needs (draft-04 through 2020-12).
func Select(backend string) (Engine, error) {
	switch backend {
	case "", BackendAuto, BackendNative:
		return NewNative(), nil
	case BackendAlt:
		return NewAlt(), nil
	default:
		return nil, fmt.Errorf("engine: unknown backend %q", backend)
	}
}
