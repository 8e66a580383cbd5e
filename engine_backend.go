package oasguard

import oengine "github.com/chanced/oasguard/engine"

// NewEngine wires up the JsonSchemaEngine named by backend ("auto",
// "native", or "alt"; see Settings.SchemaValidatorBackend) from the
// standalone engine package, adapting its engine-agnostic result shape into
// this package's Error-compatible one.
func NewEngine(backend string) (JSONSchemaEngine, error) {
	inner, err := oengine.Select(backend)
	if err != nil {
		return nil, err
	}
	return engineAdapter{inner: inner}, nil
}

type engineAdapter struct {
	inner oengine.Engine
}

func (a engineAdapter) Compile(schema []byte, dialect string) (CompiledSchema, error) {
	s, err := a.inner.Compile(schema, dialect)
	if err != nil {
		return nil, err
	}
	return compiledAdapter{inner: s}, nil
}

type compiledAdapter struct {
	inner oengine.Schema
}

func (c compiledAdapter) Validate(instance []byte) (bool, []SchemaFailure) {
	res := c.inner.Validate(instance)
	return res.Valid, convertEngineFailures(res.Failures)
}

func convertEngineFailures(in []oengine.Failure) []SchemaFailure {
	out := make([]SchemaFailure, 0, len(in))
	for _, f := range in {
		out = append(out, SchemaFailure{
			InstancePointer: f.InstancePointer,
			SchemaPointer:   f.SchemaPointer,
			Message:         f.Message,
			Causes:          convertEngineFailures(f.Causes),
		})
	}
	return out
}
