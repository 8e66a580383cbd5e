package oasguard

// SchemaFailure is one leaf or branch of a JSON Schema evaluation failure,
// engine-agnostic so both the native and alternate JsonSchemaEngine
// backends can report through the same shape (spec §6.3).
type SchemaFailure struct {
	InstancePointer string
	SchemaPointer   string
	Message         string
	Causes          []SchemaFailure
}

// CompiledSchema is a meta-schema or document schema compiled once and
// evaluated against many instances.
type CompiledSchema interface {
	Validate(instance []byte) (bool, []SchemaFailure)
}

// JSONSchemaEngine is the pluggable JSON Schema evaluation backend spec §6.3
// describes: compile a schema document (optionally pinned to a dialect) and
// hand back something that can check instances against it. oasguard ships
// two implementations (engine.Native, engine.Alt); callers may supply their
// own.
type JSONSchemaEngine interface {
	Compile(schema []byte, dialect string) (CompiledSchema, error)
}

func schemaErrorFromFailures(pointer, schemaPointer string, failures []SchemaFailure) *Error {
	causes := make([]*Error, 0, len(failures))
	for _, f := range failures {
		causes = append(causes, schemaErrorFromFailure(f))
	}
	msg := ""
	if len(failures) == 1 {
		msg = failures[0].Message
	}
	return newSchemaError(pointer, schemaPointer, msg, causes)
}

func schemaErrorFromFailure(f SchemaFailure) *Error {
	causes := make([]*Error, 0, len(f.Causes))
	for _, c := range f.Causes {
		causes = append(causes, schemaErrorFromFailure(c))
	}
	return newSchemaError(f.InstancePointer, f.SchemaPointer, f.Message, causes)
}
