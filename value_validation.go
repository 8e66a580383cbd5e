package oasguard

// validateValueAgainstSchema compiles schemaJSON through reg's configured
// JsonSchemaEngine and checks valueJSON against it, emitting a SchemaError
// rooted at instancePointer (with schemaPointer naming where the failing
// schema lives) on mismatch. Used for "default"-vs-schema checks (spec
// §4.4 Schema step 8, §4.4 Parameter for Swagger 2.0) rather than the
// whole-document meta-schema pass rootValidator already runs.
func validateValueAgainstSchema(reg *registry, schemaJSON, valueJSON string, instancePointer, schemaPointer string, e emit) bool {
	if reg.engine == nil {
		return true
	}
	compiled, err := reg.engine.Compile([]byte(schemaJSON), reg.metaDialect)
	if err != nil {
		// A schema that can't compile is skipped: its default is not
		// checked and no error is reported for it here.
		return true
	}
	valid, failures := compiled.Validate([]byte(valueJSON))
	if valid {
		return true
	}
	return e(schemaErrorFromFailures(instancePointer, schemaPointer, failures))
}
