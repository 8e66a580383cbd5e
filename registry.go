package oasguard

import "github.com/chanced/oasguard/metaschema"

// emit reports a single semantic error found during a validation pass. It
// returns false when the caller must stop walking immediately (a fatal
// error was just emitted), mirroring the early-exit half of spec §7.
type emit func(*Error) bool

// KeywordValidator checks one node of the document tree and recurses into
// whatever children are relevant to it, per spec §4.1. Each validator only
// knows how to do its own job; the registry is what lets, say, the path
// validator reach the parameter validator without every validator
// importing every other one directly.
type KeywordValidator interface {
	Validate(r *run, p SchemaPath, e emit) bool
}

// registry is the self-referential KeywordValidator table described in
// spec §4.1: validators are all constructed up front by newRegistry, once
// per version/engine pairing,
// and hold a pointer back to the registry so they can look up collaborators
// by name instead of the tree being wired together by hand.
type registry struct {
	version     SpecVersion
	engine      JSONSchemaEngine
	metaSchema  []byte
	metaDialect string
	forms       map[string]KeywordValidator
}

// newRegistry builds the validator table for version, loading its embedded
// meta-schema and wiring engine as the JsonSchemaEngine every validator
// uses for schema-shaped checks.
func newRegistry(version SpecVersion, engine JSONSchemaEngine) (*registry, error) {
	schema, dialect, err := metaschema.ForVersion(version.Keyword, version.Major, version.Minor)
	if err != nil {
		return nil, err
	}
	reg := &registry{version: version, engine: engine, metaSchema: schema, metaDialect: dialect, forms: make(map[string]KeywordValidator)}
	reg.forms["root"] = &rootValidator{reg: reg}
	reg.forms["paths"] = &pathsValidator{reg: reg}
	reg.forms["path"] = &pathValidator{reg: reg}
	reg.forms["operation"] = &operationValidator{reg: reg}
	reg.forms["parameters"] = &parametersValidator{reg: reg}
	reg.forms["parameter"] = &parameterValidator{reg: reg}
	reg.forms["responses"] = &responsesValidator{reg: reg}
	reg.forms["response"] = &responseValidator{reg: reg}
	reg.forms["content"] = &contentValidator{reg: reg}
	reg.forms["mediatype"] = &mediaTypeValidator{reg: reg}
	reg.forms["components"] = &componentsValidator{reg: reg}
	reg.forms["schemas"] = &schemasValidator{reg: reg}
	reg.forms["schema"] = &schemaValidator{reg: reg}
	reg.forms["tags"] = &tagsValidator{reg: reg}
	return reg, nil
}

func (reg *registry) get(name string) KeywordValidator { return reg.forms[name] }

// isV2 reports whether this registry is validating a Swagger 2.0 document,
// the one version whose shape diverges enough to need its own branches
// (parameters carry "in": "body" schemas directly, paths live under
// "basePath", security definitions are singular).
func (reg *registry) isV2() bool { return reg.version.Equal(V2) }

// supportsTagHierarchy reports whether "parent" on a tag object is
// meaningful for this version (introduced in 3.2).
func (reg *registry) supportsTagHierarchy() bool { return reg.version.Equal(V32) }
