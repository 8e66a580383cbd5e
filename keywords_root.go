package oasguard

// rootValidator is the entry point into a document: it runs the
// version-specific meta-schema check over the whole tree, then dispatches
// into paths/webhooks, components, and tags (spec §4.1, Root validator).
type rootValidator struct{ reg *registry }

func (v *rootValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok {
		return true
	}

	if v.reg.engine != nil {
		compiled, err := v.reg.engine.Compile(v.reg.metaSchema, v.reg.metaDialect)
		if err != nil {
			if !e(newSchemaError("", "", err.Error(), nil)) {
				return false
			}
		} else {
			valid, failures := compiled.Validate([]byte(node.value.Raw))
			if !valid {
				if !e(schemaErrorFromFailures("", "", failures)) {
					return false
				}
			}
		}
	}

	if dialect := node.value.Get("jsonSchemaDialect"); dialect.Exists() {
		r.dialect = dialect.String()
		if !knownJSONSchemaDialect(r.dialect) {
			if !e(newUnknownJSONSchemaDialect(node.loc.Pointer(), r.dialect)) {
				return false
			}
		}
	}

	if paths, ok2, err := p.Child("paths"); err == nil && ok2 && paths.Exists() {
		if !v.reg.get("paths").Validate(r, paths, e) {
			return false
		}
	}
	if webhooks, ok2, err := p.Child("webhooks"); err == nil && ok2 && webhooks.Exists() {
		if !v.reg.get("paths").Validate(r, webhooks, e) {
			return false
		}
	}
	if components, ok2, err := p.Child("components"); err == nil && ok2 && components.Exists() {
		if !v.reg.get("components").Validate(r, components, e) {
			return false
		}
	} else if defs, ok3, err := p.Child("definitions"); err == nil && ok3 && defs.Exists() {
		if !v.reg.get("schemas").Validate(r, defs, e) {
			return false
		}
	}
	if tags, ok2, err := p.Child("tags"); err == nil && ok2 && tags.Exists() {
		if !v.reg.get("tags").Validate(r, tags, e) {
			return false
		}
	}
	return true
}

func knownJSONSchemaDialect(dialect string) bool {
	switch dialect {
	case "https://json-schema.org/draft/2020-12/schema",
		"https://json-schema.org/draft/2019-09/schema",
		"http://json-schema.org/draft-07/schema#",
		"http://json-schema.org/draft-06/schema#",
		"http://json-schema.org/draft-04/schema#":
		return true
	default:
		return false
	}
}

func asError(err error) *Error {
	if re, ok := err.(*Error); ok {
		return re
	}
	return newReferenceUnresolvable("", "", err)
}
