package oasguard

import "github.com/tidwall/sjson"

// parameterValidator checks one Parameter Object's schema (3.x) or, for
// Swagger 2.0 body/non-body parameters, its inline type/schema.
type parameterValidator struct{ reg *registry }

// v2SchemaKeywords lists the JSON-Schema-shaped keys a Swagger 2.0
// non-body parameter carries as siblings of "in"/"name"/"required"
// instead of nested under a "schema" key.
var v2SchemaKeywords = []string{
	"type", "format", "items", "enum", "minimum", "maximum",
	"exclusiveMinimum", "exclusiveMaximum", "minLength", "maxLength",
	"pattern", "maxItems", "minItems", "uniqueItems", "multipleOf",
}

func (v *parameterValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}

	if schema, ok2, err := p.Child("schema"); err == nil && ok2 && schema.Exists() {
		if !v.reg.get("schema").Validate(r, schema, e) {
			return false
		}
		return true
	}

	if content, ok2, err := p.Child("content"); err == nil && ok2 && content.Exists() {
		if !v.reg.get("content").Validate(r, content, e) {
			return false
		}
		return true
	}

	// Swagger 2.0 non-body parameters have no "schema" wrapper: "default",
	// "type", "items", "enum" and the rest of the JSON Schema-shaped
	// keywords sit directly on the parameter object. Validate "default"
	// against a schema built from those sibling keywords rather than
	// against a nested schema.
	if v.reg.isV2() {
		if !v.checkV2Default(node, e) {
			return false
		}
	}
	return true
}

func (v *parameterValidator) checkV2Default(node resolvedNode, e emit) bool {
	def := node.value.Get("default")
	if !def.Exists() {
		return true
	}
	schema := "{}"
	for _, kw := range v2SchemaKeywords {
		if val := node.value.Get(kw); val.Exists() {
			var err error
			schema, err = sjson.SetRaw(schema, kw, val.Raw)
			if err != nil {
				return true
			}
		}
	}
	return validateValueAgainstSchema(v.reg, schema, def.Raw, node.loc.Pointer()+"/default", node.loc.Pointer(), e)
}
