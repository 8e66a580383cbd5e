package oasguard

import "github.com/tidwall/gjson"

// schemaValidator is the keyword validator for Schema Objects: it checks
// the JSON Schema dialect declared by $schema, flags required properties
// that have no reachable local definition (spec's ExtraParameters), checks
// a schema's own "default" against itself, and recurses into every
// applicator keyword a Schema Object can carry.
type schemaValidator struct{ reg *registry }

// Validate is the KeywordValidator entry point: every external caller (the
// parameter/response/mediatype/schemas validators) reaches a
// schema at its own top level, so requireProperties is always true here.
// Recursion into a schema's own children goes through validateSchema
// directly with requireProperties false, since only the schema that
// actually declares "required" owns the ExtraParameters report for it.
func (v *schemaValidator) Validate(r *run, p SchemaPath, e emit) bool {
	return v.validateSchema(r, p, e, true)
}

func (v *schemaValidator) validateSchema(r *run, p SchemaPath, e emit, requireProperties bool) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok {
		return true
	}
	if node.value.Type == gjson.True || node.value.Type == gjson.False {
		// boolean schemas ("additionalProperties": true/false) have no
		// children to walk.
		return true
	}
	if !node.value.IsObject() {
		return true
	}

	// A schema reached more than once in the same pass (self-referential
	// $ref such as A.properties.self -> #/components/schemas/A, or simply
	// the same definition shared from two call sites) is validated once;
	// revisiting it would recurse forever on a cycle and would otherwise
	// produce one report per occurrence instead of per distinct subschema.
	key := nodeKey(node.loc)
	if r.schemaNodesVisited[key] {
		return true
	}
	r.schemaNodesVisited[key] = true

	if id := node.value.Get("$id"); id.Exists() {
		r.schemaIDsVisited[id.String()] = true
	}
	if dialect := node.value.Get("$schema"); dialect.Exists() {
		if !knownJSONSchemaDialect(dialect.String()) {
			if !e(newUnknownJSONSchemaDialect(node.loc.Pointer(), dialect.String())) {
				return false
			}
		}
	}

	if requireProperties {
		if !v.checkRequiredReachable(p, node, e) {
			return false
		}
	}

	if !v.checkDefault(node, e) {
		return false
	}

	if props, ok2, err := p.Child("properties"); err == nil && ok2 && props.Exists() {
		keys, _, err := props.Keys()
		if err == nil {
			for _, key := range keys {
				child, ok3, err := props.Child(key)
				if err == nil && ok3 {
					if !v.validateSchema(r, child, e, false) {
						return false
					}
				}
			}
		}
	}

	if ap, ok2, err := p.Child("additionalProperties"); err == nil && ok2 && ap.Exists() {
		if !v.validateSchema(r, ap, e, false) {
			return false
		}
	}

	if items, ok2, err := p.Child("items"); err == nil && ok2 && items.Exists() {
		if n, okLen, _ := items.Len(); okLen && n >= 0 {
			for i := 0; i < n; i++ {
				child, ok3, err := items.ChildIndex(i)
				if err == nil && ok3 {
					if !v.validateSchema(r, child, e, false) {
						return false
					}
				}
			}
		} else if !v.validateSchema(r, items, e, false) {
			return false
		}
	}

	for _, kw := range []string{"prefixItems"} {
		if arr, ok2, err := p.Child(kw); err == nil && ok2 && arr.Exists() {
			n, _, _ := arr.Len()
			for i := 0; i < n; i++ {
				child, ok3, err := arr.ChildIndex(i)
				if err == nil && ok3 {
					if !v.validateSchema(r, child, e, false) {
						return false
					}
				}
			}
		}
	}

	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		arr, ok2, err := p.Child(kw)
		if err != nil || !ok2 || !arr.Exists() {
			continue
		}
		n, _, _ := arr.Len()
		for i := 0; i < n; i++ {
			child, ok3, err := arr.ChildIndex(i)
			if err == nil && ok3 {
				if !v.validateSchema(r, child, e, false) {
					return false
				}
			}
		}
	}

	for _, kw := range []string{"not", "contains", "propertyNames", "unevaluatedProperties", "unevaluatedItems"} {
		if child, ok2, err := p.Child(kw); err == nil && ok2 && child.Exists() {
			if !v.validateSchema(r, child, e, false) {
				return false
			}
		}
	}

	return true
}

// checkRequiredReachable flags names in "required" that are reachable
// nowhere in this schema's own "properties" or through its "allOf"
// branches. Gated on "allOf" presence, not "additionalProperties": if
// "allOf" is absent the schema's own "properties" is the complete picture
// and extra is always empty, matching the dispatcher's "if allOf is
// present ... else extra = []" step. Reachable names are collected the way
// _collect_properties does, recursing through allOf/anyOf/oneOf/items/not
// so a branch that itself fans out through another applicator still
// contributes the property names it defines.
func (v *schemaValidator) checkRequiredReachable(p SchemaPath, node resolvedNode, e emit) bool {
	allOf, hasAllOf, err := p.Child("allOf")
	if err != nil || !hasAllOf || !allOf.Exists() {
		return true
	}
	required := node.value.Get("required")
	if !required.Exists() || !required.IsArray() {
		return true
	}

	defined := map[string]bool{}
	node.value.Get("properties").ForEach(func(k, _ gjson.Result) bool {
		defined[k.String()] = true
		return true
	})
	visited := map[string]bool{nodeKey(node.loc): true}
	n, _, _ := allOf.Len()
	for i := 0; i < n; i++ {
		if child, ok, err := allOf.ChildIndex(i); err == nil && ok {
			collectReachableProperties(child, defined, visited)
		}
	}

	var missing []string
	required.ForEach(func(_, name gjson.Result) bool {
		if !defined[name.String()] {
			missing = append(missing, name.String())
		}
		return true
	})
	if len(missing) > 0 {
		return e(newExtraParameters(node.loc.Pointer(), missing))
	}
	return true
}

// collectReachableProperties gathers every property name defined directly
// by p's "properties", or by any schema reachable through its
// allOf/anyOf/oneOf/items/not applicators, into defined. visited guards
// against the same $ref cycle this function would otherwise walk forever.
func collectReachableProperties(p SchemaPath, defined map[string]bool, visited map[string]bool) {
	node, ok, err := p.resolve()
	if err != nil || !ok || !node.value.IsObject() {
		return
	}
	key := nodeKey(node.loc)
	if visited[key] {
		return
	}
	visited[key] = true

	node.value.Get("properties").ForEach(func(k, _ gjson.Result) bool {
		defined[k.String()] = true
		return true
	})

	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		arr, ok2, err := p.Child(kw)
		if err != nil || !ok2 || !arr.Exists() {
			continue
		}
		n, _, _ := arr.Len()
		for i := 0; i < n; i++ {
			child, ok3, err := arr.ChildIndex(i)
			if err == nil && ok3 {
				collectReachableProperties(child, defined, visited)
			}
		}
	}

	for _, kw := range []string{"items", "not"} {
		if child, ok2, err := p.Child(kw); err == nil && ok2 && child.Exists() {
			collectReachableProperties(child, defined, visited)
		}
	}
}

// checkDefault validates a schema's own "default" value against itself,
// per the dispatcher's rule: run the check when "default" differs from
// null, or when "nullable" is not explicitly true (a schema that opts
// into "nullable": true is allowed a literal null default without it
// having to additionally satisfy "type").
func (v *schemaValidator) checkDefault(node resolvedNode, e emit) bool {
	def := node.value.Get("default")
	if !def.Exists() {
		return true
	}
	if def.Type == gjson.Null && node.value.Get("nullable").Bool() {
		return true
	}
	return validateValueAgainstSchema(v.reg, node.value.Raw, def.Raw, node.loc.Pointer()+"/default", node.loc.Pointer(), e)
}
