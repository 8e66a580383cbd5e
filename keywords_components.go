package oasguard

import "strings"

// componentsValidator walks the Components Object, recursing into every
// sub-map whose entries are schema-shaped and, for the rest, into whatever
// nested content/schema each entry carries.
type componentsValidator struct{ reg *registry }

var componentsSchemaBuckets = []string{"schemas"}
var componentsParameterBuckets = []string{"parameters", "headers"}
var componentsContentBuckets = []string{"responses", "requestBodies"}

func (v *componentsValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}

	for _, bucket := range componentsSchemaBuckets {
		if child, ok2, err := p.Child(bucket); err == nil && ok2 && child.Exists() {
			if !v.reg.get("schemas").Validate(r, child, e) {
				return false
			}
		}
	}

	for _, bucket := range componentsParameterBuckets {
		child, ok2, err := p.Child(bucket)
		if err != nil || !ok2 || !child.Exists() {
			continue
		}
		keys, _, err := child.Keys()
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		for _, key := range keys {
			item, ok3, err := child.Child(key)
			if err != nil || !ok3 {
				continue
			}
			if !v.reg.get("parameter").Validate(r, item, e) {
				return false
			}
		}
	}

	for _, bucket := range componentsContentBuckets {
		child, ok2, err := p.Child(bucket)
		if err != nil || !ok2 || !child.Exists() {
			continue
		}
		keys, _, err := child.Keys()
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		for _, key := range keys {
			item, ok3, err := child.Child(key)
			if err != nil || !ok3 {
				continue
			}
			if !v.reg.get("response").Validate(r, item, e) {
				return false
			}
		}
	}

	if !v.reg.isV2() {
		if pathItems, ok2, err := p.Child("pathItems"); err == nil && ok2 && pathItems.Exists() {
			if !v.reg.get("paths").Validate(r, pathItems, e) {
				return false
			}
		}
	}
	return true
}

// schemasValidator walks a Schemas map (components.schemas or Swagger's
// top-level definitions), skipping "x-" extension keys and handing every
// other entry to the schema validator.
type schemasValidator struct{ reg *registry }

func (v *schemasValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}
	keys, _, err := p.Keys()
	if err != nil {
		return e(asError(err))
	}
	for _, key := range keys {
		if strings.HasPrefix(key, "x-") {
			continue
		}
		child, ok2, err := p.Child(key)
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok2 {
			continue
		}
		if !v.reg.get("schema").Validate(r, child, e) {
			return false
		}
	}
	return true
}
