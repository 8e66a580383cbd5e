package oasguard

import "strings"

// responsesValidator walks a Responses Object, visiting each status-code
// (or "default") entry in document order.
type responsesValidator struct{ reg *registry }

func (v *responsesValidator) Validate(r *run, p SchemaPath, e emit) bool {
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
		resp, ok2, err := p.Child(key)
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok2 {
			continue
		}
		if !v.reg.get("response").Validate(r, resp, e) {
			return false
		}
	}
	return true
}

// responseValidator checks one Response Object's content (3.x) or direct
// schema (2.0).
type responseValidator struct{ reg *registry }

func (v *responseValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}
	if v.reg.isV2() {
		if schema, ok2, err := p.Child("schema"); err == nil && ok2 && schema.Exists() {
			return v.reg.get("schema").Validate(r, schema, e)
		}
		return true
	}
	if content, ok2, err := p.Child("content"); err == nil && ok2 && content.Exists() {
		return v.reg.get("content").Validate(r, content, e)
	}
	return true
}

// contentValidator walks a Content map (media type -> Media Type Object).
type contentValidator struct{ reg *registry }

func (v *contentValidator) Validate(r *run, p SchemaPath, e emit) bool {
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
		mt, ok2, err := p.Child(key)
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok2 {
			continue
		}
		if !v.reg.get("mediatype").Validate(r, mt, e) {
			return false
		}
	}
	return true
}

// mediaTypeValidator checks a Media Type Object's schema.
type mediaTypeValidator struct{ reg *registry }

func (v *mediaTypeValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}
	if schema, ok2, err := p.Child("schema"); err == nil && ok2 && schema.Exists() {
		return v.reg.get("schema").Validate(r, schema, e)
	}
	return true
}
