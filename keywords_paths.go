package oasguard

import "strings"

// pathsValidator walks the Paths (or Webhooks) Object, visiting each path
// item in document order (spec §5: traversal order must be deterministic).
type pathsValidator struct{ reg *registry }

func (v *pathsValidator) Validate(r *run, p SchemaPath, e emit) bool {
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
		if !v.reg.get("path").Validate(r, child, e) {
			return false
		}
	}
	return true
}
