package oasguard

import "fmt"

// parametersValidator checks a Parameters list: every entry is validated
// individually, and (name, in) pairs must be unique (spec's
// ParameterDuplicate).
type parametersValidator struct{ reg *registry }

func (v *parametersValidator) Validate(r *run, p SchemaPath, e emit) bool {
	n, ok, err := p.Len()
	if err != nil {
		return e(asError(err))
	}
	if !ok || n < 0 {
		return true
	}
	seen := map[string]string{}
	for i := 0; i < n; i++ {
		item, ok2, err := p.ChildIndex(i)
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok2 {
			continue
		}
		node, ok3, err := item.Contents()
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok3 {
			continue
		}
		name := node.Get("name").String()
		in := node.Get("in").String()
		key := fmt.Sprintf("%s\x00%s", in, name)
		if first, dup := seen[key]; dup && first != item.Location().Pointer() {
			if !e(newParameterDuplicate(item.Location().Pointer(), name, in)) {
				return false
			}
		} else if !dup {
			seen[key] = item.Location().Pointer()
		}
		if !v.reg.get("parameter").Validate(r, item, e) {
			return false
		}
	}
	return true
}
