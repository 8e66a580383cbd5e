package oasguard

import (
	"regexp"
	"strings"
)

var pathParamPattern = regexp.MustCompile(`\{([^{}]+)\}`)

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace", "query"}

// pathValidator checks one Path Item Object: it merges path-level
// parameters into every operation, confirms every {param} token in the
// path template resolves to a declared path parameter (spec's
// UnresolvableParameter), and recurses into each operation.
type pathValidator struct{ reg *registry }

func lastPointerToken(ptr string) string {
	idx := strings.LastIndex(ptr, "/")
	if idx < 0 {
		return ptr
	}
	tok := ptr[idx+1:]
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

func (v *pathValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}

	template := lastPointerToken(p.Location().Pointer())
	declared := map[string]bool{}

	if params, ok2, err := p.Child("parameters"); err == nil && ok2 && params.Exists() {
		names, _ := pathParameterNames(params)
		for n := range names {
			declared[n] = true
		}
		if !v.reg.get("parameters").Validate(r, params, e) {
			return false
		}
	}

	keys, _, err := p.Keys()
	if err != nil {
		return e(asError(err))
	}
	for _, key := range keys {
		if key == "parameters" || strings.HasPrefix(key, "x-") || !isHTTPMethod(key) {
			continue
		}
		op, ok2, err := p.Child(key)
		if err != nil {
			if !e(asError(err)) {
				return false
			}
			continue
		}
		if !ok2 {
			continue
		}
		opDeclared := map[string]bool{}
		for n := range declared {
			opDeclared[n] = true
		}
		if opParams, ok3, err := op.Child("parameters"); err == nil && ok3 && opParams.Exists() {
			names, _ := pathParameterNames(opParams)
			for n := range names {
				opDeclared[n] = true
			}
		}
		for _, tok := range pathParamPattern.FindAllStringSubmatch(template, -1) {
			name := strings.TrimSuffix(strings.TrimPrefix(tok[1], "*"), "*")
			if !opDeclared[name] {
				if !e(newUnresolvableParameter(op.Location().Pointer(), name)) {
					return false
				}
			}
		}
		if !v.reg.get("operation").Validate(r, op, e) {
			return false
		}
	}
	return true
}

func isHTTPMethod(key string) bool {
	for _, m := range httpMethods {
		if key == m {
			return true
		}
	}
	return false
}

// pathParameterNames returns the set of parameter names declared with
// "in": "path" in a parameters array (in-place literals or $ref'd entries).
func pathParameterNames(params SchemaPath) (map[string]bool, error) {
	names := map[string]bool{}
	n, ok, err := params.Len()
	if err != nil || !ok {
		return names, err
	}
	for i := 0; i < n; i++ {
		item, ok2, err := params.ChildIndex(i)
		if err != nil || !ok2 {
			continue
		}
		v, ok3, err := item.Contents()
		if err != nil || !ok3 {
			continue
		}
		if v.Get("in").String() != "path" {
			continue
		}
		names[v.Get("name").String()] = true
	}
	return names, nil
}
