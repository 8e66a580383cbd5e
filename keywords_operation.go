package oasguard

// operationValidator checks one Operation Object: operationId uniqueness
// across the whole document, its own parameters, and its responses /
// request body schemas.
type operationValidator struct{ reg *registry }

func (v *operationValidator) Validate(r *run, p SchemaPath, e emit) bool {
	node, ok, err := p.resolve()
	if err != nil {
		return e(asError(err))
	}
	if !ok || !node.value.IsObject() {
		return true
	}

	if id := node.value.Get("operationId"); id.Exists() && id.String() != "" {
		ptr := node.loc.Pointer()
		if first, seen := r.operationIDsSeen[id.String()]; seen && first != ptr {
			if !e(newDuplicateOperationID(ptr, id.String())) {
				return false
			}
		} else if !seen {
			r.operationIDsSeen[id.String()] = ptr
		}
	}

	if params, ok2, err := p.Child("parameters"); err == nil && ok2 && params.Exists() {
		if !v.reg.get("parameters").Validate(r, params, e) {
			return false
		}
	}

	if v.reg.isV2() {
		// Swagger 2.0 has no requestBody; body is carried as an "in": "body"
		// parameter, already handled by the parameters pass above.
	} else if body, ok2, err := p.Child("requestBody"); err == nil && ok2 && body.Exists() {
		if content, ok3, err := body.Child("content"); err == nil && ok3 && content.Exists() {
			if !v.reg.get("content").Validate(r, content, e) {
				return false
			}
		}
	}

	if responses, ok2, err := p.Child("responses"); err == nil && ok2 && responses.Exists() {
		if !v.reg.get("responses").Validate(r, responses, e) {
			return false
		}
	}
	return true
}
