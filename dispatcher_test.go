package oasguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T, doc string) *SpecValidator {
	t.Helper()
	sv, err := NewSpecValidator([]byte(doc), "mem://root", nil, SettingsFromEnv())
	require.NoError(t, err)
	return sv
}

func TestSpecValidatorValidDocumentHasNoErrors(t *testing.T) {
	sv := newTestValidator(t, samplePetstore)
	assert.True(t, sv.IsValid(SettingsFromEnv()))
}

func TestSpecValidatorDetectsUnresolvablePathParameter(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {
	    "/pets/{petId}": {
	      "get": {
	        "operationId": "getPet",
	        "parameters": [],
	        "responses": {"200": {"description": "ok"}}
	      }
	    }
	  }
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == KindUnresolvableParameter {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSpecValidatorDetectsDuplicateOperationID(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {
	    "/a": {"get": {"operationId": "dup", "responses": {"200": {"description": "ok"}}}},
	    "/b": {"get": {"operationId": "dup", "responses": {"200": {"description": "ok"}}}}
	  }
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	found := false
	for _, e := range errs {
		if e.Kind == KindDuplicateOperationID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSpecValidatorDetectsDuplicateTagName(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "tags": [{"name": "pets"}, {"name": "pets"}]
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	found := false
	for _, e := range errs {
		if e.Kind == KindDuplicateTagName {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSpecValidatorDetectsUnknownTagParent(t *testing.T) {
	doc := `{
	  "openapi": "3.2.0",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "tags": [{"name": "pets", "parent": "ghost"}]
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	found := false
	for _, e := range errs {
		if e.Kind == KindUnknownTagParent {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSpecValidatorDetectsCircularTagHierarchy(t *testing.T) {
	doc := `{
	  "openapi": "3.2.0",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "tags": [{"name": "a", "parent": "b"}, {"name": "b", "parent": "a"}]
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	found := false
	for _, e := range errs {
		if e.Kind == KindCircularTagHierarchy {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSpecValidatorDetectsExtraParameters(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "Pet": {
	        "type": "object",
	        "allOf": [{"properties": {"name": {"type": "string"}}}],
	        "required": ["name", "missing"]
	      }
	    }
	  }
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	found := false
	for _, e := range errs {
		if e.Kind == KindExtraParameters {
			found = true
		}
	}
	assert.True(t, found)
}

// A schema with "additionalProperties": false but no "allOf" leaves
// "required" coverage entirely to its own "properties"; the dispatcher's
// own rule is "extra = []" in that case, so no ExtraParameters should be
// reported even though "missing" isn't declared.
func TestSpecValidatorExtraParametersRequiresAllOf(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "Pet": {
	        "type": "object",
	        "additionalProperties": false,
	        "required": ["name", "missing"],
	        "properties": {"name": {"type": "string"}}
	      }
	    }
	  }
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	for _, e := range errs {
		assert.NotEqual(t, KindExtraParameters, e.Kind)
	}
}

// A three-member cycle (a -> b -> c -> a) must be reported once, not once
// per member.
func TestSpecValidatorReportsCircularTagHierarchyOnce(t *testing.T) {
	doc := `{
	  "openapi": "3.2.0",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "tags": [
	    {"name": "a", "parent": "b"},
	    {"name": "b", "parent": "c"},
	    {"name": "c", "parent": "a"}
	  ]
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	count := 0
	for _, e := range errs {
		if e.Kind == KindCircularTagHierarchy {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// A schema that refers to itself through "properties" must be walked
// without recursing forever.
func TestSpecValidatorHandlesSelfReferentialSchema(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "Node": {
	        "type": "object",
	        "properties": {
	          "self": {"$ref": "#/components/schemas/Node"}
	        }
	      }
	    }
	  }
	}`
	sv := newTestValidator(t, doc)
	assert.NotPanics(t, func() {
		sv.Errors(SettingsFromEnv())
	})
}

func TestSpecValidatorDetectsDefaultNotMatchingSchema(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "Count": {"type": "integer", "default": "abc"}
	    }
	  }
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	found := false
	for _, e := range errs {
		if e.Kind == KindSchemaError && e.Pointer == "/components/schemas/Count/default" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSpecValidatorAllowsMatchingDefault(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "paths": {},
	  "components": {
	    "schemas": {
	      "Count": {"type": "integer", "default": 3}
	    }
	  }
	}`
	sv := newTestValidator(t, doc)
	errs := sv.Errors(SettingsFromEnv())
	for _, e := range errs {
		assert.NotEqual(t, "/components/schemas/Count/default", e.Pointer)
	}
}
