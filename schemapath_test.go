package oasguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePetstore = `{
  "openapi": "3.0.3",
  "info": {"title": "pets", "version": "1.0.0"},
  "paths": {
    "/pets/{petId}": {
      "get": {
        "operationId": "getPet",
        "parameters": [{"name": "petId", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {
            "description": "ok",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}
    }
  }
}`

func TestSchemaPathNavigation(t *testing.T) {
	root, err := NewSchemaPath([]byte(samplePetstore), "mem://root", nil, 0)
	require.NoError(t, err)

	paths, ok, err := root.Child("paths")
	require.NoError(t, err)
	require.True(t, ok)

	keys, _, err := paths.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"/pets/{petId}"}, keys)
}

func TestSchemaPathFollowsRef(t *testing.T) {
	root, err := NewSchemaPath([]byte(samplePetstore), "mem://root", nil, 0)
	require.NoError(t, err)

	schema, ok, err := root.Child("paths")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("/pets/{petId}")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("get")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("responses")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("200")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("content")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("application/json")
	require.NoError(t, err)
	require.True(t, ok)
	schema, ok, err = schema.Child("schema")
	require.NoError(t, err)
	require.True(t, ok)

	content, ok, err := schema.Contents()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "object", content.Get("type").String())
	assert.True(t, content.Get("required").IsArray())
}

func TestSchemaPathCycleIsSkippedNotErrored(t *testing.T) {
	doc := `{
	  "openapi": "3.0.3",
	  "info": {"title": "t", "version": "1"},
	  "components": {
	    "schemas": {
	      "A": {"allOf": [{"$ref": "#/components/schemas/B"}]},
	      "B": {"allOf": [{"$ref": "#/components/schemas/A"}]}
	    }
	  }
	}`
	root, err := NewSchemaPath([]byte(doc), "mem://root", nil, 0)
	require.NoError(t, err)

	a, ok, err := root.Child("components")
	require.NoError(t, err)
	require.True(t, ok)
	a, ok, err = a.Child("schemas")
	require.NoError(t, err)
	require.True(t, ok)
	a, ok, err = a.Child("A")
	require.NoError(t, err)
	require.True(t, ok)

	allOf, ok, err := a.Child("allOf")
	require.NoError(t, err)
	require.True(t, ok)
	b, ok, err := allOf.ChildIndex(0)
	require.NoError(t, err)
	require.True(t, ok)

	// b resolves to B's allOf[0], which $refs back to A: still on the
	// resolution stack, so this must report "not ok", never an error.
	inner, ok, err := b.Child("allOf")
	require.NoError(t, err)
	require.True(t, ok)
	cycle, ok, err := inner.ChildIndex(0)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = cycle.Contents()
	require.NoError(t, err)
	assert.False(t, ok)
}
