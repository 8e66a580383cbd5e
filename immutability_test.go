package oasguard

import (
	"testing"

	"github.com/chanced/cmpjson"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wI2L/jsondiff"
)

// A validation pass must never mutate the document it reads: SchemaPath
// only ever reads gjson.Result views over the original bytes. Exercised
// with three independent JSON-equality checks from the retrieval pack
// rather than one, since a false negative here would be easy to miss.
func TestValidatingDoesNotMutateTheDocument(t *testing.T) {
	before := []byte(samplePetstore)
	snapshot := append([]byte(nil), before...)

	sv, err := NewSpecValidator(before, "mem://root", nil, SettingsFromEnv())
	require.NoError(t, err)
	_ = sv.Errors(SettingsFromEnv())

	assert.True(t, jsonpatch.Equal(snapshot, before))
	assert.True(t, cmpjson.Equal(snapshot, before))

	patch, err := jsondiff.CompareJSON(snapshot, before)
	require.NoError(t, err)
	assert.Empty(t, patch, "document bytes changed after validation: %s", patch)
}
