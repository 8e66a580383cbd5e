package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeCompileAndValidate(t *testing.T) {
	n := NewNative()
	schema, err := n.Compile([]byte(`{"type":"object","required":["name"]}`), "http://json-schema.org/draft-04/schema#")
	require.NoError(t, err)

	res := schema.Validate([]byte(`{"name":"pet"}`))
	assert.True(t, res.Valid)

	res = schema.Validate([]byte(`{}`))
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Failures)
}

func TestSelectUnknownBackend(t *testing.T) {
	_, err := Select("bogus")
	assert.Error(t, err)
}

func TestSelectDefaultsToNative(t *testing.T) {
	e, err := Select("")
	require.NoError(t, err)
	_, ok := e.(*Native)
	assert.True(t, ok)
}
