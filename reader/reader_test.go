package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.3"}`), 0o600))

	r := New()
	data, err := r.Read(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi":"3.0.3"}`, string(data))
}

func TestReadYAMLFileNormalizesToJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\ninfo:\n  title: t\n  version: \"1\"\n"), 0o600))

	r := New()
	data, err := r.Read(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi":"3.0.3","info":{"title":"t","version":"1"}}`, string(data))
}
