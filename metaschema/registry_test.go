package metaschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForVersionKnown(t *testing.T) {
	cases := []struct {
		keyword, major, minor string
		wantDialect            string
	}{
		{"swagger", "2", "0", DialectDraft04},
		{"openapi", "3", "0", DialectDraft04},
		{"openapi", "3", "1", Dialect2020_12},
		{"openapi", "3", "2", Dialect2020_12},
	}
	for _, tc := range cases {
		schema, dialect, err := ForVersion(tc.keyword, tc.major, tc.minor)
		require.NoError(t, err)
		assert.NotEmpty(t, schema)
		assert.Equal(t, tc.wantDialect, dialect)
	}
}

func TestForVersionUnknown(t *testing.T) {
	_, _, err := ForVersion("openapi", "9", "9")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}
