package oasguard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindVersion(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want SpecVersion
	}{
		{"swagger 2.0", `{"swagger":"2.0"}`, V2},
		{"openapi 3.0", `{"openapi":"3.0.3"}`, V30},
		{"openapi 3.1", `{"openapi":"3.1.0"}`, V31},
		{"openapi 3.2", `{"openapi":"3.2.0"}`, V32},
		{"patch digits ignored", `{"openapi":"3.0.99"}`, V30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FindVersion([]byte(tc.doc))
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want))
		})
	}
}

func TestFindVersionNotFound(t *testing.T) {
	_, err := FindVersion([]byte(`{"info":{}}`))
	assert.True(t, errors.Is(err, ErrOpenAPIVersionNotFound))
}

func TestKnownVersionsOrderIsNewestFirst(t *testing.T) {
	require.Len(t, knownVersions, 4)
	assert.True(t, knownVersions[0].Equal(V32))
	assert.True(t, knownVersions[len(knownVersions)-1].Equal(V2))
}
