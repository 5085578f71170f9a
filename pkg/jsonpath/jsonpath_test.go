package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDeepPaths(t *testing.T) {
	doc := map[string]any{
		"verlening": map[string]any{
			"einddatum": "2022-01-01",
		},
		"datum": "2020-03-04",
	}

	got, err := LookupString(doc, "verlening.einddatum")
	require.NoError(t, err)
	assert.Equal(t, "2022-01-01", got)

	got, err = LookupString(doc, "verlening/einddatum")
	require.NoError(t, err)
	assert.Equal(t, "2022-01-01", got)

	got, err = LookupString(doc, "datum")
	require.NoError(t, err)
	assert.Equal(t, "2020-03-04", got)
}

func TestLookupMissingIsExplicitError(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": "x"}}

	_, err := Lookup(doc, "a.c")
	var nf *ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "c", nf.Segment)

	_, err = Lookup(doc, "")
	assert.Error(t, err)
}

func TestLookupNonStringLeaf(t *testing.T) {
	doc := map[string]any{"n": 5.0}
	_, err := LookupString(doc, "n")
	assert.Error(t, err)
}
