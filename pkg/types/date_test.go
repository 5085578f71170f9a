package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rickb777/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateLoose(t *testing.T) {
	d, err := ParseDateLoose("2019-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2019-01-01", d.String())

	d, err = ParseDateLoose("2022-05-14")
	require.NoError(t, err)
	assert.Equal(t, "2022-05-14", d.String())

	_, err = ParseDateLoose("not-a-date")
	assert.Error(t, err)
}

func TestAddPeriod(t *testing.T) {
	p, err := period.Parse("P10Y")
	require.NoError(t, err)
	d := NewDate(2018, time.October, 18)
	assert.Equal(t, "2028-10-18", d.AddPeriod(p).String())
}

func TestMaxDate(t *testing.T) {
	a := NewDate(2022, time.January, 1)
	b := NewDate(2025, time.January, 1)
	got := MaxDate(nil, &a, &b, nil)
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-01", got.String())

	assert.Nil(t, MaxDate(nil, nil))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2018, time.October, 18)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2018-10-18"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))
}
