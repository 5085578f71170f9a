package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElfProef(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"517439943", true},
		{"111222333", true},
		{"123456782", true},
		{"517439944", false},
		{"000000000", true},
		{"12345678", false},
		{"1234567890", false},
		{"51743994a", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ElfProef(tc.value), tc.value)
	}
}

func TestIsANummer(t *testing.T) {
	assert.True(t, IsANummer("1234567890"))
	assert.False(t, IsANummer("0234567890"))
	assert.False(t, IsANummer("123456789"))
	assert.False(t, IsANummer("12345678901"))
}
