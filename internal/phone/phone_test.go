package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+5491155551234", "+5491155551234"},
		{"5491155551234", "+5491155551234"},
		{"91155551234", "+5491155551234"},
		{"11555512", "+54911555512"},
		{"11 5555-1234", "+5491155551234"},
		{"(011) 5555-1234", "+54901155551234"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeRejectsNonDialable(t *testing.T) {
	for _, in := range []string{"abc", "", "123", "+54 11 ABC", "12-34"} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrNotDialable, "%q", in)
	}
}

func TestDigits(t *testing.T) {
	got, err := Digits("+54 9 11 5555-1234")
	require.NoError(t, err)
	assert.Equal(t, "5491155551234", got)
}
