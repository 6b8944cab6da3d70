package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12345678-5", "123456785"},
		{"12.345.678-5", "123456785"},
		{"123456785", "123456785"},
		{"  12345678-5  ", "123456785"},
		{"6-K", "6k"},
		{"6-k", "6k"},
		{"14-0", "140"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizeChecksumMismatch(t *testing.T) {
	for _, in := range []string{"12345678-0", "12345678-K", "12.345.678-4"} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrInvalidChecksum, "input %q", in)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	for _, in := range []string{"", "5", "  -  ", "12a45678-5", "12345678-X"} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", in)
	}
}
