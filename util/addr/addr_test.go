package addr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	lower := "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
	upper := "0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045"

	a, err := Normalize(lower)
	require.NoError(t, err)

	b, err := Normalize(upper)
	require.NoError(t, err)

	// casing never yields two distinct normalized addresses
	require.Equal(t, a, b)
	require.Equal(t, lower, strings.ToLower(a))
}

func TestNormalize_Invalid(t *testing.T) {
	for _, s := range []string{"", "0x123", "not-an-address", "0xzz8da6bf26964af9d7eed9e03e53415d37aa9604"} {
		_, err := Normalize(s)
		require.ErrorIs(t, err, ErrInvalid, s)
	}
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid("0xd8da6bf26964af9d7eed9e03e53415d37aa96045"))
	require.False(t, IsValid("d8da6bf26964af9d7eed9e03e53415d37aa96045x"))
}
