package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LengthAndDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := New()
		require.NoError(t, err)
		require.Len(t, code, Digits)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestNew_ZeroPadded(t *testing.T) {
	// Generate enough codes that at least one leading-zero value is overwhelmingly
	// likely; all must keep the fixed width.
	for i := 0; i < 1000; i++ {
		code, err := New()
		require.NoError(t, err)
		require.Len(t, code, Digits)
	}
}

func TestNew_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := New()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "50 draws produced a single value")
}
