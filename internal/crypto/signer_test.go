package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSigner_SchemeSelection(t *testing.T) {
	assert.Equal(t, "checksum", NewSigner("").Scheme())
	assert.Equal(t, "hmac-sha256", NewSigner("secret").Scheme())
}

func TestHMACSigner_SignVerify(t *testing.T) {
	s := NewSigner("secret")

	sig := s.Sign("device", "guid", 1700000000000)
	assert.Len(t, sig, 64)
	assert.True(t, s.Verify("device", "guid", 1700000000000, sig))

	assert.False(t, s.Verify("device", "other", 1700000000000, sig), "guid is covered")
	assert.False(t, s.Verify("device", "guid", 1700000000001, sig), "timestamp is covered")
	assert.False(t, s.Verify("other", "guid", 1700000000000, sig), "device id is covered")
	assert.False(t, s.Verify("device", "guid", 1700000000000, "zz"), "malformed hex")
}

func TestHMACSigner_DifferentSecrets(t *testing.T) {
	a := NewSigner("one").Sign("device", "guid", 1)
	b := NewSigner("two").Sign("device", "guid", 1)
	assert.NotEqual(t, a, b)
}

func TestChecksumSigner_SignVerify(t *testing.T) {
	s := NewSigner("")

	sig := s.Sign("device", "guid", 42)
	assert.Equal(t, RollingChecksum("device|guid|42"), sig)
	assert.True(t, s.Verify("device", "guid", 42, sig))
	assert.False(t, s.Verify("device", "guid", 43, sig))
}

// TestRollingChecksum_KnownValues pins the hash to the 31-multiplier string
// hash with 32-bit overflow.
func TestRollingChecksum_KnownValues(t *testing.T) {
	assert.Equal(t, "0", RollingChecksum(""))
	// "a" = 97 = "2p" in base 36
	assert.Equal(t, "2p", RollingChecksum("a"))
	// "ab" = 97*31 + 98 = 3105
	assert.Equal(t, "2e9", RollingChecksum("ab"))

	long := RollingChecksum(strings.Repeat("f", 200))
	assert.NotEmpty(t, long)
	assert.NotContains(t, long, "-")
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(32)
	require.NoError(t, err)
	b, err := RandomHex(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestRandomDigits(t *testing.T) {
	code, err := RandomDigits(6)
	require.NoError(t, err)

	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}
