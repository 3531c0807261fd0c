package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	signed, err := GenerateJWTToken("test-issuer", "guid-123", time.Hour, "secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return []byte("secret-key"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "guid-123", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name             string
		issuer, sub, key string
		duration         time.Duration
	}{
		{"empty issuer", "", "guid", "k", time.Hour},
		{"empty subject", "iss", "", "k", time.Hour},
		{"zero duration", "iss", "guid", "k", 0},
		{"empty key", "iss", "guid", "", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.sub, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateJWTToken_Success(t *testing.T) {
	signed, err := GenerateJWTToken("iss", "guid-9", time.Hour, "key")
	require.NoError(t, err)

	sub, err := ValidateJWTToken(signed, "key", "iss")
	require.NoError(t, err)
	assert.Equal(t, "guid-9", sub)
}

func TestValidateJWTToken_Rejects(t *testing.T) {
	good, _ := GenerateJWTToken("iss", "guid", time.Hour, "key")
	expired, _ := GenerateJWTToken("iss", "guid", -time.Second, "key")

	_, err := ValidateJWTToken(good, "wrong-key", "iss")
	assert.Error(t, err, "signature mismatch")

	_, err = ValidateJWTToken(good, "key", "other-iss")
	assert.Error(t, err, "issuer mismatch")

	_, err = ValidateJWTToken(expired, "key", "iss")
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	_, err = ValidateJWTToken("not.a.token", "key", "iss")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ParseBearerToken("  bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, bad := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err = ParseBearerToken(bad)
		assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader, bad)
	}
}

func TestSubjectFromJWT(t *testing.T) {
	signed, err := GenerateJWTToken("iss", "guid-7", time.Hour, "server-only-key")
	require.NoError(t, err)

	sub, err := SubjectFromJWT(signed)
	require.NoError(t, err)
	assert.Equal(t, "guid-7", sub)

	_, err = SubjectFromJWT("garbage")
	assert.Error(t, err)
}
