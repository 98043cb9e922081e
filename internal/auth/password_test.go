package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", digest)

	assert.True(t, h.Check("Password123", digest))
	assert.False(t, h.Check("Password124", digest))
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Check("whatever", "not-a-bcrypt-digest"))
	assert.False(t, h.Check("whatever", ""))
}

func TestHasher_CostClamped(t *testing.T) {
	h := NewHasher(999)
	digest, err := h.Hash("Password123")
	require.NoError(t, err)
	assert.True(t, h.Check("Password123", digest))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"too short", "Weak1", false},
		{"no uppercase", "password123", false},
		{"no lowercase", "PASSWORD123", false},
		{"no digit", "PasswordABC", false},
		{"ok", "Password123", true},
		{"ok with symbols", "S3cure-Pass!", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestNewSingleUseValue(t *testing.T) {
	a, err := NewSingleUseValue(32)
	require.NoError(t, err)
	b, err := NewSingleUseValue(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	// 32 bytes of entropy base64url-encode to 43 characters.
	assert.Len(t, a, 43)
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
	assert.NotContains(t, a, "=")
}
