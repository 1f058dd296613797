package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces argon2id verifier", func(t *testing.T) {
		hash, version, err := HashPassword("password123")
		require.NoError(t, err)
		assert.Equal(t, HashVersionArgon2id, version)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))
		assert.NotContains(t, hash, "password123")
	})

	t.Run("same password gets a fresh salt", func(t *testing.T) {
		h1, _, err := HashPassword("samepassword")
		require.NoError(t, err)
		h2, _, err := HashPassword("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, _, err := HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestVerifyPassword_Argon2id(t *testing.T) {
	hash, _, err := HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong horse")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("legacy-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(raw)

	ok, err := VerifyPassword(hash, "legacy-secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, NeedsUpgrade(hash))
}

func TestVerifyPassword_InvalidVerifiers(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plain sha256 hex", "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f"},
		{"too few fields", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{"bad version", "$argon2id$vXX$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=abc$c2FsdA$aGFzaA"},
		{"zero threads", "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad hash", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
		{"truncated bcrypt", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword(tt.hash, "password")
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidVerifier)
		})
	}
}

func TestDummyVerifierNeverMatches(t *testing.T) {
	for _, pw := range []string{"", "password123", "admin"} {
		ok, err := VerifyPassword(dummyVerifier, pw)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestNeedsUpgrade(t *testing.T) {
	hash, _, err := HashPassword("x")
	require.NoError(t, err)
	assert.False(t, NeedsUpgrade(hash))
	assert.True(t, NeedsUpgrade("$2b$10$abc"))
}
