package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPasswordBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword(string(hash), "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(string(hash), "battery staple")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	ok, err := VerifyPassword(hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordArgon2(t *testing.T) {
	hash, err := HashArgon2("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))

	ok, err := VerifyPassword(hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "plain text", hash: "not-a-hash"},
		{name: "argon2 missing sections", hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{name: "argon2 bad params", hash: "$argon2id$v=19$m=x,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "argon2 bad version", hash: "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "argon2 bad salt", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword(tt.hash, "anything")
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}
