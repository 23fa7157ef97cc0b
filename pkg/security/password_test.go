package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"))

	ok, err := VerifyPassword("s3cret-pass", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong-pass", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", 4)
	require.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		require.GreaterOrEqual(t, r, '0')
		require.LessOrEqual(t, r, '9')
	}

	_, err = GenerateVerificationCode(0)
	require.Error(t, err)
}
