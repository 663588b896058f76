package crypto

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	require.NotEqual(t, "secret-password", hash)

	require.True(t, CheckPassword("secret-password", hash))
	require.False(t, CheckPassword("wrong-password", hash))
}

func TestHashPasswordError(t *testing.T) {
	orig := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failure")
	}
	defer func() { bcryptGenerateFromPassword = orig }()

	_, err := HashPassword("secret-password")
	require.Error(t, err)
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(32)
	require.NoError(t, err)
	require.Len(t, token, 64)

	other, err := GenerateRandomToken(32)
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestGenerateRandomTokenError(t *testing.T) {
	orig := randomRead
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("entropy exhausted")
	}
	defer func() { randomRead = orig }()

	_, err := GenerateRandomToken(16)
	require.Error(t, err)
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
}

func TestGenerateReferralCode(t *testing.T) {
	code, err := GenerateReferralCode()
	require.NoError(t, err)
	require.Len(t, code, 8)
}

func TestHashTokenDeterministic(t *testing.T) {
	require.Equal(t, HashToken("refresh-token"), HashToken("refresh-token"))
	require.NotEqual(t, HashToken("refresh-token"), HashToken("other-token"))
	require.Len(t, HashToken("refresh-token"), 64)
}
