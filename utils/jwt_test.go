package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	token, err := CreateToken(42, "manager")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "manager", claims.Role)
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	token, err := CreateToken(42, "employee")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	require.Error(t, err)

	_, err = ValidateJWT("")
	require.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	raw, hashed, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.Len(t, raw, 64)
	require.Len(t, hashed, 64)
	require.NotEqual(t, raw, hashed)
}
