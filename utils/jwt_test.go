package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("test-secret", 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseUserID("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseUserIDRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("test-secret", 42)
	require.NoError(t, err)

	_, err = ParseUserID("other-secret", token)
	assert.Error(t, err)
}

func TestParseUserIDRejectsGarbage(t *testing.T) {
	_, err := ParseUserID("test-secret", "not.a.token")
	assert.Error(t, err)
}
