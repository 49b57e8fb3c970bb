package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	token, err := service.GenerateToken("ops-admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "ops-admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).GenerateToken("ops-admin")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	service := NewService("test-secret", -time.Minute)

	token, err := service.GenerateToken("ops-admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
