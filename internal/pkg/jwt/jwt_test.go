package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(7, "ana@example.com", "MANAGER")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "MANAGER", claims.Role)
}

func TestValidateRejectsForeignSecretAndExpiry(t *testing.T) {
	token, err := New("one", time.Hour).GenerateToken(1, "a@b.c", "ADMIN")
	require.NoError(t, err)

	_, err = New("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired, err := New("one", -time.Minute).GenerateToken(1, "a@b.c", "ADMIN")
	require.NoError(t, err)
	_, err = New("one", time.Hour).ValidateToken(expired)
	assert.Error(t, err)
}
