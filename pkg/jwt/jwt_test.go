package jwt_test

import (
	"testing"
	"time"

	"ai-worker-console/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)

	token, err := m.GenerateToken("u1", "admin@aiworker.local", "김관리", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@aiworker.local", claims.Email)
	assert.Equal(t, "김관리", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestManager_RejectsForeignAndExpired(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	token, err := jwt.NewManager("other", time.Hour).GenerateToken("u1", "", "", "")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	expired, err := jwt.NewManager("secret", -time.Minute).GenerateToken("u1", "", "", "")
	require.NoError(t, err)
	_, err = m.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = m.ValidateToken("garbage")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
