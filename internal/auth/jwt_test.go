package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikahq/zaika/internal/domain"
)

func TestGenerateAndValidateToken(t *testing.T) {
	a := NewAuthenticator("test-secret", "zaika", time.Hour)

	token, err := a.GenerateToken("staff-1", domain.RoleManager, "branch-1", "")
	require.NoError(t, err)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.Subject)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, "branch-1", claims.BranchID)
	assert.Empty(t, claims.RiderID)
}

func TestTokenCarriesRiderID(t *testing.T) {
	a := NewAuthenticator("test-secret", "zaika", time.Hour)

	token, err := a.GenerateToken("staff-2", domain.RoleRider, "branch-1", "rider-7")
	require.NoError(t, err)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-2", claims.Subject)
	assert.Equal(t, "rider-7", claims.RiderID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	a := NewAuthenticator("test-secret", "zaika", time.Hour)
	b := NewAuthenticator("other-secret", "zaika", time.Hour)

	token, err := a.GenerateToken("staff-1", domain.RoleCashier, "", "")
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	a := NewAuthenticator("test-secret", "zaika", -time.Minute)

	token, err := a.GenerateToken("staff-1", domain.RoleAdmin, "", "")
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	assert.Error(t, err)
}
