package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return &Issuer{Secret: []byte("test-jwt-secret")}
}

func TestIssuer_IssuePair_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	i := newTestIssuer()
	pair, err := i.IssuePair(RoleVendor, "V001")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := i.Parse(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, claims.Role)
	assert.Equal(t, TypeAccess, claims.TokenType)
	assert.Equal(t, "V001", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, 5*time.Second)

	refreshClaims, err := i.Parse(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, refreshClaims.TokenType)
	assert.WithinDuration(t, time.Now().Add(RefreshTTL), refreshClaims.ExpiresAt.Time, 5*time.Second)
}

func TestIssuer_Parse_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	pair, err := newTestIssuer().IssuePair(RoleCustomer, "C12345")
	require.NoError(t, err)

	other := &Issuer{Secret: []byte("other-secret")}
	_, err = other.Parse(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_ParseRefresh(t *testing.T) {
	t.Parallel()

	i := newTestIssuer()
	pair, err := i.IssuePair(RoleCustomer, "C12345")
	require.NoError(t, err)

	subject, err := i.ParseRefresh(pair.Refresh, RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "C12345", subject)

	// an access token is not a refresh token
	_, err = i.ParseRefresh(pair.Access, RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// role mismatch is rejected
	_, err = i.ParseRefresh(pair.Refresh, RoleVendor)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
