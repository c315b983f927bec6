package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueParse(t *testing.T) {
	i := NewTokenIssuer([]byte("k"), time.Hour)

	tok, err := i.Issue("u-1")
	require.NoError(t, err)

	id, err := i.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
}

func TestTokenIssuer_OtherIssuerRejects(t *testing.T) {
	tok, err := NewTokenIssuer([]byte("a"), time.Hour).Issue("u-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("b"), time.Hour).Parse(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenIssuer_EmptySecret(t *testing.T) {
	i := NewTokenIssuer(nil, time.Hour)

	_, err := i.Issue("u-1")
	assert.ErrorIs(t, err, common.ErrMissingSigningKey)

	_, err = i.Parse("anything")
	assert.ErrorIs(t, err, common.ErrMissingSigningKey)
}

func TestTokenIssuer_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, NewTokenIssuer([]byte("k"), 0).TTL())
	assert.Equal(t, 24*time.Hour, DefaultSessionTTL)
}

func TestTokenIssuer_SessionCookie(t *testing.T) {
	c := NewTokenIssuer([]byte("k"), 0).SessionCookie("abc")

	assert.Equal(t, CookieDirective{
		Name:     "token",
		Value:    "abc",
		MaxAge:   24 * time.Hour,
		HTTPOnly: true,
		SameSite: SameSiteStrict,
	}, c)
	assert.Equal(t, int64(86_400_000), c.MaxAge.Milliseconds())
	assert.False(t, c.Expired())
}

func TestTokenIssuer_Invalidate(t *testing.T) {
	i := NewTokenIssuer([]byte("k"), 0).WithSecureCookies(true)

	first := i.Invalidate()
	second := i.Invalidate()

	assert.Equal(t, first, second)
	assert.True(t, first.Expired())
	assert.Equal(t, "token", first.Name)
	assert.True(t, first.Secure)
	assert.Zero(t, first.MaxAge)
}

func TestTokenIssuer_InvalidateDoesNotRevoke(t *testing.T) {
	i := NewTokenIssuer([]byte("k"), time.Hour)

	tok, err := i.Issue("u-1")
	require.NoError(t, err)
	_ = i.Invalidate()

	id, err := i.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
}
