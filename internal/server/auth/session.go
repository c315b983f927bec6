package auth

import (
	"time"
)

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "token"
	// DefaultSessionTTL is how long a freshly issued token stays valid.
	DefaultSessionTTL = 24 * time.Hour
)

// SameSite mirrors the cookie SameSite attribute without tying this package
// to a transport.
type SameSite int

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

// CookieDirective tells the transport how to set or clear the session cookie.
// A zero MaxAge means the cookie must be expired immediately.
type CookieDirective struct {
	Name     string
	Value    string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
	SameSite SameSite
}

// Expired reports whether the directive clears the cookie.
func (d CookieDirective) Expired() bool {
	return d.Value == "" && d.MaxAge <= 0
}

// TokenIssuer issues and verifies session tokens with a signing key injected
// at construction. It holds no mutable state and is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewTokenIssuer builds an issuer. A non-positive ttl falls back to
// DefaultSessionTTL. An empty secret is accepted here; Issue and Parse then
// fail with common.ErrMissingSigningKey.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// WithSecureCookies marks every cookie directive as Secure.
func (i *TokenIssuer) WithSecureCookies(secure bool) *TokenIssuer {
	i.secure = secure
	return i
}

// TTL returns the token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

func (i *TokenIssuer) Issue(userID string) (string, error) {
	return GenerateToken(userID, i.secret, i.ttl)
}

func (i *TokenIssuer) Parse(token string) (string, error) {
	return GetUserIDFromToken(token, i.secret)
}

// SessionCookie is the directive that stores token on the client.
func (i *TokenIssuer) SessionCookie(token string) CookieDirective {
	return CookieDirective{
		Name:     SessionCookieName,
		Value:    token,
		MaxAge:   i.ttl,
		HTTPOnly: true,
		Secure:   i.secure,
		SameSite: SameSiteStrict,
	}
}

// Invalidate is the directive that overwrites the session cookie with an
// empty value and zero lifetime. Tokens already handed out stay valid until
// they expire; there is no revocation list.
func (i *TokenIssuer) Invalidate() CookieDirective {
	return CookieDirective{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   0,
		HTTPOnly: true,
		Secure:   i.secure,
		SameSite: SameSiteStrict,
	}
}
