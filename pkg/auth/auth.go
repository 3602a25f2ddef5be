// Package auth issues and verifies the HS256 tokens that guard authenticated
// admin controllers.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goliatone/go-adminview/pkg/controller"
)

// DefaultCookieName is the cookie checked when no Authorization header is sent.
const DefaultCookieName = "admin_token"

var (
	ErrMissingToken = errors.New("auth: missing token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims are the token claims for an admin session.
type Claims struct {
	Roles    []string `json:"roles,omitempty"`
	Features []string `json:"features,omitempty"`
	jwt.RegisteredClaims
}

// HasFeature reports whether the claims grant feature. A claim set without
// features grants all of them.
func (c *Claims) HasFeature(feature string) bool {
	if c == nil {
		return false
	}
	if len(c.Features) == 0 || feature == "" {
		return true
	}
	for _, f := range c.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Config configures an Authenticator.
type Config struct {
	Secret     string
	Issuer     string
	CookieName string
	TTL        time.Duration
}

// Authenticator signs and validates admin tokens.
type Authenticator struct {
	secret     []byte
	issuer     string
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

// New builds an Authenticator. The secret is required.
func New(cfg Config) (*Authenticator, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("auth: secret is required")
	}
	a := &Authenticator{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		now:        time.Now,
	}
	if a.cookieName == "" {
		a.cookieName = DefaultCookieName
	}
	if a.ttl <= 0 {
		a.ttl = 12 * time.Hour
	}
	return a, nil
}

// Issue signs a token for subject.
func (a *Authenticator) Issue(subject string, roles, features []string) (string, error) {
	now := a.now()
	claims := &Claims{
		Roles:    roles,
		Features: features,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString.
func (a *Authenticator) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenFromRequest reads a bearer token from the Authorization header, falling
// back to the session cookie.
func (a *Authenticator) TokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Guard returns a controller.GuardFunc that requires a valid token. Missing or
// invalid tokens answer 401.
func (a *Authenticator) Guard() controller.GuardFunc {
	return func(r *http.Request) error {
		token := a.TokenFromRequest(r)
		if token == "" {
			return controller.StatusError{Code: http.StatusUnauthorized, Err: ErrMissingToken}
		}
		if _, err := a.Verify(token); err != nil {
			return controller.StatusError{Code: http.StatusUnauthorized, Err: err}
		}
		return nil
	}
}

// FeatureGuard is like Guard but additionally answers 403 when the token does
// not grant feature.
func (a *Authenticator) FeatureGuard(feature string) controller.GuardFunc {
	return func(r *http.Request) error {
		token := a.TokenFromRequest(r)
		if token == "" {
			return controller.StatusError{Code: http.StatusUnauthorized, Err: ErrMissingToken}
		}
		claims, err := a.Verify(token)
		if err != nil {
			return controller.StatusError{Code: http.StatusUnauthorized, Err: err}
		}
		if !claims.HasFeature(feature) {
			return controller.StatusError{Code: http.StatusForbidden, Err: fmt.Errorf("auth: feature %q not granted", feature)}
		}
		return nil
	}
}
