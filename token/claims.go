package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/internal/utils"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims is the identity carried in the payload segment of an access token.
// The client never verifies signatures; the server does that on every request.
type Claims struct {
	Subject     string    `json:"sub"`
	Username    string    `json:"username,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	ExpiresAt   time.Time `json:"exp"`
}

// DisplayName prefers the username and falls back to the email address
func (c *Claims) DisplayName() string {
	return utils.FirstNonEmpty(c.Username, c.Email)
}

// Expired reports whether the token is past its exp claim. Tokens without exp never expire.
func (c *Claims) Expired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !NowTimeFunc().Before(c.ExpiresAt)
}

// Decode extracts the claims of a three segment token without verifying its signature.
// Padded and unpadded URL-safe base64 payloads are both accepted.
func Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "empty token")
	}

	parsed, _, err := jwtlib.NewParser(jwtlib.WithPaddingAllowed()).ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "decode token: %v", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "error extracting claims")
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, errors.ErrMissingSubject
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	var permissions []string
	if claimPermissions, ok := claims["permissions"].([]any); ok {
		permissions = utils.ToStringSlice(claimPermissions)
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return &Claims{
		Subject:     sub,
		Username:    username,
		Email:       email,
		Role:        role,
		Permissions: permissions,
		ExpiresAt:   expiresAt,
	}, nil
}
