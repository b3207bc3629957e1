package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	errs "github.com/sentirsebien/go-client/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims holds the payload fields of an access token that the client cares
// about. The token is never signature-checked here: the server is the
// authority, the client only inspects the payload for presence and freshness.
type Claims struct {
	UserID    int64  // user_id claim, used to fetch the profile
	TokenType string // "access" or "refresh" for simplejwt-style tokens
	Exp       int64  // expiry, epoch seconds
	Iat       int64  // issued at, epoch seconds
	JTI       string // token identifier
}

// ExpiresAt returns the expiry as a time.Time. Zero time when no exp claim
// was present.
func (c *Claims) ExpiresAt() time.Time {
	if c.Exp == 0 {
		return time.Time{}
	}
	return time.Unix(c.Exp, 0)
}

// Decode parses the payload of a JWT without verifying its signature.
// It fails with ErrMalformedToken unless the token is a three part
// base64url structure carrying a JSON payload.
func Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errs.Wrapf(errs.ErrMalformedToken, "empty token")
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errs.Wrapf(errs.ErrMalformedToken, "parse: %s", err.Error())
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errs.Wrapf(errs.ErrMalformedToken, "error extracting claims")
	}

	claims := &Claims{}
	if userID, ok := mapClaims["user_id"].(float64); ok {
		claims.UserID = int64(userID)
	}
	if tokenType, ok := mapClaims["token_type"].(string); ok {
		claims.TokenType = tokenType
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Exp = int64(exp)
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.Iat = int64(iat)
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.JTI = jti
	}

	return claims, nil
}

// IsLive reports whether the token decodes cleanly and its exp claim is in
// the future. Any failure, including an absent token, reports false rather
// than an error so callers can treat the result as "not authenticated".
func IsLive(rawToken string) bool {
	claims, err := Decode(rawToken)
	if err != nil {
		return false
	}
	if claims.Exp == 0 {
		return false
	}
	return NowTimeFunc().Unix() < claims.Exp
}
