package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime applies when neither the response nor the token says
// when it expires.
const DefaultTokenLifetime = time.Hour

// expiresAt picks the expiry of a freshly issued access token: the server's
// expiresIn when present, else the JWT exp claim, else DefaultTokenLifetime.
// When the token carries iat, its lifetime is applied to the local clock so
// skew between client and server does not shorten or extend it.
func expiresAt(accessToken string, expiresIn *int, issuedAt time.Time) time.Time {
	if expiresIn != nil && *expiresIn > 0 {
		return issuedAt.Add(time.Duration(*expiresIn) * time.Second)
	}
	if lifetime, exp, ok := jwtLifetime(accessToken); ok {
		if lifetime > 0 {
			return issuedAt.Add(lifetime)
		}
		return exp
	}
	return issuedAt.Add(DefaultTokenLifetime)
}

// jwtLifetime decodes the token without verifying it. lifetime is zero when
// the token has no iat.
func jwtLifetime(token string) (lifetime time.Duration, exp time.Time, ok bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return 0, time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return 0, time.Time{}, false
	}
	exp = claims.ExpiresAt.Time
	if claims.IssuedAt != nil {
		if d := exp.Sub(claims.IssuedAt.Time); d > 0 {
			return d, exp, true
		}
	}
	return 0, exp, true
}
