package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents the verified identity carried by a bearer token
type Claims struct {
	UserID    string
	ExpiresAt time.Time
	Raw       jwt.MapClaims
}

// Verify is a function that parses a signed bearer token and validates its
// signature and expiry against the shared secret.
//
// It fails with ErrNoToken, ErrTokenExpired or ErrInvalidToken (malformed
// token, wrong signing method, bad signature, missing user id).
func Verify(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID := userIDClaim(claims)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	result := &Claims{
		UserID: userID,
		Raw:    claims,
	}
	if exp, errExp := claims.GetExpirationTime(); errExp == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}

	return result, nil
}

// Issue signs a token for the given user id with the shared secret.
// The issuing side and the verifier must share the same secret.
func Issue(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// userIDClaim extracts the user identifier, preferring the standard
// subject claim over the legacy "id" claim.
func userIDClaim(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok {
		return id
	}
	return ""
}
