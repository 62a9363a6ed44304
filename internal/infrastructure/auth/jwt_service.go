// Package auth inspects backend-issued access tokens locally so route
// guards do not need a network round-trip per request.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// JWTInspector implements domain.TokenInspector for the HS256 tokens the
// remote API issues.
type JWTInspector struct {
	secretKey []byte
	issuer    string
}

// NewJWTInspector creates a token inspector sharing the API's signing secret.
func NewJWTInspector(secretKey, issuer string) *JWTInspector {
	return &JWTInspector{secretKey: []byte(secretKey), issuer: issuer}
}

// Inspect implements domain.TokenInspector.
func (j *JWTInspector) Inspect(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if j.issuer != "" {
		if iss, _ := claims["iss"].(string); iss != j.issuer {
			return nil, domain.ErrTokenInvalid
		}
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		// Some token versions carry a numeric subject instead.
		if sub, subOK := claims["sub"].(string); subOK {
			userID = sub
		} else {
			return nil, domain.ErrTokenMalformed
		}
	}

	role, _ := claims["role"].(string)

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	iat, _ := claims["iat"].(float64)

	return &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
