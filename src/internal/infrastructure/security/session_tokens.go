package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/auth"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

const tokenIssuer = "giftcard-pos"

// sessionClaims is the JWT payload. The subject is the staff id.
type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenIssuer implements auth.TokenIssuer with HS256 tokens.
type JWTTokenIssuer struct {
	secret []byte
}

func NewJWTTokenIssuer(secret string) (*JWTTokenIssuer, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	return &JWTTokenIssuer{secret: []byte(secret)}, nil
}

func (i *JWTTokenIssuer) Issue(claims auth.SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Name: claims.Name,
		Role: claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   claims.StaffID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (i *JWTTokenIssuer) Parse(tokenString string) (auth.SessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return auth.SessionClaims{}, err
	}

	role, err := staff.ParseRole(claims.Role)
	if err != nil {
		return auth.SessionClaims{}, err
	}

	result := auth.SessionClaims{
		StaffID: claims.Subject,
		Name:    claims.Name,
		Role:    role,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return result, nil
}

var _ auth.TokenIssuer = (*JWTTokenIssuer)(nil)
