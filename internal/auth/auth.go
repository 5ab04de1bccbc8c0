// internal/auth/auth.go

package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/istlab/raffle-backend/internal/models"
)

// tokenTTL is how long an operator session stays valid. Raffle events run a
// single evening, so one day covers setup through teardown.
const tokenTTL = 24 * time.Hour

// JWTSecret holds the signing key (set by Init from config).
var JWTSecret []byte

// Init caches the JWT secret.
func Init(secret string) {
	JWTSecret = []byte(secret)
}

// Claims defines the JWT payload for raffle operators.
type Claims struct {
	OperatorID string              `json:"operator_id"`
	Username   string              `json:"username"`
	Role       models.OperatorRole `json:"role"`
	jwt.StandardClaims
}

// HasRole reports whether the claims carry one of the given roles. An empty
// list allows any authenticated operator.
func (c *Claims) HasRole(roles ...models.OperatorRole) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == c.Role {
			return true
		}
	}
	return false
}

// GenerateJWT creates a signed token for the operator.
func GenerateJWT(operatorID, username string, role models.OperatorRole) (string, error) {
	now := time.Now()
	claims := Claims{
		OperatorID: operatorID,
		Username:   username,
		Role:       role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseAndVerify validates the token string and returns its claims.
func ParseAndVerify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// ensure HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
