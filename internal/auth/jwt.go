package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gestorpro/internal/models"
)

// jwtKey comes from the environment so deployments can rotate it. The
// fallback only exists for local development.
func jwtKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("gestorpro_dev_secret_change_me")
}

// Claims defines what is inside the token.
type Claims struct {
	EmployeeID string      `json:"employee_id"`
	Role       models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for an employee session. Tokens last
// one day.
func GenerateToken(employeeID string, role models.Role) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken checks if a token is fake or expired.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only the HMAC family we sign with; an attacker must not pick
		// the algorithm.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey(), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
