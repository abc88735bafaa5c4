package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestorpro/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("e1", models.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "e1", claims.EmployeeID)
	assert.Equal(t, models.RoleManager, claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("definitely.not.ajwt")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignAlgorithms(t *testing.T) {
	claims := &Claims{
		EmployeeID: "e1",
		Role:       models.RoleManager,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	// alg=none must never validate, regardless of the claims inside.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	claims := &Claims{
		EmployeeID: "e1",
		Role:       models.RoleManager,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey())
	require.NoError(t, err)

	_, err = ValidateToken(expired)
	assert.Error(t, err)
}
