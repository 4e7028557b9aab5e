package utils

import (
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestIsProd(t *testing.T) {
	os.Setenv("API_ENV", "production")
	assert.True(t, IsProd())

	os.Setenv("API_ENV", "local")
	assert.False(t, IsProd())

	os.Unsetenv("API_ENV")
	assert.False(t, IsProd())
}

func TestGenerateJWTClaims(t *testing.T) {
	token, err := GenerateJWT("admin@example.com", 7, "admin")
	assert.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}
