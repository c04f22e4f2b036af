package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "u1",
		"email":   "test@cedra.be",
		"exp":     exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("super_secret"))
	require.NoError(t, err)
	return signed
}

func TestStaticTokenSource(t *testing.T) {
	token, err := StaticTokenSource("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestStaticTokenSource_EmptyIsUnauthenticated(t *testing.T) {
	_, err := StaticTokenSource("").Token()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTTokenSource_ValidToken(t *testing.T) {
	raw := signedToken(t, time.Now().Add(time.Hour))
	src := JWTTokenSource{Source: StaticTokenSource(raw)}

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, raw, token)
}

func TestJWTTokenSource_ExpiredToken(t *testing.T) {
	raw := signedToken(t, time.Now().Add(-time.Hour))
	src := JWTTokenSource{Source: StaticTokenSource(raw)}

	_, err := src.Token()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTTokenSource_GarbageToken(t *testing.T) {
	src := JWTTokenSource{Source: StaticTokenSource("pas-un-jwt")}

	_, err := src.Token()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTTokenSource_MissingToken(t *testing.T) {
	src := JWTTokenSource{Source: StaticTokenSource("")}

	_, err := src.Token()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
