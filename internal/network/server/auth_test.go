package server

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/network/server/storage"
)

func newTestAuthenticator(t *testing.T, cfg config.AuthConfig) (*Authenticator, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sessions := storage.NewSessionStore(rdb, time.Hour)
	return NewAuthenticator(sessions, &cfg), mr
}

func TestAuthenticate_GuestMode(t *testing.T) {
	auth, _ := newTestAuthenticator(t, config.AuthConfig{AllowGuests: true})

	r := httptest.NewRequest("GET", "/ws", nil)
	identity, err := auth.Authenticate(context.Background(), r)

	require.NoError(t, err)
	assert.NotEmpty(t, identity.ID)
	assert.NotEmpty(t, identity.Username)

	// 游客身份每次都是新的
	identity2, err := auth.Authenticate(context.Background(), r)
	require.NoError(t, err)
	assert.NotEqual(t, identity.ID, identity2.ID)
}

func TestAuthenticate_MissingTokenRejected(t *testing.T) {
	auth, _ := newTestAuthenticator(t, config.AuthConfig{AllowGuests: false})

	r := httptest.NewRequest("GET", "/ws", nil)
	_, err := auth.Authenticate(context.Background(), r)

	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthenticate_RedisToken(t *testing.T) {
	auth, mr := newTestAuthenticator(t, config.AuthConfig{})
	mr.Set("accessToken:tok-123", `{"id":"u1","username":"Alice"}`)

	r := httptest.NewRequest("GET", "/ws?token=tok-123", nil)
	identity, err := auth.Authenticate(context.Background(), r)

	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "Alice", identity.Username)
}

func TestAuthenticate_RedisToken_Invalid(t *testing.T) {
	auth, _ := newTestAuthenticator(t, config.AuthConfig{AllowGuests: true})

	// 携带了令牌但解析不到身份：即使允许游客也拒绝（fails closed）
	r := httptest.NewRequest("GET", "/ws?token=expired", nil)
	_, err := auth.Authenticate(context.Background(), r)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_JWT(t *testing.T) {
	const secret = "test-secret"
	auth, _ := newTestAuthenticator(t, config.AuthConfig{JWTSecret: secret})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u42",
		"name": "Bob",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+signed)

	identity, err := auth.Authenticate(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "u42", identity.ID)
	assert.Equal(t, "Bob", identity.Username)
}

func TestAuthenticate_JWT_WrongSecret(t *testing.T) {
	auth, _ := newTestAuthenticator(t, config.AuthConfig{JWTSecret: "right-secret"})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u42"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/ws?token="+signed, nil)
	_, err = auth.Authenticate(context.Background(), r)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_JWT_MissingSubject(t *testing.T) {
	const secret = "test-secret"
	auth, _ := newTestAuthenticator(t, config.AuthConfig{JWTSecret: secret})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "NoID"})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/ws?token="+signed, nil)
	_, err = auth.Authenticate(context.Background(), r)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractToken(t *testing.T) {
	// Header 优先于 query
	r := httptest.NewRequest("GET", "/ws?token=from-query", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", extractToken(r))

	r = httptest.NewRequest("GET", "/ws?token=from-query", nil)
	assert.Equal(t, "from-query", extractToken(r))

	r = httptest.NewRequest("GET", "/ws", nil)
	assert.Empty(t, extractToken(r))
}
