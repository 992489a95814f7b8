package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/network/server/storage"
)

var (
	// ErrMissingToken 未携带访问令牌且不允许游客
	ErrMissingToken = errors.New("缺少访问令牌")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("访问令牌无效")
)

// Authenticator 连接认证器
// 三种模式按配置依次生效：
//   - auth.jwt_secret 非空时校验 JWT（HS256）
//   - 否则令牌在 Redis 里按 accessToken:<token> 解析身份
//   - 无令牌且 auth.allow_guests 时发放游客身份
type Authenticator struct {
	sessions *storage.SessionStore
	cfg      *config.AuthConfig
}

// NewAuthenticator 创建认证器
func NewAuthenticator(sessions *storage.SessionStore, cfg *config.AuthConfig) *Authenticator {
	return &Authenticator{sessions: sessions, cfg: cfg}
}

// Authenticate 认证一次连接请求，失败时拒绝连接
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*storage.Identity, error) {
	token := extractToken(r)

	if token == "" {
		if !a.cfg.AllowGuests {
			return nil, ErrMissingToken
		}
		return guestIdentity(), nil
	}

	if a.cfg.JWTSecret != "" {
		return a.verifyJWT(token)
	}
	return a.resolveRedisToken(ctx, token)
}

// extractToken 从请求中提取令牌：优先 Authorization: Bearer，其次 query 参数
// 浏览器的 WebSocket API 无法设置自定义 Header，query 是它唯一的通道
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if after, found := strings.CutPrefix(auth, "Bearer "); found {
			return after
		}
	}
	return r.URL.Query().Get("token")
}

// verifyJWT 校验 JWT 令牌并提取身份
func (a *Authenticator) verifyJWT(tokenStr string) (*storage.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}
		return []byte(a.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	id, _ := claims["sub"].(string)
	if id == "" {
		return nil, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = GenerateNickname()
	}

	return &storage.Identity{ID: id, Username: name}, nil
}

// resolveRedisToken 在 Redis 里解析账号服务写入的访问令牌
func (a *Authenticator) resolveRedisToken(ctx context.Context, token string) (*storage.Identity, error) {
	identity, err := a.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("解析令牌失败: %w", err)
	}
	if identity == nil {
		return nil, ErrInvalidToken
	}
	return identity, nil
}

// guestIdentity 生成一次性的游客身份
func guestIdentity() *storage.Identity {
	return &storage.Identity{
		ID:       uuid.New().String(),
		Username: GenerateNickname(),
	}
}
