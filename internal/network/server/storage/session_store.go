package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	sessionKeyPrefix = "session:"
	tokenKeyPrefix   = "accessToken:"
)

// Identity 访问令牌对应的玩家身份
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SessionStore 玩家会话索引
// 记录玩家当前所在房间。房间状态本身不落盘，只有这个索引是跨进程共享的，
// 断线回调在 socket 上下文消失后仍能据此找到玩家所在的房间
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore 创建会话索引
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// SetRoom 记录玩家所在房间
func (ss *SessionStore) SetRoom(ctx context.Context, playerID, roomID string) error {
	key := sessionKeyPrefix + playerID
	return ss.client.Set(ctx, key, roomID, ss.ttl).Err()
}

// GetRoom 查询玩家所在房间，不存在时返回空串
func (ss *SessionStore) GetRoom(ctx context.Context, playerID string) (string, error) {
	key := sessionKeyPrefix + playerID
	roomID, err := ss.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return roomID, nil
}

// DeleteRoom 清除玩家的房间记录
func (ss *SessionStore) DeleteRoom(ctx context.Context, playerID string) error {
	key := sessionKeyPrefix + playerID
	return ss.client.Del(ctx, key).Err()
}

// ResolveToken 解析访问令牌为玩家身份
// 令牌由账号服务写入，缺失或无效时返回 nil（按未认证处理）
func (ss *SessionStore) ResolveToken(ctx context.Context, token string) (*Identity, error) {
	key := tokenKeyPrefix + token
	data, err := ss.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("解析身份数据失败: %w", err)
	}
	if identity.ID == "" {
		return nil, nil
	}
	return &identity, nil
}
