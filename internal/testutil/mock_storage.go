//go:build !production

package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockSessionStore 会话索引 mock
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SetRoom(ctx context.Context, playerID, roomID string) error {
	args := m.Called(ctx, playerID, roomID)
	return args.Error(0)
}

func (m *MockSessionStore) GetRoom(ctx context.Context, playerID string) (string, error) {
	args := m.Called(ctx, playerID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) DeleteRoom(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

// MemorySessionStore 内存版会话索引（用于不关心存储调用的测试）
type MemorySessionStore struct {
	mu    sync.Mutex
	rooms map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{rooms: make(map[string]string)}
}

func (s *MemorySessionStore) SetRoom(_ context.Context, playerID, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[playerID] = roomID
	return nil
}

func (s *MemorySessionStore) GetRoom(_ context.Context, playerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[playerID], nil
}

func (s *MemorySessionStore) DeleteRoom(_ context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, playerID)
	return nil
}
