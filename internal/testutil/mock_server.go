//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// FakeServerContext 实现 types.ServerContext 的简单假对象
// RoomManager 依赖 ServerContext 构造，因此留作字段在构造后回填
type FakeServerContext struct {
	Sessions    types.SessionStoreInterface
	RoomManager types.RoomManagerInterface

	mu      sync.RWMutex
	clients map[string]types.ClientInterface
}

func NewFakeServerContext() *FakeServerContext {
	return &FakeServerContext{
		Sessions: NewMemorySessionStore(),
		clients:  make(map[string]types.ClientInterface),
	}
}

func (f *FakeServerContext) GetSessionStore() types.SessionStoreInterface {
	return f.Sessions
}

func (f *FakeServerContext) GetRoomManager() types.RoomManagerInterface {
	return f.RoomManager
}

func (f *FakeServerContext) GetClientByID(id string) types.ClientInterface {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.clients[id]
}

func (f *FakeServerContext) RegisterClient(id string, client types.ClientInterface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[id] = client
}

func (f *FakeServerContext) UnregisterClient(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, id)
}

func (f *FakeServerContext) GetOnlineCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}
