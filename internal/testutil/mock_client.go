//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/draw-guess/internal/network/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomID string) {
	m.Called(roomID)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，记录收到的消息（用于不需要断言调用的测试）
type SimpleClient struct {
	ID     string
	Name   string
	RoomID string

	mu       sync.Mutex
	Messages []*protocol.Message
}

func (c *SimpleClient) GetID() string       { return c.ID }
func (c *SimpleClient) GetName() string     { return c.Name }
func (c *SimpleClient) GetRoom() string     { return c.RoomID }
func (c *SimpleClient) SetRoom(code string) { c.RoomID = code }
func (c *SimpleClient) Close()              {}

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = append(c.Messages, msg)
}

// MessagesOfType 返回收到的指定类型的消息
func (c *SimpleClient) MessagesOfType(msgType protocol.MessageType) []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*protocol.Message
	for _, msg := range c.Messages {
		if msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out
}

// LastMessage 返回最后一条消息，没有时返回 nil
func (c *SimpleClient) LastMessage() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Reset 清空已记录的消息
func (c *SimpleClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = nil
}
