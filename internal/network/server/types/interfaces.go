package types

import (
	"context"

	"github.com/palemoky/draw-guess/internal/network/protocol"
)

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	GetSessionStore() SessionStoreInterface
	GetRoomManager() RoomManagerInterface
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
	GetOnlineCount() int
}

// SessionStoreInterface 玩家会话索引接口
// 记录玩家当前所在房间，存储在进程外，断线处理时仍可查询
type SessionStoreInterface interface {
	SetRoom(ctx context.Context, playerID, roomID string) error
	GetRoom(ctx context.Context, playerID string) (string, error)
	DeleteRoom(ctx context.Context, playerID string) error
}

// RoomManagerInterface 房间管理器接口
type RoomManagerInterface interface {
	CreateRoom(client ClientInterface, settings *protocol.RoomSettings) (any, error)
	GetRoom(roomID string) any
	Configure(roomID string, settings protocol.RoomSettings) bool
	AddPlayer(roomID string, client ClientInterface) error
	RemovePlayer(roomID, playerID string)
	DeleteRoom(roomID string)
	HandleDisconnect(playerID, roomID string)
	GetActiveRoomsCount() int
}

// ClientInterface 客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(roomID string)
	SendMessage(msg *protocol.Message)
	Close()
}

// RoomError 房间错误
type RoomError struct {
	Code    int
	Message string
}

func (e *RoomError) Error() string {
	return e.Message
}

// RoomState 房间状态
type RoomState int

const (
	RoomStateWaiting RoomState = iota
	RoomStateChangingRound
	RoomStateChangingTurn
	RoomStatePlaying
	RoomStateEndTurn
	RoomStateEnding
	RoomStateEnd
)

// String 返回状态的协议字符串
func (s RoomState) String() string {
	switch s {
	case RoomStateWaiting:
		return protocol.StateWaiting
	case RoomStateChangingRound:
		return protocol.StateChangingRound
	case RoomStateChangingTurn:
		return protocol.StateChangingTurn
	case RoomStatePlaying:
		return protocol.StatePlaying
	case RoomStateEndTurn:
		return protocol.StateEndTurn
	case RoomStateEnding:
		return protocol.StateEnding
	case RoomStateEnd:
		return protocol.StateEnd
	default:
		return "unknown"
	}
}
