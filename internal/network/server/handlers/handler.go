package handlers

import (
	"log"

	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/game"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// Handler 消息处理器
type Handler struct {
	server types.ServerContext
}

// NewHandler 创建处理器
func NewHandler(s types.ServerContext) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 房间操作
	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.MsgConfigureRoom:
		h.handleConfigureRoom(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgLeaveRoom:
		h.handleLeaveRoom(client, msg)
	case protocol.MsgRoomInfo:
		h.handleRoomInfo(client, msg)
	case protocol.MsgPlayerList:
		h.handlePlayerList(client, msg)

	// 游戏操作
	case protocol.MsgStartGame:
		h.handleStartGame(client, msg)
	case protocol.MsgChooseWord:
		h.handleChooseWord(client, msg)
	case protocol.MsgChat:
		h.handleChat(client, msg)
	case protocol.MsgDraw:
		h.handleDraw(client, msg)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(protocol.NewErrorReply(msg.Type, protocol.ErrCodeInvalidMsg))
	}
}

// sendError 下发错误响应，复用请求的事件名
// 成功与失败从不混在同一条消息里
func sendError(client types.ClientInterface, msgType protocol.MessageType, err error) {
	if roomErr, ok := err.(*types.RoomError); ok {
		client.SendMessage(protocol.NewErrorReplyWithText(msgType, roomErr.Code, roomErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorReplyWithText(msgType, protocol.ErrCodeUnknown, err.Error()))
}

// roomByID 取出指定房间的具体类型
func (h *Handler) roomByID(roomID string) *game.Room {
	roomInterface := h.server.GetRoomManager().GetRoom(roomID)
	if roomInterface == nil {
		return nil
	}
	room, _ := roomInterface.(*game.Room)
	return room
}

// currentRoom 取出客户端当前所在的房间
func (h *Handler) currentRoom(client types.ClientInterface) *game.Room {
	roomID := client.GetRoom()
	if roomID == "" {
		return nil
	}
	return h.roomByID(roomID)
}
