package handlers

import (
	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/game"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// handleStartGame 处理房主开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	var settings *protocol.RoomSettings
	if len(msg.Payload) > 0 {
		payload, err := protocol.ParsePayload[protocol.StartGamePayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorReply(msg.Type, protocol.ErrCodeInvalidMsg))
			return
		}
		settings = payload.Settings
	}

	room := h.currentRoom(client)
	if room == nil {
		sendError(client, msg.Type, game.ErrNotInRoom)
		return
	}

	if err := room.StartGame(client.GetID(), settings); err != nil {
		sendError(client, msg.Type, err)
		return
	}
}

// handleChooseWord 处理画手选词
func (h *Handler) handleChooseWord(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChooseWordPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorReply(msg.Type, protocol.ErrCodeInvalidMsg))
		return
	}

	room := h.currentRoom(client)
	if room == nil {
		sendError(client, msg.Type, game.ErrNotInRoom)
		return
	}

	if err := room.ChooseWord(client.GetID(), payload.Word); err != nil {
		sendError(client, msg.Type, err)
		return
	}
}

// handleDraw 处理画笔事件
// 服务端不解释笔画内容，原样转发给房间内其他玩家
func (h *Handler) handleDraw(client types.ClientInterface, msg *protocol.Message) {
	room := h.currentRoom(client)
	if room == nil {
		return
	}

	// 只有作画阶段的当前画手能画
	if room.GetState() != types.RoomStatePlaying || room.CurrentDrawer() != client.GetID() {
		return
	}

	room.BroadcastExcept(client.GetID(), msg)
}
