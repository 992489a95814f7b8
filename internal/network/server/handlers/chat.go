package handlers

import (
	"fmt"
	"time"

	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/game"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// handleChat 处理聊天消息
// 作画阶段聊天即猜词：未猜中者的消息先过一遍评估，
// 猜中后原词不会出现在聊天里，已猜中者的消息只在已猜中的小圈子里转发
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil || payload.Message == "" {
		return
	}

	room := h.currentRoom(client)
	if room == nil {
		sendError(client, msg.Type, game.ErrNotInRoom)
		return
	}

	// 填充发送者信息
	payload.SenderID = client.GetID()
	payload.SenderName = client.GetName()
	payload.Time = time.Now().Unix()
	payload.RoomID = room.ID
	chatMsg := protocol.MustNewMessage(protocol.MsgChat, payload)

	if room.GetState() == types.RoomStatePlaying {
		// 已猜中者（含画手）的发言只有同样猜中的人能看到，防止剧透
		if room.HasGuessed(client.GetID()) {
			h.relayToGuessed(room.GuessedPlayerIDs(), chatMsg)
			return
		}

		// 猜中：不转发原文，改为向全房间广播通知
		if room.HandleGuess(client.GetID(), payload.Message) {
			room.Broadcast(protocol.MustNewMessage(protocol.MsgNotification, protocol.NotificationPayload{
				Text: fmt.Sprintf("🎉 %s 猜对了！", client.GetName()),
			}))
			return
		}
	}

	// 普通聊天（包括没猜中的词）对全房间可见
	room.Broadcast(chatMsg)
}

// relayToGuessed 把消息转发给已猜中的玩家
func (h *Handler) relayToGuessed(playerIDs []string, msg *protocol.Message) {
	for _, id := range playerIDs {
		if c := h.server.GetClientByID(id); c != nil {
			c.SendMessage(msg)
		}
	}
}
