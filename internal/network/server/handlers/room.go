package handlers

import (
	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/game"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	var settings *protocol.RoomSettings
	if len(msg.Payload) > 0 {
		payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorReply(msg.Type, protocol.ErrCodeInvalidMsg))
			return
		}
		settings = payload.Settings
	}

	// 如果已在房间中，先离开
	if roomID := client.GetRoom(); roomID != "" {
		h.server.GetRoomManager().RemovePlayer(roomID, client.GetID())
	}

	roomInterface, err := h.server.GetRoomManager().CreateRoom(client, settings)
	if err != nil {
		sendError(client, msg.Type, err)
		return
	}

	room, ok := roomInterface.(*game.Room)
	if !ok || room == nil {
		client.SendMessage(protocol.NewErrorReplyWithText(msg.Type, protocol.ErrCodeUnknown, "创建房间失败"))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.RoomCreatedPayload{
		RoomID:   room.ID,
		Player:   room.GetPlayerInfo(client.GetID()),
		Settings: room.GetSettings(),
	}))
}

// handleConfigureRoom 处理修改房间设置
// 只有房主能改，且只在等待阶段允许
func (h *Handler) handleConfigureRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ConfigureRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorReply(msg.Type, protocol.ErrCodeInvalidMsg))
		return
	}

	roomID := payload.RoomID
	if roomID == "" {
		roomID = client.GetRoom()
	}

	room := h.roomByID(roomID)
	if room == nil {
		sendError(client, msg.Type, game.ErrRoomNotFound)
		return
	}
	if client.GetID() != room.HostID {
		sendError(client, msg.Type, game.ErrNotHost)
		return
	}
	if room.GetState() != types.RoomStateWaiting {
		sendError(client, msg.Type, game.ErrInvalidState)
		return
	}

	h.server.GetRoomManager().Configure(roomID, payload.Settings)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConfigureRoom, protocol.ConfigureRoomResultPayload{
		RoomID:   roomID,
		Settings: room.GetSettings(),
	}))

	// 让其他玩家同步到最新设置
	room.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgRoomInfo, room.GetInfo()))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorReply(msg.Type, protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在其他房间中，先离开
	if roomID := client.GetRoom(); roomID != "" && roomID != payload.RoomID {
		h.server.GetRoomManager().RemovePlayer(roomID, client.GetID())
	}

	if err := h.server.GetRoomManager().AddPlayer(payload.RoomID, client); err != nil {
		sendError(client, msg.Type, err)
		return
	}

	room := h.roomByID(payload.RoomID)
	if room == nil {
		sendError(client, msg.Type, game.ErrRoomNotFound)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.RoomJoinedPayload{
		RoomID:  room.ID,
		Player:  room.GetPlayerInfo(client.GetID()),
		Players: room.GetAllPlayersInfo(),
	}))
}

// handleLeaveRoom 处理主动离开房间
// 与断线走同一条路径：房主在等待阶段离开会关闭整个房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface, msg *protocol.Message) {
	roomID := client.GetRoom()
	if roomID == "" {
		sendError(client, msg.Type, game.ErrNotInRoom)
		return
	}

	h.server.GetRoomManager().HandleDisconnect(client.GetID(), roomID)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveRoom, protocol.RoomClosedPayload{
		RoomID: roomID,
	}))
}

// handleRoomInfo 处理房间信息查询
func (h *Handler) handleRoomInfo(client types.ClientInterface, msg *protocol.Message) {
	room := h.queriedRoom(client, msg)
	if room == nil {
		sendError(client, msg.Type, game.ErrRoomNotFound)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomInfo, room.GetInfo()))
}

// handlePlayerList 处理玩家列表查询
func (h *Handler) handlePlayerList(client types.ClientInterface, msg *protocol.Message) {
	room := h.queriedRoom(client, msg)
	if room == nil {
		sendError(client, msg.Type, game.ErrRoomNotFound)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPlayerList, protocol.PlayerListPayload{
		RoomID:  room.ID,
		Players: room.GetAllPlayersInfo(),
	}))
}

// queriedRoom 解析查询请求指向的房间，缺省为客户端当前房间
func (h *Handler) queriedRoom(client types.ClientInterface, msg *protocol.Message) *game.Room {
	roomID := ""
	if len(msg.Payload) > 0 {
		if payload, err := protocol.ParsePayload[protocol.RoomQueryPayload](msg); err == nil {
			roomID = payload.RoomID
		}
	}
	if roomID == "" {
		roomID = client.GetRoom()
	}
	if roomID == "" {
		return nil
	}
	return h.roomByID(roomID)
}
