package game

import (
	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// RoomError type alias
type RoomError = types.RoomError

// Error variables
var (
	ErrRoomNotFound   = &RoomError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull       = &RoomError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom      = &RoomError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrAlreadyInRoom  = &RoomError{Code: protocol.ErrCodeAlreadyInRoom, Message: "您已在房间中"}
	ErrInvalidState   = &RoomError{Code: protocol.ErrCodeInvalidState, Message: "当前状态下无法执行该操作"}
	ErrNotEnoughToGo  = &RoomError{Code: protocol.ErrCodeNotEnoughToGo, Message: "至少需要两名玩家才能开始"}
	ErrNotHost        = &RoomError{Code: protocol.ErrCodeNotHost, Message: "只有房主可以执行该操作"}
	ErrNotDrawer      = &RoomError{Code: protocol.ErrCodeNotDrawer, Message: "只有当前画手可以执行该操作"}
	ErrWordNotOffered = &RoomError{Code: protocol.ErrCodeWordNotOffered, Message: "所选词不在候选词中"}
)
