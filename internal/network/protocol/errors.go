package protocol

// 错误码定义
// 1xxx 协议错误，2xxx 资源不存在，3xxx 状态/配置错误，4xxx 权限错误
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003

	ErrCodeInvalidState   = 3001 // 当前状态下不允许该操作
	ErrCodeNotEnoughToGo  = 3002 // 人数不足，无法开始
	ErrCodeAlreadyInRoom  = 3003
	ErrCodeWordNotOffered = 3004 // 所选词不在候选词中

	ErrCodeUnauthorized = 4000 // 未认证 / 令牌无效
	ErrCodeNotHost      = 4001 // 仅房主可操作
	ErrCodeNotDrawer    = 4002 // 仅当前画手可操作
)

// ErrorMessages 错误码对应的默认文案
var ErrorMessages = map[int]string{
	ErrCodeUnknown:        "未知错误",
	ErrCodeInvalidMsg:     "无效的消息格式",
	ErrCodeRoomNotFound:   "房间不存在",
	ErrCodeRoomFull:       "房间已满",
	ErrCodeNotInRoom:      "您不在房间中",
	ErrCodeInvalidState:   "当前状态下无法执行该操作",
	ErrCodeNotEnoughToGo:  "至少需要两名玩家才能开始",
	ErrCodeAlreadyInRoom:  "您已在房间中",
	ErrCodeWordNotOffered: "所选词不在候选词中",
	ErrCodeUnauthorized:   "未授权",
	ErrCodeNotHost:        "只有房主可以执行该操作",
	ErrCodeNotDrawer:      "只有当前画手可以执行该操作",
}
