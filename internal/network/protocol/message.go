package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom    MessageType = "createRoom"    // 创建房间
	MsgConfigureRoom MessageType = "configureRoom" // 修改房间设置
	MsgJoinRoom      MessageType = "joinRoom"      // 加入房间
	MsgLeaveRoom     MessageType = "leaveRoom"     // 离开房间
	MsgRoomInfo      MessageType = "roomInfo"      // 房间信息快照
	MsgPlayerList    MessageType = "playerList"    // 玩家列表快照

	// 游戏操作
	MsgStartGame  MessageType = "startGame"   // 房主开始游戏
	MsgChooseWord MessageType = "chooseWord"  // 画手选词（服务端也用同名事件下发候选词）
	MsgChat       MessageType = "chatMessage" // 聊天消息 / 猜词
	MsgDraw       MessageType = "drawEvent"   // 画笔事件转发
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgPlayerJoined MessageType = "playerJoined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "playerLeft"   // 玩家离开
	MsgRoomClosed   MessageType = "roomClosed"   // 房间已关闭
	MsgNotification MessageType = "notification" // 房间内通知

	// 游戏流程
	MsgGameProgress MessageType = "gameProgress" // 回合进度（倒计时 / 词面 / 结算）
)

// 房间状态字符串（随 gameProgress / roomInfo 下发）
const (
	StateWaiting       = "waiting"
	StateChangingRound = "changing_round"
	StateChangingTurn  = "changing_turn"
	StatePlaying       = "playing"
	StateEndTurn       = "end_turn"
	StateEnding        = "ending"
	StateEnd           = "end"
)
