package protocol

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RoomSettings 房间设置（部分更新时零值字段被忽略）
type RoomSettings struct {
	MaxPlayers   int      `json:"max_players,omitempty"`   // 最大玩家数
	TotalRounds  int      `json:"total_rounds,omitempty"`  // 总轮数
	TurnDuration int      `json:"turn_duration,omitempty"` // 每回合时长（秒）
	WordsCount   int      `json:"words_count,omitempty"`   // 每次供选词数
	HintsCount   int      `json:"hints_count,omitempty"`   // 提示字母数
	CustomWords  []string `json:"custom_words,omitempty"`  // 自定义词库
}

// Point 画布坐标
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Settings *RoomSettings `json:"settings,omitempty"`
}

// ConfigureRoomPayload 修改房间设置请求
type ConfigureRoomPayload struct {
	RoomID   string       `json:"room_id"`
	Settings RoomSettings `json:"settings"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomID string `json:"room_id"`
}

// StartGamePayload 开始游戏请求（可附带最终设置）
type StartGamePayload struct {
	RoomID   string        `json:"room_id"`
	Settings *RoomSettings `json:"settings,omitempty"`
}

// ChooseWordPayload 画手选词请求
type ChooseWordPayload struct {
	RoomID string `json:"room_id"`
	Word   string `json:"word"`
}

// ChatPayload 聊天消息（服务端回填发送者信息后转发）
type ChatPayload struct {
	RoomID     string `json:"room_id"`
	Message    string `json:"message"`
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	Time       int64  `json:"time,omitempty"`
}

// DrawPayload 画笔事件（原样转发给房间内其他玩家）
type DrawPayload struct {
	RoomID string `json:"room_id"`
	Action string `json:"action"`
	Start  Point  `json:"start"`
	End    Point  `json:"end"`
	Color  string `json:"color"`
}

// RoomQueryPayload 房间查询请求（roomInfo / playerList 共用）
type RoomQueryPayload struct {
	RoomID string `json:"room_id"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// RoomCreatedPayload 创建房间成功响应（事件名仍为 createRoom）
type RoomCreatedPayload struct {
	RoomID   string       `json:"room_id"`
	Player   PlayerInfo   `json:"player"`
	Settings RoomSettings `json:"settings"`
}

// RoomJoinedPayload 加入房间成功响应（事件名仍为 joinRoom）
type RoomJoinedPayload struct {
	RoomID  string       `json:"room_id"`
	Player  PlayerInfo   `json:"player"`
	Players []PlayerInfo `json:"players"`
}

// ConfigureRoomResultPayload 修改设置结果
type ConfigureRoomResultPayload struct {
	RoomID   string       `json:"room_id"`
	Settings RoomSettings `json:"settings"`
}

// PlayerJoinedPayload 玩家加入广播
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开广播
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerListPayload 玩家列表（快照响应和变更广播共用）
type PlayerListPayload struct {
	RoomID  string       `json:"room_id"`
	Players []PlayerInfo `json:"players"`
}

// RoomInfoPayload 房间信息快照响应
type RoomInfoPayload struct {
	RoomID      string       `json:"room_id"`
	HostID      string       `json:"host_id"`
	State       string       `json:"state"`
	Round       int          `json:"round"`
	TotalRounds int          `json:"total_rounds"`
	Players     []PlayerInfo `json:"players"`
	Settings    RoomSettings `json:"settings"`
}

// ChooseWordOfferPayload 选词阶段通知
// 画手收到候选词列表，其他玩家只收到画手身份和截止时间
type ChooseWordOfferPayload struct {
	Drawer      string   `json:"drawer"`               // 画手 ID，画手本人收到 "#you"
	Words       []string `json:"words,omitempty"`      // 候选词（仅画手）
	Deadline    int64    `json:"deadline,omitempty"`   // 选词截止时间戳（毫秒）
	State       string   `json:"state,omitempty"`      // selected / you-selected
	Round       int      `json:"round"`
	TotalRounds int      `json:"total_rounds"`
}

// GameProgressPayload 回合进度广播
type GameProgressPayload struct {
	State    string       `json:"state"`
	TimeLeft int          `json:"time_left,omitempty"` // 剩余秒数（playing）
	Word     string       `json:"word,omitempty"`      // 词面：未猜中者为掩码，已猜中者和回合结束时为原词
	Players  []PlayerInfo `json:"players,omitempty"`   // 最终排名（ending）
}

// NotificationPayload 房间内文字通知
type NotificationPayload struct {
	Text string `json:"text"`
}

// RoomClosedPayload 房间关闭广播
type RoomClosedPayload struct {
	RoomID string `json:"room_id"`
	Reason string `json:"reason,omitempty"`
}

// ErrorPayload 错误响应
// 始终复用请求的事件名下发，成功与失败不会同时出现
type ErrorPayload struct {
	Code  int    `json:"code,omitempty"`
	Error string `json:"error"`
}
