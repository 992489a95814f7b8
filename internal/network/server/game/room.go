package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

const (
	// 房间号长度
	roomCodeLength = 8
	// 房间号字符集
	roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// 房间设置默认值
const (
	defaultMaxPlayers   = 8
	defaultTotalRounds  = 3
	defaultTurnDuration = 120
	defaultWordsCount   = 3
	defaultHintsCount   = 2
)

// Settings 房间设置
type Settings struct {
	MaxPlayers   int // 最大玩家数
	TotalRounds  int // 总轮数
	TurnDuration int // 每回合时长（秒）
	WordsCount   int // 每次供选词数
	HintsCount   int // 提示字母数
}

// defaultSettings 返回默认房间设置
func defaultSettings() Settings {
	return Settings{
		MaxPlayers:   defaultMaxPlayers,
		TotalRounds:  defaultTotalRounds,
		TurnDuration: defaultTurnDuration,
		WordsCount:   defaultWordsCount,
		HintsCount:   defaultHintsCount,
	}
}

// apply 应用部分设置，零值字段被忽略
func (s *Settings) apply(changes protocol.RoomSettings) {
	if changes.MaxPlayers > 0 {
		s.MaxPlayers = changes.MaxPlayers
	}
	if changes.TotalRounds > 0 {
		s.TotalRounds = changes.TotalRounds
	}
	if changes.TurnDuration > 0 {
		s.TurnDuration = changes.TurnDuration
	}
	if changes.WordsCount > 0 {
		s.WordsCount = changes.WordsCount
	}
	if changes.HintsCount > 0 {
		s.HintsCount = changes.HintsCount
	}
}

// toProtocol 转换为协议设置
func (s Settings) toProtocol() protocol.RoomSettings {
	return protocol.RoomSettings{
		MaxPlayers:   s.MaxPlayers,
		TotalRounds:  s.TotalRounds,
		TurnDuration: s.TurnDuration,
		WordsCount:   s.WordsCount,
		HintsCount:   s.HintsCount,
	}
}

// RoomPlayer 房间中的玩家
type RoomPlayer struct {
	Client   types.ClientInterface
	Score    int // 累计得分，只增不减
	JoinedAt time.Time
}

// Room 游戏房间
// 回合状态机的全部状态和定时器都挂在房间上，由 room.mu 保护
type Room struct {
	ID          string                 // 房间号
	HostID      string                 // 房主 ID
	State       types.RoomState        // 房间状态
	Settings    Settings               // 房间设置
	Players     map[string]*RoomPlayer // 玩家列表
	PlayerOrder []string               // 玩家顺序（按加入先后）
	Round       int                    // 当前轮数，从 0 开始，changing_round 时递增
	Words       []string               // 词池（自定义词库或内置词库）
	CreatedAt   time.Time              // 创建时间

	turn    turnState // 回合状态（由 Turn Orchestrator 维护）
	gameCfg *config.GameConfig
	server  types.ServerContext
	closed  bool // 已从管理器删除，后续定时器回调全部失效
	mu      sync.RWMutex
}

// RoomManager 房间管理器
// 房间的权威内存状态全部在这里，生命周期与服务器进程一致
type RoomManager struct {
	server  types.ServerContext
	gameCfg *config.GameConfig
	rooms   map[string]*Room
	mu      sync.RWMutex
}

// NewRoomManager 创建房间管理器
func NewRoomManager(s types.ServerContext, gameCfg *config.GameConfig) *RoomManager {
	return &RoomManager{
		server:  s,
		gameCfg: gameCfg,
		rooms:   make(map[string]*Room),
	}
}

// CreateRoom 创建房间，创建者自动成为房主
func (rm *RoomManager) CreateRoom(client types.ClientInterface, settings *protocol.RoomSettings) (any, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	// 生成唯一房间号
	code := rm.generateRoomCode()

	room := &Room{
		ID:          code,
		HostID:      client.GetID(),
		State:       types.RoomStateWaiting,
		Settings:    defaultSettings(),
		Players:     make(map[string]*RoomPlayer),
		PlayerOrder: make([]string, 0, defaultMaxPlayers),
		Words:       DefaultWords(),
		CreatedAt:   time.Now(),
		gameCfg:     rm.gameCfg,
		server:      rm.server,
	}

	if settings != nil {
		room.Settings.apply(*settings)
		if len(settings.CustomWords) > 0 {
			room.Words = settings.CustomWords
		}
	}

	// 添加创建者
	room.Players[client.GetID()] = &RoomPlayer{
		Client:   client,
		JoinedAt: time.Now(),
	}
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(code)

	rm.rooms[code] = room

	// 更新会话索引
	go func() {
		_ = rm.server.GetSessionStore().SetRoom(context.Background(), client.GetID(), code)
	}()

	log.Printf("🏠 房间 %s 已创建，房主 %s", code, client.GetName())

	return room, nil
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(roomID string) any {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return nil
	}
	return room
}

// getRoom 获取房间（具体类型）
func (rm *RoomManager) getRoom(roomID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[roomID]
}

// Configure 应用部分房间设置，零值字段被忽略
// 房间不存在时静默失败，返回 false
func (rm *RoomManager) Configure(roomID string, settings protocol.RoomSettings) bool {
	room := rm.getRoom(roomID)
	if room == nil {
		return false
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	room.Settings.apply(settings)
	if len(settings.CustomWords) > 0 {
		room.Words = settings.CustomWords
	}
	return true
}

// AddPlayer 加入房间
func (rm *RoomManager) AddPlayer(roomID string, client types.ClientInterface) error {
	room := rm.getRoom(roomID)
	if room == nil {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if _, exists := room.Players[client.GetID()]; exists {
		return ErrAlreadyInRoom
	}

	if len(room.Players) >= room.Settings.MaxPlayers {
		return ErrRoomFull
	}

	if room.State != types.RoomStateWaiting {
		return ErrInvalidState
	}

	room.Players[client.GetID()] = &RoomPlayer{
		Client:   client,
		JoinedAt: time.Now(),
	}
	room.PlayerOrder = append(room.PlayerOrder, client.GetID())
	client.SetRoom(roomID)

	log.Printf("👤 玩家 %s 加入房间 %s", client.GetName(), roomID)

	// 通知房间内其他玩家
	room.broadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: room.getPlayerInfo(client.GetID()),
	}))

	// 更新会话索引
	go func() {
		_ = rm.server.GetSessionStore().SetRoom(context.Background(), client.GetID(), roomID)
	}()

	return nil
}

// RemovePlayer 将玩家移出房间
// 房间因此变空时同步删除房间并取消所有定时器
func (rm *RoomManager) RemovePlayer(roomID, playerID string) {
	room := rm.getRoom(roomID)
	if room == nil {
		return
	}

	room.mu.Lock()

	player, exists := room.Players[playerID]
	if !exists {
		room.mu.Unlock()
		return
	}

	delete(room.Players, playerID)
	for i, id := range room.PlayerOrder {
		if id == playerID {
			room.PlayerOrder = append(room.PlayerOrder[:i], room.PlayerOrder[i+1:]...)
			break
		}
	}
	player.Client.SetRoom("")

	log.Printf("👋 玩家 %s 离开房间 %s", player.Client.GetName(), roomID)

	// 通知剩余玩家
	room.broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   playerID,
		PlayerName: player.Client.GetName(),
	}))
	room.broadcast(protocol.MustNewMessage(protocol.MsgPlayerList, protocol.PlayerListPayload{
		RoomID:  roomID,
		Players: room.getAllPlayersInfo(),
	}))

	empty := len(room.Players) == 0
	room.mu.Unlock()

	// 清除会话索引
	go func() {
		_ = rm.server.GetSessionStore().DeleteRoom(context.Background(), playerID)
	}()

	if empty {
		rm.DeleteRoom(roomID)
	}
}

// DeleteRoom 删除房间，取消所有挂起的定时器
// 删除已删除的房间是 no-op
func (rm *RoomManager) DeleteRoom(roomID string) {
	rm.mu.Lock()
	room, exists := rm.rooms[roomID]
	if !exists {
		rm.mu.Unlock()
		return
	}
	delete(rm.rooms, roomID)
	rm.mu.Unlock()

	room.mu.Lock()
	room.closed = true
	room.cancelTimers()
	room.mu.Unlock()

	log.Printf("🏠 房间 %s 已解散", roomID)
}

// HandleDisconnect 处理玩家断线
// 房主在等待阶段断线时直接关闭房间，否则按普通离开处理
func (rm *RoomManager) HandleDisconnect(playerID, roomID string) {
	room := rm.getRoom(roomID)
	if room == nil {
		return
	}

	room.mu.Lock()
	isWaitingHost := playerID == room.HostID && room.State == types.RoomStateWaiting
	room.mu.Unlock()

	if isWaitingHost {
		rm.CloseRoom(roomID, "房主已离开")
		go func() {
			_ = rm.server.GetSessionStore().DeleteRoom(context.Background(), playerID)
		}()
		return
	}

	rm.RemovePlayer(roomID, playerID)
}

// CloseRoom 关闭房间并通知所有玩家
func (rm *RoomManager) CloseRoom(roomID, reason string) {
	room := rm.getRoom(roomID)
	if room == nil {
		return
	}

	room.mu.Lock()
	room.broadcast(protocol.MustNewMessage(protocol.MsgRoomClosed, protocol.RoomClosedPayload{
		RoomID: roomID,
		Reason: reason,
	}))
	for _, player := range room.Players {
		player.Client.SetRoom("")
	}
	room.mu.Unlock()

	rm.DeleteRoom(roomID)
}

// GetActiveRoomsCount 获取活跃房间数
func (rm *RoomManager) GetActiveRoomsCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// generateRoomCode 生成唯一房间号
// 8 位字母数字，带查重重试，避免碰撞到已有房间
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// --- Room 方法 ---

// broadcast 广播消息给房间内所有玩家，调用方需持有 r.mu
func (r *Room) broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		player.Client.SendMessage(msg)
	}
}

// broadcastExcept 广播消息给除指定玩家外的所有玩家
func (r *Room) broadcastExcept(excludeID string, msg *protocol.Message) {
	for id, player := range r.Players {
		if id != excludeID {
			player.Client.SendMessage(msg)
		}
	}
}

// getPlayerInfo 获取玩家信息
func (r *Room) getPlayerInfo(playerID string) protocol.PlayerInfo {
	player := r.Players[playerID]
	return protocol.PlayerInfo{
		ID:    player.Client.GetID(),
		Name:  player.Client.GetName(),
		Score: player.Score,
	}
}

// getAllPlayersInfo 获取所有玩家信息（按加入顺序）
func (r *Room) getAllPlayersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.getPlayerInfo(id))
	}
	return infos
}

// Broadcast 广播消息给房间内所有玩家（加锁版本）
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcast(msg)
}

// BroadcastExcept 广播消息给除指定玩家外的所有玩家（加锁版本）
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastExcept(excludeID, msg)
}

// GetPlayerInfo 获取玩家信息（加锁版本）
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getPlayerInfo(playerID)
}

// GetAllPlayersInfo 获取所有玩家信息（加锁版本）
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getAllPlayersInfo()
}

// GetInfo 获取房间信息快照
func (r *Room) GetInfo() protocol.RoomInfoPayload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return protocol.RoomInfoPayload{
		RoomID:      r.ID,
		HostID:      r.HostID,
		State:       r.State.String(),
		Round:       r.Round,
		TotalRounds: r.Settings.TotalRounds,
		Players:     r.getAllPlayersInfo(),
		Settings:    r.Settings.toProtocol(),
	}
}

// GetSettings 获取房间设置快照
func (r *Room) GetSettings() protocol.RoomSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Settings.toProtocol()
}
