package game

import (
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/types"
)

// 选词截止后进入作画阶段前的缓冲秒数
const turnGraceSeconds = 2

// drawerSelfMarker 画手收到的选词通知里用该标记代替自己的 ID
const drawerSelfMarker = "#you"

// turnState 回合状态，全部由 room.mu 保护
type turnState struct {
	queue      []string        // 本轮尚未作画的玩家队列（洗牌后）
	drawer     string          // 当前画手
	word       string          // 当前词，选词阶段为空
	candidates []string        // 供画手挑选的候选词
	guessed    map[string]bool // 本回合已猜中的玩家，画手预置在内
	deadline   time.Time       // 当前阶段截止时间
	mask       []rune          // 词面掩码，未揭示位置为下划线
	unrevealed []int           // 尚未揭示的字母位置
	hintsUsed  int             // 已揭示的提示字母数

	// 阶段令牌：每次状态切换递增并取消旧定时器。
	// 迟到的回调比对令牌后直接退出，不会打进已失效的状态
	token uint64
	timer *time.Timer // 当前阶段定时器，一房一阶段只有一个
}

// transition 切换阶段：作废旧令牌并取消遗留定时器
// 每次状态机转移都必须先经过这里
func (r *Room) transition() {
	r.turn.token++
	r.cancelTimers()
}

// cancelTimers 取消当前阶段的定时器
func (r *Room) cancelTimers() {
	if r.turn.timer != nil {
		r.turn.timer.Stop()
		r.turn.timer = nil
	}
}

// schedule 为当前阶段安排定时回调
// 回调触发时持有 r.mu 并校验令牌，房间已删除或状态已切换时 no-op
func (r *Room) schedule(d time.Duration, fn func()) {
	token := r.turn.token
	r.turn.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.turn.token != token {
			return
		}
		fn()
	})
}

// StartGame 房主开始游戏
func (r *Room) StartGame(playerID string, settings *protocol.RoomSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != types.RoomStateWaiting {
		return ErrInvalidState
	}
	if playerID != r.HostID {
		return ErrNotHost
	}
	if len(r.Players) < r.gameCfg.MinPlayers {
		return ErrNotEnoughToGo
	}

	if settings != nil {
		r.Settings.apply(*settings)
		if len(settings.CustomWords) > 0 {
			r.Words = settings.CustomWords
		}
	}

	log.Printf("🎮 房间 %s 游戏开始，共 %d 名玩家", r.ID, len(r.Players))

	r.startRound()
	return nil
}

// startRound 进入新一轮
// 轮数递增后超过总轮数则进入结算，否则洗出本轮的作画顺序
func (r *Room) startRound() {
	r.transition()
	r.State = types.RoomStateChangingRound

	r.Round++
	if r.Round > r.Settings.TotalRounds {
		r.endGame()
		return
	}

	queue := make([]string, len(r.PlayerOrder))
	copy(queue, r.PlayerOrder)
	rand.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	r.turn.queue = queue

	r.changeTurn()
}

// changeTurn 切换到下一个画手并进入选词阶段
func (r *Room) changeTurn() {
	r.transition()

	// 本轮所有人都画过了，进入下一轮
	if len(r.turn.queue) == 0 {
		r.startRound()
		return
	}

	r.State = types.RoomStateChangingTurn

	drawer := r.turn.queue[0]
	r.turn.queue = r.turn.queue[1:]

	// 画手可能在排队期间离开了房间
	if _, exists := r.Players[drawer]; !exists {
		r.changeTurn()
		return
	}

	r.turn.drawer = drawer
	r.turn.word = ""
	r.turn.mask = nil
	r.turn.unrevealed = nil
	r.turn.hintsUsed = 0
	// 画手不能猜自己的词，预置为已猜中
	r.turn.guessed = map[string]bool{drawer: true}
	// 词池去重后不足时候选为空（fails closed），超时自动选词会跳过本回合
	r.turn.candidates = PickDistinct(r.Words, r.Settings.WordsCount)
	r.turn.deadline = time.Now().Add(r.gameCfg.WordSelectTimeoutDuration())

	deadline := r.turn.deadline.UnixMilli()

	// 候选词只发给画手本人
	if drawerPlayer := r.Players[drawer]; drawerPlayer != nil {
		drawerPlayer.Client.SendMessage(protocol.MustNewMessage(protocol.MsgChooseWord, protocol.ChooseWordOfferPayload{
			Drawer:      drawerSelfMarker,
			Words:       r.turn.candidates,
			Deadline:    deadline,
			Round:       r.Round,
			TotalRounds: r.Settings.TotalRounds,
		}))
	}
	r.broadcastExcept(drawer, protocol.MustNewMessage(protocol.MsgChooseWord, protocol.ChooseWordOfferPayload{
		Drawer:      drawer,
		Deadline:    deadline,
		Round:       r.Round,
		TotalRounds: r.Settings.TotalRounds,
	}))

	log.Printf("✏️  房间 %s 画手 %s 选词中...", r.ID, drawer)

	r.schedule(r.gameCfg.WordSelectTimeoutDuration(), r.autoSelectWord)
}

// ChooseWord 画手选词
func (r *Room) ChooseWord(playerID, word string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != types.RoomStateChangingTurn {
		return ErrInvalidState
	}
	if playerID != r.turn.drawer {
		return ErrNotDrawer
	}

	offered := false
	for _, w := range r.turn.candidates {
		if w == word {
			offered = true
			break
		}
	}
	if !offered {
		return ErrWordNotOffered
	}

	r.turn.word = word
	r.notifyWordSelected()
	r.startTurn()
	return nil
}

// autoSelectWord 选词超时，从候选词中随机代选
// 候选词为空（词池不足）时跳过本回合，不会 panic
func (r *Room) autoSelectWord() {
	if r.turn.word != "" {
		return
	}

	if len(r.turn.candidates) == 0 {
		log.Printf("⚠️  房间 %s 词池不足，跳过画手 %s 的回合", r.ID, r.turn.drawer)
		r.endTurn()
		return
	}

	r.turn.word = r.turn.candidates[rand.Intn(len(r.turn.candidates))]
	r.notifyWordSelected()
	r.startTurn()
}

// notifyWordSelected 广播选词完成，画手与其他玩家收到不同的状态标记
func (r *Room) notifyWordSelected() {
	drawer := r.turn.drawer
	if drawerPlayer := r.Players[drawer]; drawerPlayer != nil {
		drawerPlayer.Client.SendMessage(protocol.MustNewMessage(protocol.MsgChooseWord, protocol.ChooseWordOfferPayload{
			Drawer:      drawerSelfMarker,
			State:       "you-selected",
			Round:       r.Round,
			TotalRounds: r.Settings.TotalRounds,
		}))
	}
	r.broadcastExcept(drawer, protocol.MustNewMessage(protocol.MsgChooseWord, protocol.ChooseWordOfferPayload{
		Drawer:      drawer,
		State:       "selected",
		Round:       r.Round,
		TotalRounds: r.Settings.TotalRounds,
	}))
}

// startTurn 词已确定，进入作画阶段
func (r *Room) startTurn() {
	r.transition()
	r.State = types.RoomStatePlaying

	word := []rune(r.turn.word)
	r.turn.mask = make([]rune, len(word))
	r.turn.unrevealed = make([]int, len(word))
	for i := range word {
		r.turn.mask[i] = '_'
		r.turn.unrevealed[i] = i
	}
	r.turn.hintsUsed = 0
	r.turn.deadline = time.Now().Add(time.Duration(r.Settings.TurnDuration+turnGraceSeconds) * time.Second)

	log.Printf("🎨 房间 %s 开始作画，词长 %d", r.ID, len(word))

	r.schedule(time.Second, r.tick)
}

// tick 作画阶段的每秒回调
// 向未猜中者广播剩余时间和词面掩码，向已猜中者广播原词
func (r *Room) tick() {
	timeLeft := r.remainingSeconds()
	if timeLeft <= 0 {
		r.endTurn()
		return
	}

	// 时间走过 75% 时揭示一个随机字母，不重复揭示同一位置
	if r.turn.hintsUsed < 1 && r.Settings.HintsCount > 0 &&
		timeLeft <= r.Settings.TurnDuration/4 {
		r.revealLetter()
	}

	maskedMsg := protocol.MustNewMessage(protocol.MsgGameProgress, protocol.GameProgressPayload{
		State:    protocol.StatePlaying,
		TimeLeft: timeLeft,
		Word:     string(r.turn.mask),
	})
	fullMsg := protocol.MustNewMessage(protocol.MsgGameProgress, protocol.GameProgressPayload{
		State:    protocol.StatePlaying,
		TimeLeft: timeLeft,
		Word:     r.turn.word,
	})

	for id, player := range r.Players {
		if r.turn.guessed[id] {
			player.Client.SendMessage(fullMsg)
		} else {
			player.Client.SendMessage(maskedMsg)
		}
	}

	r.schedule(time.Second, r.tick)
}

// revealLetter 揭示一个尚未揭示的随机字母
func (r *Room) revealLetter() {
	if len(r.turn.unrevealed) == 0 {
		return
	}

	word := []rune(r.turn.word)
	idx := rand.Intn(len(r.turn.unrevealed))
	pos := r.turn.unrevealed[idx]
	r.turn.mask[pos] = word[pos]
	r.turn.unrevealed = append(r.turn.unrevealed[:idx], r.turn.unrevealed[idx+1:]...)
	r.turn.hintsUsed++
}

// HandleGuess 评估一次猜词
// 猜中返回 true：计分、压缩剩余时间，所有非画手都猜中时提前结束回合
func (r *Room) HandleGuess(playerID, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != types.RoomStatePlaying {
		return false
	}
	// 画手和已猜中的玩家不参与评估
	if r.turn.guessed[playerID] {
		return false
	}
	// 精确比较，大小写敏感，不做任何归一化
	if text != r.turn.word {
		return false
	}

	r.turn.guessed[playerID] = true

	timeLeft := r.remainingSeconds()
	if timeLeft < 0 {
		timeLeft = 0
	}

	// 猜中者得剩余秒数，画手得一半（向下取整）
	if guesser, exists := r.Players[playerID]; exists {
		guesser.Score += timeLeft
	}
	if drawer, exists := r.Players[r.turn.drawer]; exists {
		drawer.Score += timeLeft / 2
	}

	r.reduceTime()

	log.Printf("✅ 房间 %s 玩家 %s 猜中，+%d 分", r.ID, playerID, timeLeft)

	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayerList, protocol.PlayerListPayload{
		RoomID:  r.ID,
		Players: r.getAllPlayersInfo(),
	}))

	if r.allGuessed() {
		r.endTurn()
	}
	return true
}

// HasGuessed 查询玩家本回合是否已猜中（画手视为已猜中）
func (r *Room) HasGuessed(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.turn.guessed[playerID]
}

// GuessedPlayerIDs 返回本回合已猜中的玩家（含画手）
func (r *Room) GuessedPlayerIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.turn.guessed))
	for id := range r.turn.guessed {
		if _, exists := r.Players[id]; exists {
			ids = append(ids, id)
		}
	}
	return ids
}

// allGuessed 判断是否所有在房玩家都已猜中（画手预置在内）
func (r *Room) allGuessed() bool {
	count := 0
	for id := range r.turn.guessed {
		if _, exists := r.Players[id]; exists {
			count++
		}
	}
	return count == len(r.Players)
}

// remainingSeconds 当前阶段剩余整秒数
func (r *Room) remainingSeconds() int {
	return int(time.Until(r.turn.deadline) / time.Second)
}

// reduceTime 每次猜中后把剩余时间压缩到 3/4，给后猜者加压
// 只压不增，且不低于配置的下限
func (r *Room) reduceTime() {
	remaining := time.Until(r.turn.deadline)
	floor := r.gameCfg.TimeFloorDuration()
	if remaining <= floor {
		return
	}

	reduced := remaining * 3 / 4
	if reduced < floor {
		reduced = floor
	}
	r.turn.deadline = time.Now().Add(reduced)
}

// endTurn 回合结束：公布原词，短暂停顿后切换画手
func (r *Room) endTurn() {
	r.transition()
	r.State = types.RoomStateEndTurn

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameProgress, protocol.GameProgressPayload{
		State: protocol.StateEndTurn,
		Word:  r.turn.word,
	}))

	log.Printf("⏱️  房间 %s 回合结束，词为 %q", r.ID, r.turn.word)

	r.schedule(r.gameCfg.EndTurnPauseDuration(), r.changeTurn)
}

// endGame 所有轮次结束：公布最终排名，展示结束后删除房间
func (r *Room) endGame() {
	r.transition()
	r.State = types.RoomStateEnding

	// 按分数降序，同分保持加入顺序
	standings := r.getAllPlayersInfo()
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameProgress, protocol.GameProgressPayload{
		State:   protocol.StateEnding,
		Players: standings,
	}))

	log.Printf("🏆 房间 %s 游戏结束", r.ID)

	r.schedule(r.gameCfg.EndGamePauseDuration(), func() {
		r.State = types.RoomStateEnd
		r.broadcast(protocol.MustNewMessage(protocol.MsgGameProgress, protocol.GameProgressPayload{
			State: protocol.StateEnd,
		}))
		// 删除需要拿管理器锁，不能在持有 r.mu 时同步调用
		go r.server.GetRoomManager().DeleteRoom(r.ID)
	})
}

// CurrentDrawer 返回当前画手 ID
func (r *Room) CurrentDrawer() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.turn.drawer
}

// GetState 返回当前房间状态
func (r *Room) GetState() types.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}
