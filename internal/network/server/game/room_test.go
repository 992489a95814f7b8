package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/network/protocol"
	"github.com/palemoky/draw-guess/internal/network/server/types"
	"github.com/palemoky/draw-guess/internal/testutil"
)

func newTestManager(t *testing.T) (*RoomManager, *testutil.FakeServerContext) {
	t.Helper()

	ctx := testutil.NewFakeServerContext()
	rm := NewRoomManager(ctx, &config.Default().Game)
	ctx.RoomManager = rm
	return rm, ctx
}

func createTestRoom(t *testing.T, rm *RoomManager, host *testutil.SimpleClient) *Room {
	t.Helper()

	roomAny, err := rm.CreateRoom(host, nil)
	require.NoError(t, err)
	room, ok := roomAny.(*Room)
	require.True(t, ok)
	return room
}

func TestRoomManager_CreateRoom(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}

	room := createTestRoom(t, rm, host)

	// 8 位字母数字房间号
	assert.Len(t, room.ID, 8)
	assert.Equal(t, "p1", room.HostID)
	assert.Equal(t, types.RoomStateWaiting, room.State)
	assert.Equal(t, room.ID, host.GetRoom())

	// 创建者自动加入，初始分数为 0
	require.Len(t, room.Players, 1)
	assert.Equal(t, 0, room.Players["p1"].Score)
	assert.Equal(t, []string{"p1"}, room.PlayerOrder)

	// 默认设置
	assert.Equal(t, defaultMaxPlayers, room.Settings.MaxPlayers)
	assert.Equal(t, defaultTotalRounds, room.Settings.TotalRounds)
	assert.Equal(t, defaultTurnDuration, room.Settings.TurnDuration)
	assert.NotEmpty(t, room.Words)
}

func TestRoomManager_CreateRoom_WithSettings(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}

	roomAny, err := rm.CreateRoom(host, &protocol.RoomSettings{
		MaxPlayers:   4,
		TotalRounds:  5,
		TurnDuration: 60,
		CustomWords:  []string{"cat", "dog", "fish"},
	})
	require.NoError(t, err)
	room := roomAny.(*Room)

	assert.Equal(t, 4, room.Settings.MaxPlayers)
	assert.Equal(t, 5, room.Settings.TotalRounds)
	assert.Equal(t, 60, room.Settings.TurnDuration)
	// 未提供的字段保持默认
	assert.Equal(t, defaultWordsCount, room.Settings.WordsCount)
	assert.Equal(t, []string{"cat", "dog", "fish"}, room.Words)
}

func TestRoomManager_Configure(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)

	// 只应用非零字段
	ok := rm.Configure(room.ID, protocol.RoomSettings{TotalRounds: 7})
	assert.True(t, ok)
	assert.Equal(t, 7, room.Settings.TotalRounds)
	assert.Equal(t, defaultTurnDuration, room.Settings.TurnDuration)

	// 房间不存在时静默失败
	assert.False(t, rm.Configure("NOPE1234", protocol.RoomSettings{TotalRounds: 1}))
}

func TestRoomManager_AddPlayer(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)

	guest := &testutil.SimpleClient{ID: "p2", Name: "Bob"}
	err := rm.AddPlayer(room.ID, guest)
	require.NoError(t, err)

	assert.Len(t, room.Players, 2)
	assert.Equal(t, []string{"p1", "p2"}, room.PlayerOrder)
	assert.Equal(t, room.ID, guest.GetRoom())

	// 房主收到加入广播
	assert.NotEmpty(t, host.MessagesOfType(protocol.MsgPlayerJoined))

	// 玩家列表不会出现重复身份
	err = rm.AddPlayer(room.ID, guest)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)
	assert.Len(t, room.Players, 2)

	// 房间不存在
	err = rm.AddPlayer("NOPE1234", &testutil.SimpleClient{ID: "p3"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomManager_AddPlayer_RoomFull(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	roomAny, err := rm.CreateRoom(host, &protocol.RoomSettings{MaxPlayers: 2})
	require.NoError(t, err)
	room := roomAny.(*Room)

	require.NoError(t, rm.AddPlayer(room.ID, &testutil.SimpleClient{ID: "p2", Name: "Bob"}))

	err = rm.AddPlayer(room.ID, &testutil.SimpleClient{ID: "p3", Name: "Carol"})
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRoomManager_AddPlayer_GameStarted(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)
	require.NoError(t, rm.AddPlayer(room.ID, &testutil.SimpleClient{ID: "p2", Name: "Bob"}))

	require.NoError(t, room.StartGame("p1", nil))

	err := rm.AddPlayer(room.ID, &testutil.SimpleClient{ID: "p3", Name: "Carol"})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRoomManager_RemovePlayer(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)
	guest := &testutil.SimpleClient{ID: "p2", Name: "Bob"}
	require.NoError(t, rm.AddPlayer(room.ID, guest))

	rm.RemovePlayer(room.ID, "p2")

	assert.Len(t, room.Players, 1)
	assert.Equal(t, []string{"p1"}, room.PlayerOrder)
	assert.Empty(t, guest.GetRoom())
	assert.NotEmpty(t, host.MessagesOfType(protocol.MsgPlayerLeft))
	assert.NotEmpty(t, host.MessagesOfType(protocol.MsgPlayerList))

	// 最后一名玩家离开后房间被同步删除
	rm.RemovePlayer(room.ID, "p1")
	assert.Nil(t, rm.GetRoom(room.ID))
	assert.Equal(t, 0, rm.GetActiveRoomsCount())
}

func TestRoomManager_RemovePlayer_UnknownPlayer(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)

	// 不在房间里的玩家是 no-op
	rm.RemovePlayer(room.ID, "ghost")
	assert.Len(t, room.Players, 1)
}

func TestRoomManager_DeleteRoom_Idempotent(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)

	rm.DeleteRoom(room.ID)
	assert.Nil(t, rm.GetRoom(room.ID))

	// 重复删除是 no-op
	assert.NotPanics(t, func() {
		rm.DeleteRoom(room.ID)
	})
}

func TestRoomManager_HandleDisconnect_HostWhileWaiting(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)
	guest := &testutil.SimpleClient{ID: "p2", Name: "Bob"}
	require.NoError(t, rm.AddPlayer(room.ID, guest))

	// 房主在等待阶段断线，房间立即关闭并通知所有人
	rm.HandleDisconnect("p1", room.ID)

	assert.Nil(t, rm.GetRoom(room.ID))
	assert.NotEmpty(t, guest.MessagesOfType(protocol.MsgRoomClosed))
}

func TestRoomManager_HandleDisconnect_RegularPlayer(t *testing.T) {
	rm, _ := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)
	guest := &testutil.SimpleClient{ID: "p2", Name: "Bob"}
	require.NoError(t, rm.AddPlayer(room.ID, guest))

	rm.HandleDisconnect("p2", room.ID)

	assert.NotNil(t, rm.GetRoom(room.ID))
	assert.Len(t, room.Players, 1)
}

func TestRoomManager_HandleDisconnect_UpdatesSessionIndex(t *testing.T) {
	rm, ctx := newTestManager(t)
	host := &testutil.SimpleClient{ID: "p1", Name: "Alice"}
	room := createTestRoom(t, rm, host)
	guest := &testutil.SimpleClient{ID: "p2", Name: "Bob"}
	require.NoError(t, rm.AddPlayer(room.ID, guest))

	// 会话索引写入是异步的，稍等生效
	assert.Eventually(t, func() bool {
		roomID, _ := ctx.Sessions.GetRoom(context.Background(), "p2")
		return roomID == room.ID
	}, time.Second, 10*time.Millisecond)

	rm.HandleDisconnect("p2", room.ID)

	assert.Eventually(t, func() bool {
		roomID, _ := ctx.Sessions.GetRoom(context.Background(), "p2")
		return roomID == ""
	}, time.Second, 10*time.Millisecond)
}

func TestRoom_LobbyCodeUnique(t *testing.T) {
	rm, _ := newTestManager(t)

	codes := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room := createTestRoom(t, rm, &testutil.SimpleClient{ID: string(rune('A' + i))})
		assert.False(t, codes[room.ID], "duplicate lobby code %s", room.ID)
		codes[room.ID] = true
	}
}
