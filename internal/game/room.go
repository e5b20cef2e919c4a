package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/protocol"
)

const (
	// 结束后保留房间的时间
	endedRetention = 2 * time.Minute
	// 写入结果的超时时间
	recordTimeout = 5 * time.Second
	// 两次 tick 之间最多缓存的输入
	maxPendingActions = 64
)

// ErrRoomRunning 房间已经在运行
var ErrRoomRunning = errors.New("房间已经在运行")

// ResultRecorder 对局结果的持久化（Redis 排行榜、PostgreSQL 记录）
type ResultRecorder interface {
	RecordSession(ctx context.Context, rec models.SessionRecord) error
}

// Outbound 待发送的 WebSocket 消息
type Outbound struct {
	MessageType int // websocket.TextMessage 或 websocket.BinaryMessage
	Data        []byte
}

// RoomOptions 房间参数
type RoomOptions struct {
	Clock        Clock
	TickInterval time.Duration
	Encoding     protocol.Encoding
	Recorders    []ResultRecorder
	// Send 投递消息，返回 false 表示发送缓冲已满
	Send   func(Outbound) bool
	Logger *slog.Logger
}

// Room 单人游戏房间，独占一个会话并按固定间隔推进
type Room struct {
	ID        string
	PlayerID  int64
	CreatedAt time.Time

	session *Session
	opts    RoomOptions
	logger  *slog.Logger

	// 网络协程写入，游戏循环在 tick 开始时取走
	inputMutex  sync.Mutex
	pending     []models.Action
	inputClosed bool

	stateMutex sync.RWMutex
	status     models.RoomStatus
	endedAt    time.Time
	info       models.RoomInfo

	shutdown  chan struct{}
	stopOnce  sync.Once
	isRunning bool
}

// NewRoom 创建房间
func NewRoom(playerID int64, session *Session, opts RoomOptions) *Room {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Encoding == "" {
		opts.Encoding = protocol.EncodingJSON
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Send == nil {
		opts.Send = func(Outbound) bool { return true }
	}

	id := uuid.New().String()
	now := opts.Clock.Now()

	return &Room{
		ID:        id,
		PlayerID:  playerID,
		CreatedAt: now,
		session:   session,
		opts:      opts,
		logger:    opts.Logger.With("room", id, "player", playerID),
		status:    models.RoomPlaying,
		info: models.RoomInfo{
			ID:        id,
			PlayerID:  playerID,
			Status:    models.RoomPlaying,
			CreatedAt: now,
		},
		shutdown: make(chan struct{}),
	}
}

// Start 启动游戏循环
func (r *Room) Start() error {
	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	if r.isRunning {
		return ErrRoomRunning
	}
	r.isRunning = true

	r.logger.Info("房间启动", "tick", r.opts.TickInterval)
	go r.gameLoop()

	return nil
}

// Stop 停止房间，可重复调用
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.shutdown)
		r.markEnded()
		r.logger.Info("房间已停止")
	})
}

// PushAction 输入动作入队，可在任意 goroutine 调用。
// 房间结束后或缓冲已满时丢弃，返回实际入队的数量。
func (r *Room) PushAction(actions ...models.Action) int {
	r.inputMutex.Lock()
	defer r.inputMutex.Unlock()

	if r.inputClosed {
		return 0
	}
	n := min(len(actions), maxPendingActions-len(r.pending))
	if n <= 0 {
		return 0
	}
	r.pending = append(r.pending, actions[:n]...)
	return n
}

// closeInput 停止接收输入并丢弃未处理的动作
func (r *Room) closeInput() {
	r.inputMutex.Lock()
	defer r.inputMutex.Unlock()
	r.inputClosed = true
	r.pending = nil
}

// Status 房间状态
func (r *Room) Status() models.RoomStatus {
	r.stateMutex.RLock()
	defer r.stateMutex.RUnlock()
	return r.status
}

// Info 房间快照
func (r *Room) Info() models.RoomInfo {
	r.stateMutex.RLock()
	defer r.stateMutex.RUnlock()
	return r.info
}

// ShouldCleanup 结束超过保留时间后可以清理
func (r *Room) ShouldCleanup(now time.Time) bool {
	r.stateMutex.RLock()
	defer r.stateMutex.RUnlock()
	return r.status == models.RoomEnded && now.Sub(r.endedAt) > endedRetention
}

// gameLoop 游戏主循环
func (r *Room) gameLoop() {
	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !r.tick() {
				return
			}
		case <-r.shutdown:
			return
		}
	}
}

// tick 推进一帧并发送，游戏结束后返回 false
func (r *Room) tick() bool {
	r.inputMutex.Lock()
	actions := r.pending
	r.pending = nil
	r.inputMutex.Unlock()

	r.session.Push(actions...)
	r.session.Update(r.opts.Clock.Now())

	r.stateMutex.Lock()
	r.info.FrameID = r.session.FrameID()
	r.info.Score = r.session.Score()
	r.info.Defeated = r.session.Defeated()
	r.stateMutex.Unlock()

	r.broadcastGameState()

	if r.session.Over() {
		r.endGame()
		return false
	}
	return true
}

// endGame 结束游戏：通知客户端并写入结果
func (r *Room) endGame() {
	r.markEnded()

	rec := models.SessionRecord{
		ID:              r.ID,
		PlayerID:        r.PlayerID,
		Score:           r.session.Score(),
		EnemiesDefeated: r.session.Defeated(),
		StartTime:       r.session.StartedAt(),
		EndTime:         r.session.LastTick(),
	}

	r.logger.Info("游戏结束", "score", rec.Score, "defeated", rec.EnemiesDefeated, "duration", rec.Duration())
	r.broadcastGameEnd(rec)
	r.recordResult(rec)
}

func (r *Room) markEnded() {
	r.closeInput()

	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	if r.status == models.RoomEnded {
		return
	}
	r.status = models.RoomEnded
	r.endedAt = r.opts.Clock.Now()
	r.info.Status = models.RoomEnded
	r.info.EndedAt = r.endedAt
}

// recordResult 依次写入所有存储，单个存储失败不影响其他存储
func (r *Room) recordResult(rec models.SessionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	for _, recorder := range r.opts.Recorders {
		if err := recorder.RecordSession(ctx, rec); err != nil {
			r.logger.Error("保存对局结果失败", "error", err)
		}
	}
}

// broadcastGameState 发送当前帧
func (r *Room) broadcastGameState() {
	data, err := protocol.EncodeFrame(protocol.BuildFrame(r.session), r.opts.Encoding)
	if err != nil {
		r.logger.Error("编码帧失败", "error", err)
		return
	}

	msgType := websocket.TextMessage
	if r.opts.Encoding.Binary() {
		msgType = websocket.BinaryMessage
	}

	if !r.opts.Send(Outbound{MessageType: msgType, Data: data}) {
		r.logger.Debug("发送缓冲已满，丢弃帧", "frame", r.session.FrameID())
	}
}

// broadcastGameEnd 发送游戏结束通知
func (r *Room) broadcastGameEnd(rec models.SessionRecord) {
	sendJSON(r.opts.Send, r.logger, protocol.MsgGameOver, protocol.GameOverPayload{
		Score:           rec.Score,
		EnemiesDefeated: rec.EnemiesDefeated,
		DurationMs:      rec.Duration().Milliseconds(),
	})
}
