package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/config"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/protocol"
)

var (
	// ErrServerRunning 服务器已经在运行
	ErrServerRunning = errors.New("服务器已经在运行")
	// ErrTooManyRooms 房间数量达到上限
	ErrTooManyRooms = errors.New("房间数量已达上限")
)

// Dependencies 服务器的外部依赖，均可为空
type Dependencies struct {
	Clock       Clock
	Logger      *slog.Logger
	Leaderboard Leaderboard
	History     SessionHistory
	Recorders   []ResultRecorder
}

// GameServer 游戏服务器，每个 WebSocket 连接对应一个房间
type GameServer struct {
	config   *config.Config
	deps     Dependencies
	encoding protocol.Encoding
	logger   *slog.Logger
	stats    *StatsHandler
	limiter  *RateLimiter // 为空时不限制连接频率

	rooms       map[string]*Room
	roomsMutex  sync.RWMutex
	connections map[string]*PlayerConnection
	connMutex   sync.RWMutex

	httpServer *http.Server

	// 关闭信号
	shutdown  chan struct{}
	isRunning bool
}

// NewGameServer 创建新的游戏服务器
func NewGameServer(cfg *config.Config, deps Dependencies) (*GameServer, error) {
	enc, err := protocol.ParseEncoding(cfg.Server.FrameEncoding)
	if err != nil {
		return nil, err
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &GameServer{
		config:      cfg,
		deps:        deps,
		encoding:    enc,
		logger:      deps.Logger,
		stats:       NewStatsHandler(deps.Leaderboard, deps.History, deps.Logger),
		rooms:       make(map[string]*Room),
		connections: make(map[string]*PlayerConnection),
		shutdown:    make(chan struct{}),
	}
	if cfg.Server.RateLimit > 0 {
		proxies, err := cfg.Server.TrustedProxyPrefixes()
		if err != nil {
			return nil, err
		}
		s.limiter = NewRateLimiter(cfg.Server.RateLimit, deps.Clock, proxies)
	}

	return s, nil
}

// Start 启动游戏服务器
func (s *GameServer) Start() error {
	if s.isRunning {
		return ErrServerRunning
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.GamePort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("游戏服务器启动", "port", s.config.Server.GamePort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP服务器错误", "error", err)
		}
	}()

	go s.roomManager()

	s.isRunning = true
	return nil
}

// Stop 停止游戏服务器
func (s *GameServer) Stop(ctx context.Context) error {
	if !s.isRunning {
		return nil
	}

	close(s.shutdown)

	s.connMutex.RLock()
	conns := make([]*PlayerConnection, 0, len(s.connections))
	for _, c := range s.connections {
		conns = append(conns, c)
	}
	s.connMutex.RUnlock()

	for _, c := range conns {
		s.closeConnection(c)
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器关闭错误: %w", err)
	}

	s.isRunning = false
	s.logger.Info("游戏服务器已停止")
	return nil
}

// Handler HTTP处理器
func (s *GameServer) Handler() http.Handler {
	api := http.NewServeMux()

	// 健康检查端点
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	api.HandleFunc("GET /rooms", s.handleRooms)
	s.stats.RegisterHandlers(api)

	// WebSocket 连接端点不经过日志中间件
	var ws http.Handler = http.HandlerFunc(s.handleWSConnection)
	if s.limiter != nil {
		ws = s.limiter.Middleware(ws)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", ws)
	mux.Handle("/", CORSMiddleware(LoggingMiddleware(s.logger, api)))

	return mux
}

// handleRooms 列出当前房间
func (s *GameServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.ListRooms()
	infos := make([]models.RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, room.Info())
	}
	s.stats.sendSuccessResponse(w, "查询成功", infos)
}

// roomManager 房间管理器
func (s *GameServer) roomManager() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupRooms()
		case <-s.shutdown:
			return
		}
	}
}

// cleanupRooms 清理已结束的房间
func (s *GameServer) cleanupRooms() {
	now := s.deps.Clock.Now()

	s.roomsMutex.Lock()
	defer s.roomsMutex.Unlock()

	for id, room := range s.rooms {
		if room.ShouldCleanup(now) {
			s.logger.Info("清理已结束房间", "room", id)
			room.Stop()
			delete(s.rooms, id)
		}
	}
}

// CreateRoom 为玩家创建房间，超过上限时返回错误
func (s *GameServer) CreateRoom(playerID int64, send func(Outbound) bool) (*Room, error) {
	session, err := NewSessionFromConfig(s.config.Game, s.deps.Clock.Now())
	if err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}

	room := NewRoom(playerID, session, RoomOptions{
		Clock:        s.deps.Clock,
		TickInterval: s.config.Server.TickInterval,
		Encoding:     s.encoding,
		Recorders:    s.deps.Recorders,
		Send:         send,
		Logger:       s.logger,
	})

	s.roomsMutex.Lock()
	if limit := s.config.Server.MaxRoomCount; limit > 0 && len(s.rooms) >= limit {
		s.roomsMutex.Unlock()
		return nil, ErrTooManyRooms
	}
	s.rooms[room.ID] = room
	s.roomsMutex.Unlock()

	s.logger.Info("创建房间", "room", room.ID, "player", playerID)
	return room, nil
}

// RemoveRoom 停止并移除房间
func (s *GameServer) RemoveRoom(roomID string) {
	s.roomsMutex.Lock()
	room, ok := s.rooms[roomID]
	delete(s.rooms, roomID)
	s.roomsMutex.Unlock()

	if ok {
		room.Stop()
	}
}

// GetRoom 获取房间
func (s *GameServer) GetRoom(roomID string) (*Room, bool) {
	s.roomsMutex.RLock()
	defer s.roomsMutex.RUnlock()

	room, exists := s.rooms[roomID]
	return room, exists
}

// ListRooms 列出所有房间
func (s *GameServer) ListRooms() []*Room {
	s.roomsMutex.RLock()
	defer s.roomsMutex.RUnlock()

	rooms := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}
