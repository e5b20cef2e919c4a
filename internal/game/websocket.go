// websocket.go

package game

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/input"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/protocol"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小，客户端只发送按键
	maxMessageSize = 4 * 1024

	// 发送缓冲
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PlayerConnection 玩家连接
type PlayerConnection struct {
	ID       string
	PlayerID int64
	Room     *Room

	send   chan Outbound
	mu     sync.Mutex
	closed bool
}

func newPlayerConnection(playerID int64) *PlayerConnection {
	return &PlayerConnection{
		ID:       uuid.New().String(),
		PlayerID: playerID,
		send:     make(chan Outbound, sendBufferSize),
	}
}

// trySend 非阻塞投递，连接关闭或缓冲已满时返回 false
func (c *PlayerConnection) trySend(msg Outbound) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close 关闭发送通道，返回是否由本次调用关闭
func (c *PlayerConnection) close() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.closed = true
	close(c.send)
	return true
}

// authenticate 从请求中取出玩家ID。
// 配置了密钥时要求令牌（query token 或 Authorization: Bearer），否则信任 player_id 参数。
func (s *GameServer) authenticate(r *http.Request) (int64, error) {
	secret := s.config.Auth.Secret
	if secret == "" {
		id := r.URL.Query().Get("player_id")
		if id == "" {
			return 0, nil
		}
		playerID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, ErrInvalidToken
		}
		return playerID, nil
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		return 0, ErrInvalidToken
	}

	return ParseToken(secret, token, s.deps.Clock.Now())
}

// handleWSConnection 处理WebSocket连接
func (s *GameServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.authenticate(r)
	if err != nil {
		s.logger.Warn("认证失败", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	playerConn := newPlayerConnection(playerID)
	room, err := s.CreateRoom(playerID, playerConn.trySend)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTooManyRooms) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}
	playerConn.Room = room

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket升级失败", "error", err)
		s.RemoveRoom(room.ID)
		return
	}

	s.connMutex.Lock()
	s.connections[playerConn.ID] = playerConn
	s.connMutex.Unlock()

	s.logger.Info("玩家已连接", "player", playerID, "conn", playerConn.ID)

	go s.writePump(conn, playerConn)
	go s.readPump(conn, playerConn)

	if err := room.Start(); err != nil {
		s.logger.Error("启动房间失败", "room", room.ID, "error", err)
	}
}

// readPump 从WebSocket读取数据
func (s *GameServer) readPump(conn *websocket.Conn, player *PlayerConnection) {
	defer func() {
		s.closeConnection(player)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("WebSocket错误", "error", err)
			}
			return
		}

		s.handleMessage(player, message)
	}
}

// writePump 向WebSocket写入数据
func (s *GameServer) writePump(conn *websocket.Conn, player *PlayerConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-player.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(msg.MessageType, msg.Data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeConnection 关闭玩家连接并移除其房间
func (s *GameServer) closeConnection(player *PlayerConnection) {
	s.connMutex.Lock()
	delete(s.connections, player.ID)
	s.connMutex.Unlock()

	if player.Room != nil {
		s.RemoveRoom(player.Room.ID)
	}

	if player.close() {
		s.logger.Info("玩家已断开连接", "player", player.PlayerID)
	}
}

// handleMessage 处理接收到的消息
func (s *GameServer) handleMessage(player *PlayerConnection, data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Debug("解析消息失败", "error", err)
		s.sendError(player, "消息格式错误")
		return
	}

	switch msg.Type {
	case protocol.MsgKey:
		var ev input.KeyEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			s.sendError(player, "按键格式错误")
			return
		}
		if action, ok := input.Translate(ev); ok {
			s.pushAction(player, action)
		}
	case protocol.MsgAction:
		var p protocol.ActionPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError(player, "动作格式错误")
			return
		}
		action, err := input.ParseAction(p.Action, p.Direction)
		if err != nil {
			s.sendError(player, err.Error())
			return
		}
		s.pushAction(player, action)
	case protocol.MsgPing:
		sendJSON(player.trySend, s.logger, protocol.MsgPong, nil)
	default:
		s.logger.Debug("未知消息类型", "type", msg.Type)
		s.sendError(player, "未知消息类型: "+msg.Type)
	}
}

// sendError 向玩家发送错误消息
func (s *GameServer) sendError(player *PlayerConnection, message string) {
	sendJSON(player.trySend, s.logger, protocol.MsgError, protocol.ErrorPayload{Message: message})
}

// sendJSON 以文本消息发送控制消息
func sendJSON(send func(Outbound) bool, logger *slog.Logger, msgType string, payload any) bool {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		logger.Error("序列化消息失败", "type", msgType, "error", err)
		return false
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("序列化消息失败", "type", msgType, "error", err)
		return false
	}
	return send(Outbound{MessageType: websocket.TextMessage, Data: data})
}

// pushAction 转交给房间，房间结束或输入过多时丢弃
func (s *GameServer) pushAction(player *PlayerConnection, action models.Action) {
	if player.Room.PushAction(action) == 0 {
		s.logger.Debug("丢弃输入", "player", player.PlayerID, "status", player.Room.Status())
	}
}
