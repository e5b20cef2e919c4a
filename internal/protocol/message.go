package protocol

import "encoding/json"

// 客户端消息类型
const (
	MsgKey    = "key"    // 键盘事件
	MsgAction = "action" // 直接发送动作
	MsgPing   = "ping"
)

// 服务器消息类型
const (
	MsgPong     = "pong"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// Message 消息结构
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ActionPayload action 消息的内容
type ActionPayload struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	Score           int   `json:"score"`
	EnemiesDefeated int   `json:"enemies_defeated"`
	DurationMs      int64 `json:"duration_ms"`
}

// ErrorPayload 错误通知
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage 构造带内容的消息
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: b}, nil
}
