// stats.go

package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
)

// 查询条数限制
const (
	defaultLeaderboardLimit = 10
	defaultHistoryLimit     = 10
	maxQueryLimit           = 100
)

// Leaderboard 排行榜查询（Redis）
type Leaderboard interface {
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	GetPlayerRank(ctx context.Context, playerID int64) (int, error)
	GetLastSession(ctx context.Context, playerID int64) (*models.SessionRecord, error)
}

// SessionHistory 对局历史查询（PostgreSQL）
type SessionHistory interface {
	RecentSessions(ctx context.Context, playerID int64, limit int) ([]models.SessionRecord, error)
}

// StatsHandler 战绩处理器，存储未启用时对应接口返回 503
type StatsHandler struct {
	leaderboard Leaderboard
	history     SessionHistory
	logger      *slog.Logger
}

// NewStatsHandler 创建战绩处理器
func NewStatsHandler(leaderboard Leaderboard, history SessionHistory, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		leaderboard: leaderboard,
		history:     history,
		logger:      logger,
	}
}

// RegisterHandlers 注册HTTP处理器
func (h *StatsHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /leaderboard", h.handleLeaderboard)
	mux.HandleFunc("GET /players/{id}/stats", h.handlePlayerStats)
	mux.HandleFunc("GET /players/{id}/sessions", h.handlePlayerSessions)
}

// StatsResponse 战绩响应
type StatsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PlayerStats 玩家战绩
type PlayerStats struct {
	PlayerID    int64                 `json:"player_id"`
	Rank        int                   `json:"rank"` // 不在榜上为 -1
	LastSession *models.SessionRecord `json:"last_session,omitempty"`
}

// handleLeaderboard 处理排行榜查询
func (h *StatsHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.leaderboard == nil {
		h.sendErrorResponse(w, "排行榜未启用", http.StatusServiceUnavailable)
		return
	}

	limit, ok := h.parseLimit(w, r, defaultLeaderboardLimit)
	if !ok {
		return
	}

	entries, err := h.leaderboard.GetLeaderboard(r.Context(), limit)
	if err != nil {
		h.logger.Error("查询排行榜失败", "error", err)
		h.sendErrorResponse(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "查询成功", entries)
}

// handlePlayerStats 处理玩家战绩查询
func (h *StatsHandler) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if h.leaderboard == nil {
		h.sendErrorResponse(w, "排行榜未启用", http.StatusServiceUnavailable)
		return
	}

	playerID, ok := h.parsePlayerID(w, r)
	if !ok {
		return
	}

	rank, err := h.leaderboard.GetPlayerRank(r.Context(), playerID)
	if err != nil {
		h.logger.Error("查询玩家排名失败", "player", playerID, "error", err)
		h.sendErrorResponse(w, "查询玩家战绩失败", http.StatusInternalServerError)
		return
	}

	last, err := h.leaderboard.GetLastSession(r.Context(), playerID)
	if err != nil {
		h.logger.Error("查询最近对局失败", "player", playerID, "error", err)
		h.sendErrorResponse(w, "查询玩家战绩失败", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "查询成功", PlayerStats{
		PlayerID:    playerID,
		Rank:        rank,
		LastSession: last,
	})
}

// handlePlayerSessions 处理玩家对局历史查询
func (h *StatsHandler) handlePlayerSessions(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.sendErrorResponse(w, "对局记录未启用", http.StatusServiceUnavailable)
		return
	}

	playerID, ok := h.parsePlayerID(w, r)
	if !ok {
		return
	}
	limit, ok := h.parseLimit(w, r, defaultHistoryLimit)
	if !ok {
		return
	}

	records, err := h.history.RecentSessions(r.Context(), playerID, limit)
	if err != nil {
		h.logger.Error("查询对局历史失败", "player", playerID, "error", err)
		h.sendErrorResponse(w, "查询对局历史失败", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.SessionRecord{}
	}

	h.sendSuccessResponse(w, "查询成功", records)
}

func (h *StatsHandler) parsePlayerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return 0, false
	}
	return playerID, true
}

func (h *StatsHandler) parseLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		h.sendErrorResponse(w, "无效的 limit", http.StatusBadRequest)
		return 0, false
	}
	return min(n, maxQueryLimit), true
}

// sendSuccessResponse 发送成功响应
func (h *StatsHandler) sendSuccessResponse(w http.ResponseWriter, message string, data any) {
	h.send(w, http.StatusOK, StatsResponse{Success: true, Message: message, Data: data})
}

// sendErrorResponse 发送错误响应
func (h *StatsHandler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	h.send(w, statusCode, StatsResponse{Success: false, Message: message})
}

func (h *StatsHandler) send(w http.ResponseWriter, statusCode int, resp StatsResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Warn("编码响应失败", "error", err)
	}
}
