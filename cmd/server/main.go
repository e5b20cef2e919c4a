// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/config"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/game"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/pkg/db"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	issueFor := flag.Int64("issue-token", 0, "为指定玩家ID签发令牌后退出")
	flag.Parse()

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := &config.GlobalConfig

	slog.SetDefault(newLogger(cfg.Server))

	if *issueFor != 0 {
		issueToken(cfg.Auth, *issueFor)
		return
	}

	deps := game.Dependencies{Logger: slog.Default()}

	// 初始化数据库连接
	if cfg.Database.Enabled {
		sqlDB, err := db.OpenPostgres(context.Background(), cfg.Database)
		if err != nil {
			log.Fatalf("初始化PostgreSQL失败: %v", err)
		}
		defer db.ClosePostgres(sqlDB)

		if err := db.InitAllTables(context.Background(), sqlDB); err != nil {
			log.Fatalf("初始化数据库表失败: %v", err)
		}
		store := models.NewSessionStore(sqlDB)
		deps.History = store
		deps.Recorders = append(deps.Recorders, store)
	}

	// 初始化Redis连接
	if cfg.Redis.Enabled {
		client, err := db.OpenRedis(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		defer db.CloseRedis(client)

		board := models.NewRedisLeaderboard(client)
		deps.Leaderboard = board
		deps.Recorders = append(deps.Recorders, board)
	}

	server, err := game.NewGameServer(cfg, deps)
	if err != nil {
		log.Fatalf("创建游戏服务器失败: %v", err)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("启动游戏服务器失败: %v", err)
	}

	if cfg.Auth.Secret == "" {
		slog.Warn("未配置 auth.secret，连接将不做认证")
	}

	// 等待中断信号
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("接收到关闭信号，正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		slog.Error("关闭服务器失败", "error", err)
	}

	slog.Info("服务器已安全关闭")
}

// newLogger 按配置创建日志，debug 模式输出文本，否则输出 JSON
func newLogger(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Debug {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// issueToken 打印令牌，供客户端以 /ws?token= 连接
func issueToken(cfg config.AuthConfig, playerID int64) {
	if cfg.Secret == "" {
		log.Fatal("未配置 auth.secret，无法签发令牌")
	}

	token, err := game.IssueToken(cfg.Secret, playerID, cfg.TokenTTL, time.Now())
	if err != nil {
		log.Fatalf("签发令牌失败: %v", err)
	}
	fmt.Println(token)
}
