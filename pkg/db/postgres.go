package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/config"
	_ "github.com/lib/pq"
)

// 连接检查超时时间
const pingTimeout = 5 * time.Second

// OpenPostgres 按配置打开 PostgreSQL 连接池并确认可用
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	configurePool(conn, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("数据库Ping失败: %w", err)
	}

	slog.Info("成功连接到PostgreSQL数据库", "db", cfg.DBName, "max_open", cfg.MaxOpenConns)
	return conn, nil
}

// configurePool 设置连接池上限，未配置的项保持 database/sql 默认值
func configurePool(conn *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// ClosePostgres 关闭数据库连接
func ClosePostgres(conn *sql.DB) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		slog.Warn("关闭数据库连接时发生错误", "error", err)
		return
	}
	slog.Info("数据库连接已关闭")
}
