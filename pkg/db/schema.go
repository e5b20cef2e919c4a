// schema.go

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// 统一的数据库表结构定义

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 对局记录表
CREATE TABLE IF NOT EXISTS session_records (
    id VARCHAR(50) PRIMARY KEY,
    player_id BIGINT NOT NULL,
    score INT NOT NULL DEFAULT 0,
    enemies_defeated INT NOT NULL DEFAULT 0,
    start_time TIMESTAMP WITH TIME ZONE NOT NULL,
    end_time TIMESTAMP WITH TIME ZONE NOT NULL
);

-- 创建索引以提高查询性能
CREATE INDEX IF NOT EXISTS idx_session_records_player_id ON session_records(player_id, end_time DESC);
CREATE INDEX IF NOT EXISTS idx_session_records_score ON session_records(score DESC);
`

// DropAllTablesSQL 删除所有表的SQL语句
const DropAllTablesSQL = `
DROP TABLE IF EXISTS session_records CASCADE;
`

// InitAllTables 初始化所有数据库表
func InitAllTables(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, CreateAllTablesSQL); err != nil {
		return fmt.Errorf("创建数据表失败: %w", err)
	}
	return nil
}

// DropAllTables 删除所有数据库表
func DropAllTables(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, DropAllTablesSQL); err != nil {
		return fmt.Errorf("删除数据表失败: %w", err)
	}
	return nil
}
