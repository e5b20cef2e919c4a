// db_manager.go

package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/jacl-coder/PixelStorm-Arcade/config"
	"github.com/jacl-coder/PixelStorm-Arcade/internal/models"
	"github.com/jacl-coder/PixelStorm-Arcade/pkg/db"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	action := flag.String("action", "help", "操作类型: reset, init, setup, recent, help")
	playerID := flag.Int64("player", 0, "recent 操作查询的玩家ID")
	limit := flag.Int("limit", 10, "recent 操作返回的记录数")
	flag.Parse()

	// 显示帮助信息
	if *action == "help" {
		showHelp()
		return
	}

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库连接
	conn, err := db.OpenPostgres(context.Background(), config.GlobalConfig.Database)
	if err != nil {
		log.Fatalf("初始化PostgreSQL失败: %v", err)
	}
	defer db.ClosePostgres(conn)

	// 执行操作
	switch *action {
	case "reset":
		resetDatabase(conn)
	case "init":
		initDatabase(conn)
	case "setup":
		resetDatabase(conn)
		initDatabase(conn)
	case "recent":
		listRecentSessions(conn, *playerID, *limit)
	default:
		log.Fatalf("未知操作: %s", *action)
	}
}

// showHelp 显示帮助信息
func showHelp() {
	log.Println("PixelStorm Arcade 数据库管理工具")
	log.Println("")
	log.Println("用法:")
	log.Println("  go run scripts/db_manager.go -action=<操作> [-config=<配置文件>]")
	log.Println("")
	log.Println("操作:")
	log.Println("  reset   - 重置数据库（删除所有表和数据）")
	log.Println("  init    - 初始化数据库（创建表结构）")
	log.Println("  setup   - 重置后重新初始化")
	log.Println("  recent  - 查看玩家最近的对局 (-player=<ID> -limit=<N>)")
	log.Println("  help    - 显示此帮助信息")
	log.Println("")
	log.Println("示例:")
	log.Println("  go run scripts/db_manager.go -action=setup")
	log.Println("  go run scripts/db_manager.go -action=recent -player=42")
}

// resetDatabase 重置数据库
func resetDatabase(conn *sql.DB) {
	log.Println("⚠️  正在重置数据库，这将删除所有对局记录！")

	if err := db.DropAllTables(context.Background(), conn); err != nil {
		log.Fatalf("重置数据库失败: %v", err)
	}

	log.Println("✅ 数据库重置完成")
}

// initDatabase 初始化数据库
func initDatabase(conn *sql.DB) {
	log.Println("🚀 正在初始化数据库...")

	if err := db.InitAllTables(context.Background(), conn); err != nil {
		log.Fatalf("初始化数据库表失败: %v", err)
	}

	log.Println("✅ 数据库初始化完成")
	log.Println("📋 已创建的表:")
	log.Println("  - session_records (对局记录表)")
}

// listRecentSessions 打印玩家最近的对局
func listRecentSessions(conn *sql.DB, playerID int64, limit int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	records, err := models.NewSessionStore(conn).RecentSessions(ctx, playerID, limit)
	if err != nil {
		log.Fatalf("查询对局记录失败: %v", err)
	}

	if len(records) == 0 {
		log.Printf("玩家 %d 暂无对局记录", playerID)
		return
	}

	for _, rec := range records {
		log.Printf("%s  得分 %5d  击败 %3d  时长 %v  结束于 %s",
			rec.ID, rec.Score, rec.EnemiesDefeated, rec.Duration().Round(time.Second), rec.EndTime.Format(time.DateTime))
	}
}
