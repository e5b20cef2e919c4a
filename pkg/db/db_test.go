package db

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jacl-coder/PixelStorm-Arcade/config"
)

func redisConfigFor(t *testing.T, mr *miniredis.Miniredis) config.RedisConfig {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return config.RedisConfig{Host: mr.Host(), Port: port, PoolSize: 4, MinIdleConns: 1}
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := OpenRedis(context.Background(), redisConfigFor(t, mr))
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	defer CloseRedis(client)

	if got := client.Options().PoolSize; got != 4 {
		t.Errorf("PoolSize = %d, want 4", got)
	}
	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("stored = %q, want v", got)
	}
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisConfigFor(t, mr)
	mr.Close()

	if _, err := OpenRedis(context.Background(), cfg); err == nil {
		t.Error("expected error for stopped server")
	}
}

func TestConfigurePool(t *testing.T) {
	conn, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()

	configurePool(conn, config.DatabaseConfig{MaxOpenConns: 7, MaxIdleConns: 3})

	if got := conn.Stats().MaxOpenConnections; got != 7 {
		t.Errorf("MaxOpenConnections = %d, want 7", got)
	}
}

func TestSchema(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()
	ctx := context.Background()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS session_records`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DROP TABLE IF EXISTS session_records`).WillReturnResult(sqlmock.NewResult(0, 0))
	dbErr := errors.New("permission denied")
	mock.ExpectExec(`CREATE TABLE`).WillReturnError(dbErr)

	if err := InitAllTables(ctx, conn); err != nil {
		t.Errorf("InitAllTables: %v", err)
	}
	if err := DropAllTables(ctx, conn); err != nil {
		t.Errorf("DropAllTables: %v", err)
	}
	if err := InitAllTables(ctx, conn); !errors.Is(err, dbErr) {
		t.Errorf("InitAllTables err = %v, want wrapped %v", err, dbErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
