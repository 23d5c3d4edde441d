package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/config"
)

// アーカイブへの書き込みは予約の確定・失効時のみで低頻度。
// 小さめのプールで足りる。
const (
	archiveMaxOpenConns    = 10
	archiveMaxIdleConns    = 2
	archiveConnMaxLifetime = 30 * time.Minute
)

// NewConnection は予約アーカイブ用のPostgreSQL接続を作成する
func NewConnection(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗しました: %w", err)
	}

	db.SetMaxOpenConns(archiveMaxOpenConns)
	db.SetMaxIdleConns(archiveMaxIdleConns)
	db.SetConnMaxLifetime(archiveConnMaxLifetime)

	return db, nil
}

// Ping はデータベース接続を確認する
func Ping(ctx context.Context, db *sqlx.DB) error {
	return db.PingContext(ctx)
}
