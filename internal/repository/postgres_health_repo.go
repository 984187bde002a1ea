package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresHealthRepo はPostgreSQLへの接続確認プローブ。
type PostgresHealthRepo struct {
	db *sql.DB
}

// NewPostgresHealthRepo はPostgresHealthRepoを生成する。
func NewPostgresHealthRepo(db *sql.DB) *PostgresHealthRepo {
	return &PostgresHealthRepo{db: db}
}

// ServerTime はストアの現在時刻を返す。接続確認のプローブとして使用する。
func (r *PostgresHealthRepo) ServerTime(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("failed to query server time: %w", err)
	}
	return now, nil
}

// compile-time interface check
var _ HealthRepository = (*PostgresHealthRepo)(nil)
