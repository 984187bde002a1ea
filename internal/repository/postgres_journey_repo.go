package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/questlog/internal/model"
)

// PostgresJourneyRepo はPostgreSQLを使用したジャーニーリポジトリ。
type PostgresJourneyRepo struct {
	db *sql.DB
}

// NewPostgresJourneyRepo はPostgresJourneyRepoを生成する。
func NewPostgresJourneyRepo(db *sql.DB) *PostgresJourneyRepo {
	return &PostgresJourneyRepo{db: db}
}

// FindByUserID は指定ユーザーのジャーニー記録を取得する。見つからない場合はnilを返す。
func (r *PostgresJourneyRepo) FindByUserID(ctx context.Context, userID string) (*model.UserJourney, error) {
	journey := &model.UserJourney{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, last_completed_date FROM user_journeys WHERE user_id = $1`,
		userID,
	).Scan(&journey.UserID, &journey.LastCompletedDate)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journey by user ID: %w", err)
	}

	return journey, nil
}

// Upsert はジャーニー記録を冪等にUPSERTする。
// 同日の再実行は同じ格納状態になる。
func (r *PostgresJourneyRepo) Upsert(ctx context.Context, userID string, date time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_journeys (user_id, last_completed_date)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id)
		 DO UPDATE SET last_completed_date = EXCLUDED.last_completed_date`,
		userID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert journey: %w", err)
	}

	return nil
}

// compile-time interface check
var _ JourneyRepository = (*PostgresJourneyRepo)(nil)
