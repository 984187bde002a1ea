package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/questlog/internal/model"
)

// PostgresScoreRepo はPostgreSQLを使用したスコアリポジトリ。
type PostgresScoreRepo struct {
	db *sql.DB
}

// NewPostgresScoreRepo はPostgresScoreRepoを生成する。
func NewPostgresScoreRepo(db *sql.DB) *PostgresScoreRepo {
	return &PostgresScoreRepo{db: db}
}

// FindByUserID は指定ユーザーのスコア行を取得する。見つからない場合はnilを返す。
func (r *PostgresScoreRepo) FindByUserID(ctx context.Context, userID string) (*model.Score, error) {
	score := &model.Score{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, score, display_name, "timestamp" FROM scores WHERE user_id = $1`,
		userID,
	).Scan(&score.UserID, &score.Score, &score.DisplayName, &score.Timestamp)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find score by user ID: %w", err)
	}

	return score, nil
}

// Upsert はスコア行をuser_idキーでUPSERTし、格納後の行を返す。
// 同一ユーザーの同時提出の競合はON CONFLICT句で解決する。
func (r *PostgresScoreRepo) Upsert(ctx context.Context, score *model.Score) (*model.Score, error) {
	stored := &model.Score{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO scores (user_id, score, display_name, "timestamp")
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id)
		 DO UPDATE SET score = EXCLUDED.score,
		               display_name = EXCLUDED.display_name,
		               "timestamp" = EXCLUDED."timestamp"
		 RETURNING user_id, score, display_name, "timestamp"`,
		score.UserID, score.Score, score.DisplayName, score.Timestamp,
	).Scan(&stored.UserID, &stored.Score, &stored.DisplayName, &stored.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert score: %w", err)
	}

	return stored, nil
}

// ListTop はスコア降順で上位limit件を返す。
func (r *PostgresScoreRepo) ListTop(ctx context.Context, limit int) ([]model.Score, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, score, display_name, "timestamp"
		 FROM scores
		 ORDER BY score DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list top scores: %w", err)
	}
	defer rows.Close()

	scores := []model.Score{}
	for rows.Next() {
		var s model.Score
		if err := rows.Scan(&s.UserID, &s.Score, &s.DisplayName, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score rows: %w", err)
	}

	return scores, nil
}

// compile-time interface check
var _ ScoreRepository = (*PostgresScoreRepo)(nil)
