// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/questlog/internal/model"
)

// JourneyRepository は日次ジャーニー完了記録の永続化インターフェース。
type JourneyRepository interface {
	// FindByUserID は指定ユーザーのジャーニー記録を取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.UserJourney, error)

	// Upsert はジャーニー記録を冪等にUPSERTする。
	// 行が無ければ作成し、あればlast_completed_dateを上書きする。
	// 同一ユーザーの競合はストアのON CONFLICT句で解決する。
	Upsert(ctx context.Context, userID string, date time.Time) error
}

// ScoreRepository はベストスコアの永続化インターフェース。
type ScoreRepository interface {
	// FindByUserID は指定ユーザーのスコア行を取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Score, error)

	// Upsert はスコア行をuser_idキーでUPSERTし、格納後の行を返す。
	Upsert(ctx context.Context, score *model.Score) (*model.Score, error)

	// ListTop はスコア降順で上位limit件を返す。
	ListTop(ctx context.Context, limit int) ([]model.Score, error)
}

// HealthRepository はストア接続確認用のインターフェース。
type HealthRepository interface {
	// ServerTime はストアの現在時刻を返す。接続確認のプローブとして使用する。
	ServerTime(ctx context.Context) (time.Time, error)
}
