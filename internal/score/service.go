// Package score はベストスコアの提出とリーダーボードのビジネスロジックを提供する。
package score

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/questlog/internal/model"
	"github.com/hitoshi/questlog/internal/repository"
)

// leaderboardSize はリーダーボードの最大件数。
const leaderboardSize = 10

// SubmitResult はスコア提出の結果を表す。
// Updatedがtrueの場合のみScoreに格納後の行が入る。
type SubmitResult struct {
	Updated bool
	Score   *model.Score
}

// Service はスコアに関するビジネスロジックを提供する。
// ベストスコア方式: 現在の記録を厳密に上回る提出のみ格納する。
type Service struct {
	repo repository.ScoreRepository
	now  func() time.Time
}

// NewService はServiceを生成する。nowがnilの場合はtime.Nowを使用する。
func NewService(repo repository.ScoreRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// Submit はスコアを提出する。
// 現在のベスト（記録が無い場合は0）を厳密に上回る場合のみ、
// 新しいスコア・表示名・タイムスタンプでUPSERTし、格納後の行を返す。
// 上回らない場合はUpdated=falseを返し、格納状態は変更しない。
func (s *Service) Submit(ctx context.Context, identity *model.VerifiedIdentity, value int64) (*SubmitResult, error) {
	current, err := s.repo.FindByUserID(ctx, identity.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current score: %w", err)
	}

	var best int64
	if current != nil {
		best = current.Score
	}

	if value <= best {
		return &SubmitResult{Updated: false}, nil
	}

	stored, err := s.repo.Upsert(ctx, &model.Score{
		UserID:      identity.UID,
		Score:       value,
		DisplayName: identity.DisplayLabel(),
		Timestamp:   s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}

	return &SubmitResult{Updated: true, Score: stored}, nil
}

// Leaderboard はスコア降順で上位10件を返す。
func (s *Service) Leaderboard(ctx context.Context) ([]model.Score, error) {
	scores, err := s.repo.ListTop(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return scores, nil
}
