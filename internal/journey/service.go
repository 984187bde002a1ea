// Package journey は日次ジャーニー完了のビジネスロジックを提供する。
package journey

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/questlog/internal/repository"
)

// Service は日次ジャーニーに関するビジネスロジックを提供する。
// 「今日」はUTCのカレンダー日付で判定する。サーバーのローカルタイムゾーンには依存しない。
type Service struct {
	repo repository.JourneyRepository
	now  func() time.Time
}

// NewService はServiceを生成する。nowがnilの場合はtime.Nowを使用する。
func NewService(repo repository.JourneyRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// today はUTCの今日のカレンダー日付を返す（時刻成分なし）。
func (s *Service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Check は指定ユーザーが今日のジャーニーを完了済みかどうかを返す。
// 記録が無い場合、または最終完了日が今日でない場合はfalse。
func (s *Service) Check(ctx context.Context, userID string) (bool, error) {
	journey, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check journey: %w", err)
	}
	if journey == nil {
		return false, nil
	}

	return journey.CompletedOn(s.today().Format("2006-01-02")), nil
}

// Complete は指定ユーザーの今日のジャーニー完了を記録する。
// 同日の再実行は冪等で、同じ格納状態になる。
func (s *Service) Complete(ctx context.Context, userID string) error {
	if err := s.repo.Upsert(ctx, userID, s.today()); err != nil {
		return fmt.Errorf("failed to complete journey: %w", err)
	}
	return nil
}
