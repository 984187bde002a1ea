// Package model はドメインモデルを定義する。
package model

import "time"

// JourneyDateLayout はジャーニー完了日のカレンダー日付表現。
// タイムゾーンはUTCに固定し、時刻成分は持たない。
const JourneyDateLayout = "2006-01-02"

// UserJourney はユーザーごとの日次ジャーニー完了記録を表す。
// user_idごとに最大1行で、last_completed_dateのみが更新される。
type UserJourney struct {
	UserID            string
	LastCompletedDate time.Time
}

// CompletedOn は指定日（YYYY-MM-DD）に完了済みかどうかを返す。
// 格納値はDATE型のため、UTCで日付部分のみを比較する。
func (j *UserJourney) CompletedOn(date string) bool {
	return j.LastCompletedDate.UTC().Format(JourneyDateLayout) == date
}
