package model

import "time"

// Score はユーザーごとのベストスコアを表す。
// user_idごとに1行のみ保持し、より高いスコアの提出時にUPSERTされる。
type Score struct {
	UserID      string    `json:"user_id"`
	Score       int64     `json:"score"`
	DisplayName string    `json:"display_name"`
	Timestamp   time.Time `json:"timestamp"`
}
