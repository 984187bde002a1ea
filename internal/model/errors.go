package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// クライアントに返す原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMalformedBody = "MALFORMED_BODY"
	ErrCodeInvalidScore  = "INVALID_SCORE"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// NewMalformedBodyError はリクエストボディが不正なJSONの場合のエラーを生成する。
func NewMalformedBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeMalformedBody,
		Message:  "リクエストボディを解析できませんでした。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewInvalidScoreError はスコアが有限な数値でない場合のエラーを生成する。
func NewInvalidScoreError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidScore,
		Message:  fmt.Sprintf("無効なスコアです: %s", reason),
		Category: "validation",
		Action:   "scoreには有限の数値を指定してください。",
	}
}

// NewInternalError は内部エラーを生成する。詳細はサーバーログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
