package handler

import (
	"net/http"

	"github.com/hitoshi/questlog/internal/middleware"
	"github.com/hitoshi/questlog/internal/model"
)

// withIdentity は検証済みクレームをコンテキストに注入したリクエストを返す。
// 認証ミドルウェア通過後の状態を再現する。
func withIdentity(req *http.Request, identity *model.VerifiedIdentity) *http.Request {
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

// testIdentity はテストで使う標準的な検証済みクレーム。
var testIdentity = &model.VerifiedIdentity{
	UID:   "uid123",
	Name:  "Test Player",
	Email: "player@example.com",
}
