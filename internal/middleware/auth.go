// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/questlog/internal/auth"
	"github.com/hitoshi/questlog/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに検証済みクレームを格納するためのキー。
var identityContextKey = contextKey("identity")

// AuthFailureRecorder はトークン検証失敗のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type AuthFailureRecorder interface {
	RecordAuthFailure()
}

// NewAuthMiddleware はAuthorizationヘッダーのIDトークンを検証するミドルウェアを返す。
// ヘッダー値はそのままトークンとして扱う（"Bearer "プレフィックスの除去は行わない）。
// 検証成功時は検証済みクレームをリクエストコンテキストに注入する。
// ヘッダー欠落・不正トークン・検証サービスエラーのいずれの場合も
// 403とプレーンテキストの"Unauthorized"を返し、ハンドラーには到達させない。
func NewAuthMiddleware(verifier auth.TokenVerifier, recorder AuthFailureRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーから生トークンを取得
			token := r.Header.Get("Authorization")

			// 2. 外部IDプロバイダーでトークンを検証
			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				if recorder != nil {
					recorder.RecordAuthFailure()
				}
				http.Error(w, "Unauthorized", http.StatusForbidden)
				return
			}

			// 3. 検証済みクレームをコンテキストに注入
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストから検証済みクレームを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (*model.VerifiedIdentity, error) {
	identity, ok := ctx.Value(identityContextKey).(*model.VerifiedIdentity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("verified identity not found in context")
	}
	return identity, nil
}

// ContextWithIdentity はコンテキストに検証済みクレームを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity *model.VerifiedIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
