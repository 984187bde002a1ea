package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/hitoshi/questlog/internal/middleware"
	"github.com/hitoshi/questlog/internal/model"
	"github.com/hitoshi/questlog/internal/score"
)

// ScoreServiceInterface はスコアハンドラーが必要とするサービスインターフェース。
type ScoreServiceInterface interface {
	// Submit はスコアを提出する。ベストを厳密に上回る場合のみ格納する。
	Submit(ctx context.Context, identity *model.VerifiedIdentity, value int64) (*score.SubmitResult, error)
	// Leaderboard はスコア降順で上位10件を返す。
	Leaderboard(ctx context.Context) ([]model.Score, error)
}

// ScoreMetricsRecorder はスコア提出のメトリクス記録インターフェース。
type ScoreMetricsRecorder interface {
	RecordScoreSubmitted(updated bool)
}

// ScoreHandler はスコア提出とリーダーボードのHTTPハンドラー。
type ScoreHandler struct {
	service ScoreServiceInterface
	metrics ScoreMetricsRecorder
}

// NewScoreHandler はScoreHandlerを生成する。metricsはnil可。
func NewScoreHandler(service ScoreServiceInterface, metrics ScoreMetricsRecorder) *ScoreHandler {
	return &ScoreHandler{service: service, metrics: metrics}
}

// scoreSubmitRequest はスコア提出リクエストのボディ。
type scoreSubmitRequest struct {
	Score *float64 `json:"score"`
}

// scoreNotUpdatedResponse はベストを更新しなかった場合のレスポンス。
type scoreNotUpdatedResponse struct {
	Message string `json:"message"`
}

// Submit はスコアを提出する。
// 現在のベストを厳密に上回る場合は201で格納後の行を返し、
// 上回らない場合は200で更新なしメッセージを返す。
// POST /api/scores
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	var req scoreSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMalformedBodyError())
		return
	}

	value, apiErr := validateScore(req.Score)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	result, err := h.service.Submit(r.Context(), identity, value)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordScoreSubmitted(result.Updated)
	}

	w.Header().Set("Content-Type", "application/json")
	if !result.Updated {
		json.NewEncoder(w).Encode(scoreNotUpdatedResponse{Message: "score not updated"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result.Score)
}

// Leaderboard はスコア降順で上位10件を返す。認証不要。
// GET /api/leaderboard
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	scores, err := h.service.Leaderboard(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scores)
}

// validateScore はスコア値を検証し、格納用のint64に変換する。
// 欠落・非有限・整数でない・int64範囲外の値は拒否する。
func validateScore(value *float64) (int64, *model.APIError) {
	if value == nil {
		return 0, model.NewInvalidScoreError("scoreがありません")
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, model.NewInvalidScoreError("有限な数値ではありません")
	}
	if v != math.Trunc(v) {
		return 0, model.NewInvalidScoreError("整数ではありません")
	}
	if v < math.MinInt64 || v > math.MaxInt64 {
		return 0, model.NewInvalidScoreError("値が大きすぎます")
	}
	return int64(v), nil
}

// --- 共通レスポンスヘルパー ---

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// APIError以外のエラー（ストア障害など）は詳細をログのみに記録し、
// クライアントには一般的な500レスポンスを返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
