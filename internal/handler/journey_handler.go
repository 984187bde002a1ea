// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/questlog/internal/middleware"
)

// JourneyServiceInterface はジャーニーハンドラーが必要とするサービスインターフェース。
type JourneyServiceInterface interface {
	// Check は指定ユーザーが今日のジャーニーを完了済みかどうかを返す。
	Check(ctx context.Context, userID string) (bool, error)
	// Complete は指定ユーザーの今日のジャーニー完了を記録する。冪等。
	Complete(ctx context.Context, userID string) error
}

// JourneyMetricsRecorder はジャーニー完了のメトリクス記録インターフェース。
type JourneyMetricsRecorder interface {
	RecordJourneyCompleted()
}

// JourneyHandler は日次ジャーニーのHTTPハンドラー。
type JourneyHandler struct {
	service JourneyServiceInterface
	metrics JourneyMetricsRecorder
}

// NewJourneyHandler はJourneyHandlerを生成する。metricsはnil可。
func NewJourneyHandler(service JourneyServiceInterface, metrics JourneyMetricsRecorder) *JourneyHandler {
	return &JourneyHandler{service: service, metrics: metrics}
}

// journeyCheckResponse はジャーニー確認のレスポンス。
type journeyCheckResponse struct {
	Completed bool `json:"completed"`
}

// journeyCompleteResponse はジャーニー完了のレスポンス。
type journeyCompleteResponse struct {
	Message string `json:"message"`
}

// Check は今日のジャーニー完了状況を返す。
// GET /api/journey/check
func (h *JourneyHandler) Check(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	completed, err := h.service.Check(r.Context(), identity.UID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(journeyCheckResponse{Completed: completed})
}

// Complete は今日のジャーニー完了を記録する。同日の再実行は冪等。
// POST /api/journey/complete
func (h *JourneyHandler) Complete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	if err := h.service.Complete(r.Context(), identity.UID); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordJourneyCompleted()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(journeyCompleteResponse{Message: "journey completed"})
}
