package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/questlog/internal/repository"
)

// HealthHandler はストア接続確認のHTTPハンドラー。
type HealthHandler struct {
	repo repository.HealthRepository
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(repo repository.HealthRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// dbProbeResponse はストア接続確認のレスポンス。
type dbProbeResponse struct {
	Now time.Time `json:"now"`
}

// ProbeDB はストアに現在時刻クエリを発行して接続を確認する。認証不要。
// GET /api/test-db
func (h *HealthHandler) ProbeDB(w http.ResponseWriter, r *http.Request) {
	now, err := h.repo.ServerTime(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dbProbeResponse{Now: now})
}

// Liveness はプロセス生存確認のハンドラー。ストアには触れない。
// コンテナのヘルスチェックプローブ用。
// GET /health
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
