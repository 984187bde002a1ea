// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやハンドラーから利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordAuthFailure()
	RecordJourneyCompleted()
	RecordScoreSubmitted(updated bool)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus       *prometheus.CounterVec
	requestDuration  prometheus.Histogram
	authFailures     prometheus.Counter
	journeysComplete prometheus.Counter
	scoresSubmitted  *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questlog_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "questlog_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "questlog_auth_failure_total",
			Help: "トークン検証失敗の合計数",
		}),
		journeysComplete: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "questlog_journeys_completed_total",
			Help: "ジャーニー完了記録の合計数",
		}),
		scoresSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "questlog_scores_submitted_total",
			Help: "スコア提出の合計数（更新有無別）",
		}, []string{"updated"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.authFailures,
		c.journeysComplete,
		c.scoresSubmitted,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordAuthFailure はトークン検証失敗を記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// RecordJourneyCompleted はジャーニー完了記録を記録する。
func (c *Collector) RecordJourneyCompleted() {
	c.journeysComplete.Inc()
}

// RecordScoreSubmitted はスコア提出を記録する。
func (c *Collector) RecordScoreSubmitted(updated bool) {
	c.scoresSubmitted.WithLabelValues(strconv.FormatBool(updated)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
