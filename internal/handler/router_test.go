package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/questlog/internal/model"
	"github.com/hitoshi/questlog/internal/score"
)

// mockTokenVerifier はauth.TokenVerifierのモック実装。
type mockTokenVerifier struct {
	verifyFunc func(ctx context.Context, token string) (*model.VerifiedIdentity, error)
}

func (m *mockTokenVerifier) Verify(ctx context.Context, token string) (*model.VerifiedIdentity, error) {
	return m.verifyFunc(ctx, token)
}

func newTestRouter(t *testing.T, verifier *mockTokenVerifier, journey *mockJourneyService, scores *mockScoreService) http.Handler {
	t.Helper()
	return NewRouter(&RouterDeps{
		Verifier:          verifier,
		CORSAllowedOrigin: "http://localhost:3000",
		Gatherer:          prometheus.NewRegistry(),
		JourneyService:    journey,
		ScoreService:      scores,
		HealthRepo: &mockHealthRepo{
			serverTimeFunc: func(ctx context.Context) (time.Time, error) {
				return time.Now(), nil
			},
		},
	})
}

func TestRouter_ProtectedRoutes_RejectInvalidToken(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFunc: func(ctx context.Context, token string) (*model.VerifiedIdentity, error) {
			return nil, errors.New("token verification failed")
		},
	}
	journey := &mockJourneyService{
		checkFunc: func(ctx context.Context, userID string) (bool, error) {
			t.Error("journey service should not be reached")
			return false, nil
		},
		completeFunc: func(ctx context.Context, userID string) error {
			t.Error("journey service should not be reached")
			return nil
		},
	}
	scores := &mockScoreService{
		submitFunc: func(ctx context.Context, identity *model.VerifiedIdentity, value int64) (*score.SubmitResult, error) {
			t.Error("score service should not be reached")
			return nil, nil
		},
	}
	router := newTestRouter(t, verifier, journey, scores)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/journey/check"},
		{http.MethodPost, "/api/journey/complete"},
		{http.MethodPost, "/api/scores"},
	}

	for _, route := range protected {
		t.Run(route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			req.Header.Set("Authorization", "invalid-token")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
			}
			if rec.Body.String() != "Unauthorized\n" {
				t.Errorf("body = %q, want %q", rec.Body.String(), "Unauthorized\n")
			}
		})
	}
}

func TestRouter_ProtectedRoutes_AcceptValidToken(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFunc: func(ctx context.Context, token string) (*model.VerifiedIdentity, error) {
			if token != "valid-token" {
				return nil, errors.New("token verification failed")
			}
			return testIdentity, nil
		},
	}
	journey := &mockJourneyService{
		checkFunc: func(ctx context.Context, userID string) (bool, error) {
			if userID != "uid123" {
				t.Errorf("userID = %s, want uid123", userID)
			}
			return true, nil
		},
	}
	router := newTestRouter(t, verifier, journey, &mockScoreService{})

	req := httptest.NewRequest(http.MethodGet, "/api/journey/check", nil)
	req.Header.Set("Authorization", "valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_PublicRoutes_NoAuthRequired(t *testing.T) {
	// 公開ルートにアクセスしてもVerifyは呼ばれない
	verifier := &mockTokenVerifier{
		verifyFunc: func(ctx context.Context, token string) (*model.VerifiedIdentity, error) {
			t.Error("verifier should not be called on public routes")
			return nil, errors.New("unexpected")
		},
	}
	scores := &mockScoreService{
		leaderboardFunc: func(ctx context.Context) ([]model.Score, error) {
			return []model.Score{}, nil
		},
	}
	router := newTestRouter(t, verifier, &mockJourneyService{}, scores)

	public := []string{"/health", "/api/leaderboard", "/api/test-db", "/metrics"}
	for _, path := range public {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, &mockTokenVerifier{}, &mockJourneyService{}, &mockScoreService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/scores", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %s", got)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, &mockTokenVerifier{}, &mockJourneyService{}, &mockScoreService{})

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
