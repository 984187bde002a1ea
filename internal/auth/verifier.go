package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hitoshi/questlog/internal/model"
)

// defaultCertURL はIDプロバイダーの署名証明書公開エンドポイント。
const defaultCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// TokenVerifier はIDトークンの検証インターフェース。
// ミドルウェアはこのインターフェース越しに外部IDプロバイダーを利用する。
type TokenVerifier interface {
	// Verify はIDトークンを検証し、検証済みクレームを返す。
	// 署名・発行者・対象・有効期限のいずれかが不正な場合はエラーを返す。
	Verify(ctx context.Context, token string) (*model.VerifiedIdentity, error)
}

// VerifierConfig はIDTokenVerifierの設定。
type VerifierConfig struct {
	ProjectID string

	// テスト用にオーバーライド可能な値
	CertURL  string
	Client   *http.Client
	CacheTTL time.Duration
	Now      func() time.Time
}

// IDTokenVerifier はIDプロバイダー発行のRS256署名付きIDトークンを検証する。
// 署名検証用のx509証明書は公開エンドポイントから取得し、CacheTTLの間キャッシュする。
type IDTokenVerifier struct {
	config VerifierConfig

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewIDTokenVerifier はIDTokenVerifierを生成する。
func NewIDTokenVerifier(config VerifierConfig) *IDTokenVerifier {
	if config.CertURL == "" {
		config.CertURL = defaultCertURL
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Hour
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &IDTokenVerifier{config: config}
}

// idTokenClaims はIDトークンのクレーム。subが安定したユーザー識別子。
type idTokenClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Verify はIDトークンを検証し、検証済みクレームを返す。
// 検証内容: RS256署名、iss（project_id由来）、aud（project_id）、exp。
func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (*model.VerifiedIdentity, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}

	claims := &idTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keyFunc(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer("https://securetoken.google.com/"+v.config.ProjectID),
		jwt.WithAudience(v.config.ProjectID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.config.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("ID token is invalid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("ID token is missing subject")
	}

	return &model.VerifiedIdentity{
		UID:   claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

// keyFunc はトークンヘッダーのkidに対応する公開鍵を返すjwt.Keyfuncを生成する。
// キャッシュに該当kidが無い、またはキャッシュが期限切れの場合は証明書を再取得する。
func (v *IDTokenVerifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("token header is missing kid")
		}

		key, err := v.publicKey(ctx, kid)
		if err != nil {
			return nil, err
		}
		return key, nil
	}
}

// publicKey は指定kidの公開鍵を返す。必要に応じて証明書を再取得する。
func (v *IDTokenVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, found := v.keys[kid]
	fresh := v.config.Now().Sub(v.fetchedAt) < v.config.CacheTTL
	v.mu.RUnlock()

	if found && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, found = v.keys[kid]
	if !found {
		return nil, fmt.Errorf("no certificate found for kid %q", kid)
	}
	return key, nil
}

// refreshKeys は証明書エンドポイントからkid→証明書のマップを取得し、
// RSA公開鍵を抽出してキャッシュを置き換える。
func (v *IDTokenVerifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.config.CertURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create certificate request: %w", err)
	}

	resp, err := v.config.Client.Do(req)
	if err != nil {
		return fmt.Errorf("certificate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("certificate endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read certificate response: %w", err)
	}

	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return fmt.Errorf("failed to parse certificate response: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := parseRSAPublicKey(pemCert)
		if err != nil {
			return fmt.Errorf("failed to parse certificate for kid %q: %w", kid, err)
		}
		keys[kid] = key
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = v.config.Now()
	v.mu.Unlock()

	return nil
}

// parseRSAPublicKey はPEMエンコードされたx509証明書からRSA公開鍵を抽出する。
func parseRSAPublicKey(pemCert string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemCert))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse x509 certificate: %w", err)
	}

	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate does not contain an RSA public key")
	}
	return key, nil
}

// compile-time interface check
var _ TokenVerifier = (*IDTokenVerifier)(nil)
