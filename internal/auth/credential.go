// Package auth はサービスアカウント資格情報の読み込みとIDトークン検証を提供する。
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ServiceAccount はIDプロバイダーのサービスアカウント資格情報を表す。
// トークン検証に必要なのはproject_idのみで、それ以外はログ出力用。
type ServiceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

// LoadServiceAccount はサービスアカウント資格情報を読み込む。
// rawが `{` で始まる場合はインラインJSONとして解析し、
// それ以外の場合はJSONファイルへのパスとして読み込む。
func LoadServiceAccount(raw string) (*ServiceAccount, error) {
	data := []byte(raw)

	if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		b, err := os.ReadFile(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account file: %w", err)
		}
		data = b
	}

	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse service account JSON: %w", err)
	}

	if sa.ProjectID == "" {
		return nil, fmt.Errorf("service account is missing project_id")
	}

	return &sa, nil
}
