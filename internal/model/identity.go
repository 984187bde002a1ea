package model

// VerifiedIdentity はIDプロバイダーで検証済みのトークンクレームを表す。
// リクエストごとにミドルウェアが生成し、1リクエストの間のみ存在する。
// 永続化もキャッシュもしない。
type VerifiedIdentity struct {
	UID   string
	Name  string
	Email string
}

// DisplayLabel はスコア表示用のラベルを返す。
// 優先順位: name → email → uid。
func (id *VerifiedIdentity) DisplayLabel() string {
	if id.Name != "" {
		return id.Name
	}
	if id.Email != "" {
		return id.Email
	}
	return id.UID
}
