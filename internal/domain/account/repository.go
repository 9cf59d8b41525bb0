package account

import "context"

// Repository はアカウントリポジトリのインターフェース
type Repository interface {
	// Create は新しいアカウントを作成する
	Create(ctx context.Context, account *Account) error

	// GetByID はIDからアカウントを取得する
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetByEmail はメールアドレスからアカウントを取得する
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// TokenResolver はベアラートークンをアカウントIDに解決する
// 資格情報の発行・検証は外部コラボレーターの責務で、ここでは解決だけを行う
type TokenResolver interface {
	// ResolveAccountID はトークンからアカウントIDを解決する
	// 無効または期限切れのトークンは ErrUnauthorized を返す
	ResolveAccountID(ctx context.Context, token string) (string, error)
}
