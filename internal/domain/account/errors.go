package account

import "errors"

// Account ドメインのエラー定義
var (
	ErrAccountNotFound    = errors.New("アカウントが見つかりません")
	ErrEmailAlreadyExists = errors.New("このメールアドレスは既に登録されています")
	ErrEmailRequired      = errors.New("メールアドレスは必須です")
	ErrNameRequired       = errors.New("名前は必須です")
	ErrInvalidRole        = errors.New("役割はguestまたはownerである必要があります")
	ErrUnauthorized       = errors.New("認証に失敗しました")
)
