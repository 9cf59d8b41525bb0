package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
)

// TokenStore はベアラートークンとアカウントIDの対応をTTL付きで保持する
// トークンの発行・失効管理は外部の認証基盤の責務で、ここは解決だけを行う
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore は新しいTokenStoreインスタンスを作成する
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// ResolveAccountID はトークンからアカウントIDを解決する
// 未登録または期限切れのトークンは account.ErrUnauthorized を返す
func (s *TokenStore) ResolveAccountID(ctx context.Context, token string) (string, error) {
	accountID, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", account.ErrUnauthorized
		}
		return "", fmt.Errorf("トークン解決に失敗: %w", err)
	}
	return accountID, nil
}

// Store はトークンとアカウントIDの対応をTTL付きで保存する
func (s *TokenStore) Store(ctx context.Context, token, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.tokenKey(token), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("トークン保存に失敗: %w", err)
	}
	return nil
}

// Revoke はトークンを失効させる
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("トークン失効に失敗: %w", err)
	}
	return nil
}

func (s *TokenStore) tokenKey(token string) string {
	return fmt.Sprintf("auth:token:%s", token)
}

var _ account.TokenResolver = (*TokenStore)(nil)
