package application

import (
	"context"
	"fmt"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/clock"
)

// AccountService はアカウントの参照と登録を担う
// 資格情報の発行や検証は扱わない（外部の認証基盤の責務）
type AccountService struct {
	accountRepo account.Repository
	clk         clock.Clock
}

// NewAccountService は新しいAccountServiceを作成する
func NewAccountService(accountRepo account.Repository, clk clock.Clock) *AccountService {
	return &AccountService{accountRepo: accountRepo, clk: clk}
}

type RegisterAccountInput struct {
	Email string
	Name  string
	Role  account.Role
}

// RegisterAccount は新しいアカウントを登録する
func (s *AccountService) RegisterAccount(ctx context.Context, input RegisterAccountInput) (*account.Account, error) {
	a := account.NewAccount(input.Email, input.Name, input.Role, s.clk.Now())
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("アカウント登録に失敗しました: %w", err)
	}
	return a, nil
}

// GetAccount はIDからアカウントを取得する
func (s *AccountService) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}
