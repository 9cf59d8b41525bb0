package account

import "time"

// Role はアカウントの役割を表す
type Role string

const (
	RoleGuest Role = "guest"
	RoleOwner Role = "owner"
)

// Account はアカウントエンティティを表す
type Account struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount は新しいアカウントを作成する
func NewAccount(email, name string, role Role, now time.Time) *Account {
	return &Account{
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwner はホテルオーナー権限を持つかを返す
func (a *Account) IsOwner() bool {
	return a.Role == RoleOwner
}

// Validate はアカウントの検証を行う
func (a *Account) Validate() error {
	if a.Email == "" {
		return ErrEmailRequired
	}
	if a.Name == "" {
		return ErrNameRequired
	}
	if a.Role != RoleGuest && a.Role != RoleOwner {
		return ErrInvalidRole
	}
	return nil
}
