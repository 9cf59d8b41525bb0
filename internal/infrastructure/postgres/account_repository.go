package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
)

type accountRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type AccountRepository struct{ db *sqlx.DB }

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `INSERT INTO accounts (email, name, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, a.Email, a.Name, string(a.Role), a.CreatedAt, a.UpdatedAt).Scan(&a.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return account.ErrEmailAlreadyExists
		}
		return fmt.Errorf("アカウント作成に失敗: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var row accountRow
	query := `SELECT id, email, name, role, created_at, updated_at FROM accounts WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("アカウント取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var row accountRow
	query := `SELECT id, email, name, role, created_at, updated_at FROM accounts WHERE email = $1`
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("アカウント取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

func (r *AccountRepository) toEntity(row *accountRow) *account.Account {
	return &account.Account{
		ID: row.ID, Email: row.Email, Name: row.Name,
		Role: account.Role(row.Role),
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

var _ account.Repository = (*AccountRepository)(nil)
