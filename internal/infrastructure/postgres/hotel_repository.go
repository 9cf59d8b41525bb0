package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
)

type hotelRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	District    string    `db:"district"`
	PricePerDay int64     `db:"price_per_day"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type HotelRepository struct{ db *sqlx.DB }

func NewHotelRepository(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *hotel.Hotel) error {
	query := `INSERT INTO hotels (owner_id, name, description, district, price_per_day, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, h.OwnerID, h.Name, h.Description, h.District, h.PricePerDay, h.CreatedAt, h.UpdatedAt).Scan(&h.ID); err != nil {
		return fmt.Errorf("ホテル作成に失敗: %w", err)
	}
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	var row hotelRow
	query := `SELECT id, owner_id, name, description, district, price_per_day, created_at, updated_at FROM hotels WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hotel.ErrHotelNotFound
		}
		return nil, fmt.Errorf("ホテル取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

func (r *HotelRepository) List(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	var rows []hotelRow
	query := `SELECT id, owner_id, name, description, district, price_per_day, created_at, updated_at FROM hotels ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("ホテル一覧の取得に失敗: %w", err)
	}
	result := make([]*hotel.Hotel, len(rows))
	for i := range rows {
		result[i] = r.toEntity(&rows[i])
	}
	return result, nil
}

func (r *HotelRepository) Update(ctx context.Context, h *hotel.Hotel) error {
	query := `UPDATE hotels SET name = $1, description = $2, district = $3, price_per_day = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, h.Name, h.Description, h.District, h.PricePerDay, h.UpdatedAt, h.ID)
	if err != nil {
		return fmt.Errorf("ホテル更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return hotel.ErrHotelNotFound
	}
	return nil
}

func (r *HotelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ホテル削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return hotel.ErrHotelNotFound
	}
	return nil
}

func (r *HotelRepository) toEntity(row *hotelRow) *hotel.Hotel {
	return &hotel.Hotel{
		ID: row.ID, OwnerID: row.OwnerID, Name: row.Name,
		Description: row.Description, District: row.District,
		PricePerDay: row.PricePerDay,
		CreatedAt:   row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

var _ hotel.Repository = (*HotelRepository)(nil)

type discountRow struct {
	ID        string    `db:"id"`
	HotelID   string    `db:"hotel_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Rate      int       `db:"rate"`
	CreatedAt time.Time `db:"created_at"`
}

type DiscountRepository struct{ db *sqlx.DB }

func NewDiscountRepository(db *sqlx.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) Create(ctx context.Context, d *hotel.DiscountPeriod) error {
	query := `INSERT INTO discount_periods (hotel_id, start_date, end_date, rate, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, d.HotelID, d.StartDate, d.EndDate, d.Rate, d.CreatedAt).Scan(&d.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			return hotel.ErrHotelNotFound
		}
		return fmt.Errorf("割引期間の作成に失敗: %w", err)
	}
	return nil
}

func (r *DiscountRepository) GetByID(ctx context.Context, id string) (*hotel.DiscountPeriod, error) {
	var row discountRow
	query := `SELECT id, hotel_id, start_date, end_date, rate, created_at FROM discount_periods WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hotel.ErrDiscountPeriodNotFound
		}
		return nil, fmt.Errorf("割引期間の取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

// ListByHotelID は割引期間を登録順（seqの昇順）で返す
// 料金計算の先勝ちルールがこの順序に依存するため、並べ替えてはいけない
func (r *DiscountRepository) ListByHotelID(ctx context.Context, hotelID string) ([]*hotel.DiscountPeriod, error) {
	var rows []discountRow
	query := `SELECT id, hotel_id, start_date, end_date, rate, created_at FROM discount_periods WHERE hotel_id = $1 ORDER BY seq`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID); err != nil {
		return nil, fmt.Errorf("割引期間一覧の取得に失敗: %w", err)
	}
	result := make([]*hotel.DiscountPeriod, len(rows))
	for i := range rows {
		result[i] = r.toEntity(&rows[i])
	}
	return result, nil
}

func (r *DiscountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discount_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("割引期間の削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return hotel.ErrDiscountPeriodNotFound
	}
	return nil
}

func (r *DiscountRepository) toEntity(row *discountRow) *hotel.DiscountPeriod {
	return &hotel.DiscountPeriod{
		ID: row.ID, HotelID: row.HotelID,
		StartDate: row.StartDate.UTC(), EndDate: row.EndDate.UTC(),
		Rate: row.Rate, CreatedAt: row.CreatedAt,
	}
}

var _ hotel.DiscountRepository = (*DiscountRepository)(nil)
