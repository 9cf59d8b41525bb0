package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/transaction"
)

type bookingRow struct {
	ID         string    `db:"id"`
	HotelID    string    `db:"hotel_id"`
	GuestID    string    `db:"guest_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	TotalPrice int64     `db:"total_price"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const bookingColumns = `id, hotel_id, guest_id, start_date, end_date, total_price, status, created_at, updated_at`

type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create は予約をINSERTする
// bookingsテーブルの排他制約（同一ホテル・カレンダー占有状態の期間重複を禁止）に
// 違反した場合は ErrBookingConflict を返す。アプリケーション側の事前チェックを
// すり抜けた並行INSERTの最後の砦
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO bookings (hotel_id, guest_id, start_date, end_date, total_price, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query, b.HotelID, b.GuestID, b.StartDate, b.EndDate, b.TotalPrice, string(b.Status), b.CreatedAt, b.UpdatedAt).Scan(&b.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok {
			// 23P01: exclusion_violation（期間重複）、23505: unique_violation
			if pgErr.Code == "23P01" || pgErr.Code == "23505" {
				return booking.ErrBookingConflict
			}
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

// FindConflicting は [startDate, endDate) と重複する指定状態の予約を返す
// 重複判定は半開区間どうし（start < 他のend かつ 他のstart < end）で、
// 端点が接するだけの予約は含まれない
func (r *BookingRepository) FindConflicting(ctx context.Context, hotelID string, startDate, endDate time.Time, statuses []booking.Status) ([]*booking.Booking, error) {
	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = $1 AND start_date < $3 AND $2 < end_date AND status = ANY($4) ORDER BY start_date`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID, startDate, endDate, pq.Array(statusStrs)); err != nil {
		return nil, fmt.Errorf("重複予約の検索に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *BookingRepository) FindByGuest(ctx context.Context, guestID string, limit, offset int) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, guestID, limit, offset); err != nil {
		return nil, fmt.Errorf("ゲスト予約一覧の取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *BookingRepository) FindByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = $1 ORDER BY start_date LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID, limit, offset); err != nil {
		return nil, fmt.Errorf("ホテル予約一覧の取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *BookingRepository) FindFutureByHotel(ctx context.Context, hotelID string, now time.Time) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = $1 AND start_date > $2 AND status <> 'cancelled' ORDER BY start_date`
	if err := r.db.SelectContext(ctx, &rows, query, hotelID, now); err != nil {
		return nil, fmt.Errorf("将来予約の取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) HasStayForRating(ctx context.Context, guestID, hotelID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE guest_id = $1 AND hotel_id = $2 AND status IN ('checked_in', 'checked_out'))`
	if err := r.db.GetContext(ctx, &exists, query, guestID, hotelID); err != nil {
		return false, fmt.Errorf("滞在実績の確認に失敗: %w", err)
	}
	return exists, nil
}

func (r *BookingRepository) FindDueCheckIns(ctx context.Context, now time.Time) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'confirmed' AND start_date <= $1 ORDER BY start_date`
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("チェックイン対象の取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *BookingRepository) FindDueCheckOuts(ctx context.Context, now time.Time) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'checked_in' AND end_date <= $1 ORDER BY end_date`
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("チェックアウト対象の取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *BookingRepository) toEntity(row *bookingRow) *booking.Booking {
	return &booking.Booking{
		ID: row.ID, HotelID: row.HotelID, GuestID: row.GuestID,
		StartDate: row.StartDate.UTC(), EndDate: row.EndDate.UTC(),
		TotalPrice: row.TotalPrice, Status: booking.Status(row.Status),
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

func (r *BookingRepository) toEntities(rows []bookingRow) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = r.toEntity(&rows[i])
	}
	return result
}

var _ booking.Repository = (*BookingRepository)(nil)
