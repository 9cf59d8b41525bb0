package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/transaction"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/clock"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockBookingRepository implements booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindConflicting(ctx context.Context, hotelID string, startDate, endDate time.Time, statuses []booking.Status) ([]*booking.Booking, error) {
	args := m.Called(ctx, hotelID, startDate, endDate, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByGuest(ctx context.Context, guestID string, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, guestID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, hotelID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindFutureByHotel(ctx context.Context, hotelID string, now time.Time) ([]*booking.Booking, error) {
	args := m.Called(ctx, hotelID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) HasStayForRating(ctx context.Context, guestID, hotelID string) (bool, error) {
	args := m.Called(ctx, guestID, hotelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) FindDueCheckIns(ctx context.Context, now time.Time) ([]*booking.Booking, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindDueCheckOuts(ctx context.Context, now time.Time) ([]*booking.Booking, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

// MockHotelRepository implements hotel.Repository
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) Create(ctx context.Context, h *hotel.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.Hotel), args.Error(1)
}

func (m *MockHotelRepository) List(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hotel.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Update(ctx context.Context, h *hotel.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDiscountRepository implements hotel.DiscountRepository
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) Create(ctx context.Context, d *hotel.DiscountPeriod) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) GetByID(ctx context.Context, id string) (*hotel.DiscountPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.DiscountPeriod), args.Error(1)
}

func (m *MockDiscountRepository) ListByHotelID(ctx context.Context, hotelID string) ([]*hotel.DiscountPeriod, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hotel.DiscountPeriod), args.Error(1)
}

func (m *MockDiscountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountRepository implements account.Repository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

// === Test fixtures ===

var unitTestNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func unitDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type serviceMocks struct {
	txManager    *MockTxManager
	tx           *MockTx
	bookingRepo  *MockBookingRepository
	hotelRepo    *MockHotelRepository
	discountRepo *MockDiscountRepository
	accountRepo  *MockAccountRepository
}

func newTestBookingService(t *testing.T) (*BookingService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		txManager:    new(MockTxManager),
		tx:           new(MockTx),
		bookingRepo:  new(MockBookingRepository),
		hotelRepo:    new(MockHotelRepository),
		discountRepo: new(MockDiscountRepository),
		accountRepo:  new(MockAccountRepository),
	}
	svc := NewBookingService(
		m.txManager, m.bookingRepo, m.hotelRepo, m.discountRepo, m.accountRepo,
		nil, clock.NewFixed(unitTestNow), nil,
	)
	return svc, m
}

func testGuest() *account.Account {
	return &account.Account{ID: "guest-1", Email: "guest@example.com", Name: "ゲスト", Role: account.RoleGuest}
}

func testHotel() *hotel.Hotel {
	return &hotel.Hotel{ID: "hotel-1", OwnerID: "owner-1", Name: "テストホテル", PricePerDay: 100}
}

// === CreateBooking ===

func TestCreateBooking_Success(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.accountRepo.On("GetByID", ctx, "guest-1").Return(testGuest(), nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.bookingRepo.On("FindConflicting", ctx, "hotel-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), booking.CalendarOccupyingStatuses).
		Return([]*booking.Booking{}, nil)
	m.discountRepo.On("ListByHotelID", ctx, "hotel-1").Return([]*hotel.DiscountPeriod{}, nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*booking.Booking")).Return(nil)
	m.tx.On("Commit").Return(nil)
	m.tx.On("Rollback").Return(nil)

	b, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-1", GuestID: "guest-1",
		StartDate: unitDate(2025, 7, 1), EndDate: unitDate(2025, 7, 4),
	})

	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status)
	assert.Equal(t, int64(300), b.TotalPrice, "1泊100で3泊、割引なし")
	m.bookingRepo.AssertExpectations(t)
}

func TestCreateBooking_AppliesDiscountPeriods(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	periods := []*hotel.DiscountPeriod{
		{ID: "dp-1", HotelID: "hotel-1", StartDate: unitDate(2025, 7, 2), EndDate: unitDate(2025, 7, 3), Rate: 50},
	}
	m.accountRepo.On("GetByID", ctx, "guest-1").Return(testGuest(), nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.bookingRepo.On("FindConflicting", ctx, "hotel-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), booking.CalendarOccupyingStatuses).
		Return([]*booking.Booking{}, nil)
	m.discountRepo.On("ListByHotelID", ctx, "hotel-1").Return(periods, nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*booking.Booking")).Return(nil)
	m.tx.On("Commit").Return(nil)
	m.tx.On("Rollback").Return(nil)

	b, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-1", GuestID: "guest-1",
		StartDate: unitDate(2025, 7, 1), EndDate: unitDate(2025, 7, 4),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(250), b.TotalPrice, "100 + 50 + 100")
}

func TestCreateBooking_InvalidRange(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"開始日と終了日が同じ", unitDate(2025, 7, 1), unitDate(2025, 7, 1), booking.ErrInvalidDateRange},
		{"開始日が終了日より後", unitDate(2025, 7, 4), unitDate(2025, 7, 1), booking.ErrInvalidDateRange},
		{"期間全体が過去", unitDate(2025, 4, 1), unitDate(2025, 4, 5), booking.ErrStayInPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, CreateBookingInput{
				HotelID: "hotel-1", GuestID: "guest-1",
				StartDate: tt.start, EndDate: tt.end,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBooking_Conflict(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	existing := booking.NewBooking("hotel-1", "guest-2", unitDate(2025, 6, 1), unitDate(2025, 6, 5), 400, unitTestNow)
	existing.Status = booking.StatusConfirmed

	m.accountRepo.On("GetByID", ctx, "guest-1").Return(testGuest(), nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.bookingRepo.On("FindConflicting", ctx, "hotel-1", unitDate(2025, 6, 3), unitDate(2025, 6, 8), booking.CalendarOccupyingStatuses).
		Return([]*booking.Booking{existing}, nil)

	_, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-1", GuestID: "guest-1",
		StartDate: unitDate(2025, 6, 3), EndDate: unitDate(2025, 6, 8),
	})

	assert.ErrorIs(t, err, booking.ErrBookingConflict)
	m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_AdjacentRangeSucceeds(t *testing.T) {
	// 既存予約 [06-01, 06-05) に対して [06-05, 06-08) は端点が接するだけで衝突しない
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.accountRepo.On("GetByID", ctx, "guest-1").Return(testGuest(), nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.bookingRepo.On("FindConflicting", ctx, "hotel-1", unitDate(2025, 6, 5), unitDate(2025, 6, 8), booking.CalendarOccupyingStatuses).
		Return([]*booking.Booking{}, nil)
	m.discountRepo.On("ListByHotelID", ctx, "hotel-1").Return([]*hotel.DiscountPeriod{}, nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*booking.Booking")).Return(nil)
	m.tx.On("Commit").Return(nil)
	m.tx.On("Rollback").Return(nil)

	b, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-1", GuestID: "guest-1",
		StartDate: unitDate(2025, 6, 5), EndDate: unitDate(2025, 6, 8),
	})

	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status)
}

func TestCreateBooking_HotelNotFound(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.accountRepo.On("GetByID", ctx, "guest-1").Return(testGuest(), nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-missing").Return(nil, hotel.ErrHotelNotFound)

	_, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-missing", GuestID: "guest-1",
		StartDate: unitDate(2025, 7, 1), EndDate: unitDate(2025, 7, 4),
	})

	assert.ErrorIs(t, err, hotel.ErrHotelNotFound)
}

func TestCreateBooking_GuestNotFound(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.accountRepo.On("GetByID", ctx, "guest-missing").Return(nil, account.ErrAccountNotFound)

	_, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-1", GuestID: "guest-missing",
		StartDate: unitDate(2025, 7, 1), EndDate: unitDate(2025, 7, 4),
	})

	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestCreateBooking_StorageConflictSurfacesAsConflict(t *testing.T) {
	// 競合チェックを通過しても、ストレージの排他制約に敗れたINSERTは
	// 事前検知と同じErrBookingConflictになる
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.accountRepo.On("GetByID", ctx, "guest-1").Return(testGuest(), nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.bookingRepo.On("FindConflicting", ctx, "hotel-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), booking.CalendarOccupyingStatuses).
		Return([]*booking.Booking{}, nil)
	m.discountRepo.On("ListByHotelID", ctx, "hotel-1").Return([]*hotel.DiscountPeriod{}, nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Create", ctx, m.tx, mock.AnythingOfType("*booking.Booking")).Return(booking.ErrBookingConflict)
	m.tx.On("Rollback").Return(nil)

	_, err := svc.CreateBooking(ctx, CreateBookingInput{
		HotelID: "hotel-1", GuestID: "guest-1",
		StartDate: unitDate(2025, 7, 1), EndDate: unitDate(2025, 7, 4),
	})

	assert.ErrorIs(t, err, booking.ErrBookingConflict)
	m.tx.AssertNotCalled(t, "Commit")
}

// === CancelBooking ===

func TestCancelBooking_ByGuest(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	b := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), 300, unitTestNow)
	b.ID = "booking-1"

	m.bookingRepo.On("GetByID", ctx, "booking-1").Return(b, nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Update", ctx, m.tx, b).Return(nil)
	m.tx.On("Commit").Return(nil)
	m.tx.On("Rollback").Return(nil)

	got, err := svc.CancelBooking(ctx, "booking-1", "guest-1")

	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, got.Status)
}

func TestCancelBooking_ByNonOwnerForbidden(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	b := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), 300, unitTestNow)
	b.ID = "booking-1"
	m.bookingRepo.On("GetByID", ctx, "booking-1").Return(b, nil)

	_, err := svc.CancelBooking(ctx, "booking-1", "guest-2")

	assert.ErrorIs(t, err, booking.ErrForbidden)
	assert.Equal(t, booking.StatusPending, b.Status, "拒否された操作は状態を変えない")
	m.bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_FromCheckedInInvalid(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	b := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), 300, unitTestNow)
	b.ID = "booking-1"
	b.Status = booking.StatusCheckedIn
	m.bookingRepo.On("GetByID", ctx, "booking-1").Return(b, nil)

	_, err := svc.CancelBooking(ctx, "booking-1", "guest-1")

	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestCancelBooking_NotFound(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.bookingRepo.On("GetByID", ctx, "booking-missing").Return(nil, booking.ErrBookingNotFound)

	_, err := svc.CancelBooking(ctx, "booking-missing", "guest-1")

	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

// === ConfirmBooking ===

func TestConfirmBooking_ByHotelOwner(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	b := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), 300, unitTestNow)
	b.ID = "booking-1"

	m.bookingRepo.On("GetByID", ctx, "booking-1").Return(b, nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Update", ctx, m.tx, b).Return(nil)
	m.tx.On("Commit").Return(nil)
	m.tx.On("Rollback").Return(nil)

	got, err := svc.ConfirmBooking(ctx, "booking-1", "owner-1")

	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status)
}

func TestConfirmBooking_ByGuestForbidden(t *testing.T) {
	// ゲスト本人でも確定はできない（確定はホテルオーナーの権限）
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	b := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), 300, unitTestNow)
	b.ID = "booking-1"
	m.bookingRepo.On("GetByID", ctx, "booking-1").Return(b, nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)

	_, err := svc.ConfirmBooking(ctx, "booking-1", "guest-1")

	assert.ErrorIs(t, err, booking.ErrForbidden)
}

func TestConfirmBooking_AlreadyConfirmedInvalid(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	b := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 7, 1), unitDate(2025, 7, 4), 300, unitTestNow)
	b.ID = "booking-1"
	b.Status = booking.StatusConfirmed
	m.bookingRepo.On("GetByID", ctx, "booking-1").Return(b, nil)
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)

	_, err := svc.ConfirmBooking(ctx, "booking-1", "owner-1")

	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

// === 一覧系 ===

func TestListGuestBookings(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	bookings := []*booking.Booking{
		{ID: "booking-1", GuestID: "guest-1", Status: booking.StatusPending},
		{ID: "booking-2", GuestID: "guest-1", Status: booking.StatusCancelled},
	}
	m.bookingRepo.On("FindByGuest", ctx, "guest-1", 20, 0).Return(bookings, nil)

	got, err := svc.ListGuestBookings(ctx, "guest-1", 0, 0)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListHotelBookings_OwnerOnly(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)

	_, err := svc.ListHotelBookings(ctx, "hotel-1", "guest-1", 20, 0)
	assert.ErrorIs(t, err, booking.ErrForbidden)

	m.bookingRepo.On("FindByHotel", ctx, "hotel-1", 20, 0).Return([]*booking.Booking{}, nil)
	_, err = svc.ListHotelBookings(ctx, "hotel-1", "owner-1", 20, 0)
	assert.NoError(t, err)
}

func TestListHotelReservations_FutureOnly(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	future := []*booking.Booking{
		{ID: "booking-1", HotelID: "hotel-1", StartDate: unitDate(2025, 8, 1), Status: booking.StatusConfirmed},
	}
	m.hotelRepo.On("GetByID", ctx, "hotel-1").Return(testHotel(), nil)
	m.bookingRepo.On("FindFutureByHotel", ctx, "hotel-1", unitTestNow).Return(future, nil)

	got, err := svc.ListHotelReservations(ctx, "hotel-1", "owner-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartDate.After(unitTestNow))
}

// === 評価ガード ===

func TestCanRateHotel(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	m.bookingRepo.On("HasStayForRating", ctx, "guest-1", "hotel-1").Return(true, nil)
	m.bookingRepo.On("HasStayForRating", ctx, "guest-2", "hotel-1").Return(false, nil)

	ok, err := svc.CanRateHotel(ctx, "guest-1", "hotel-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanRateHotel(ctx, "guest-2", "hotel-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

// === ProgressStays ===

func TestProgressStays(t *testing.T) {
	svc, m := newTestBookingService(t)
	ctx := context.Background()

	dueIn := booking.NewBooking("hotel-1", "guest-1", unitDate(2025, 4, 30), unitDate(2025, 5, 5), 500, unitTestNow)
	dueIn.ID = "booking-in"
	dueIn.Status = booking.StatusConfirmed

	dueOut := booking.NewBooking("hotel-1", "guest-2", unitDate(2025, 4, 25), unitDate(2025, 5, 1), 600, unitTestNow)
	dueOut.ID = "booking-out"
	dueOut.Status = booking.StatusCheckedIn

	m.bookingRepo.On("FindDueCheckIns", ctx, unitTestNow).Return([]*booking.Booking{dueIn}, nil)
	m.bookingRepo.On("FindDueCheckOuts", ctx, unitTestNow).Return([]*booking.Booking{dueOut}, nil)
	m.txManager.On("Begin", ctx).Return(m.tx, nil)
	m.bookingRepo.On("Update", ctx, m.tx, mock.AnythingOfType("*booking.Booking")).Return(nil)
	m.tx.On("Commit").Return(nil)
	m.tx.On("Rollback").Return(nil)

	count, err := svc.ProgressStays(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, booking.StatusCheckedIn, dueIn.Status)
	assert.Equal(t, booking.StatusCheckedOut, dueOut.Status)
}
