package hotel

import "context"

// Repository はホテルリポジトリのインターフェース
type Repository interface {
	// Create は新しいホテルを作成する
	Create(ctx context.Context, hotel *Hotel) error

	// GetByID はIDからホテルを取得する
	GetByID(ctx context.Context, id string) (*Hotel, error)

	// List はホテル一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Hotel, error)

	// Update はホテルを更新する
	Update(ctx context.Context, hotel *Hotel) error

	// Delete はホテルを削除する
	Delete(ctx context.Context, id string) error
}

// DiscountRepository は割引期間リポジトリのインターフェース
type DiscountRepository interface {
	// Create は新しい割引期間を作成する
	Create(ctx context.Context, period *DiscountPeriod) error

	// GetByID はIDから割引期間を取得する
	GetByID(ctx context.Context, id string) (*DiscountPeriod, error)

	// ListByHotelID はホテルの割引期間一覧を登録順で取得する
	// 料金計算の先勝ちルールが登録順に依存するため、順序は保存順のまま返すこと
	ListByHotelID(ctx context.Context, hotelID string) ([]*DiscountPeriod, error)

	// Delete は割引期間を削除する
	Delete(ctx context.Context, id string) error
}
