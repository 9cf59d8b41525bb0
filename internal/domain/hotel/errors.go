package hotel

import "errors"

// Hotel ドメインのエラー定義
var (
	ErrHotelNotFound          = errors.New("ホテルが見つかりません")
	ErrHotelNameRequired      = errors.New("ホテル名は必須です")
	ErrOwnerIDRequired        = errors.New("オーナーIDは必須です")
	ErrHotelIDRequired        = errors.New("ホテルIDは必須です")
	ErrInvalidPricePerDay     = errors.New("1泊料金は0以上である必要があります")
	ErrDiscountPeriodNotFound = errors.New("割引期間が見つかりません")
	ErrInvalidDiscountRange   = errors.New("割引期間の開始日は終了日より前である必要があります")
	ErrInvalidDiscountRate    = errors.New("割引率は0から100の範囲である必要があります")
	ErrNotHotelOwner          = errors.New("このホテルのオーナーではありません")
)
