package booking

import "errors"

// Booking ドメインのエラー定義
// 呼び出し側（APIレイヤー）が個別にハンドリングできるよう、種類ごとに安定した
// センチネルエラーとして公開する。汎用エラーへの畳み込みはしない
var (
	ErrBookingNotFound   = errors.New("予約が見つかりません")
	ErrBookingConflict   = errors.New("指定期間は既存の予約と重複しています")
	ErrInvalidDateRange  = errors.New("開始日は終了日より前である必要があります")
	ErrStayInPast        = errors.New("過去の期間には予約できません")
	ErrInvalidTransition = errors.New("現在の状態からその遷移はできません")
	ErrForbidden         = errors.New("この操作を行う権限がありません")
	ErrHotelIDRequired   = errors.New("ホテルIDは必須です")
	ErrGuestIDRequired   = errors.New("ゲストIDは必須です")
	ErrInvalidTotalPrice = errors.New("合計金額は0以上である必要があります")
)
