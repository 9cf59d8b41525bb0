package pricing

import (
	"time"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/interval"
)

// ComputeTotalPrice は宿泊期間を割引期間で分解して合計金額を計算する
//
// 左から右への貪欲な走査で期間を区切る:
//  1. 残り区間 [cursor, end) に重なる割引期間のうち、リストで最初に現れた
//     ものを選ぶ（先勝ち。割引率の大小や終了日の早さでは選ばない —
//     確定済み予約の金額互換性のため、このタイブレークは変更しないこと）
//  2. 選んだ期間の手前に隙間があれば無割引で計上し、重なり部分を割引率
//     適用で計上して、カーソルを重なりの終端へ進める
//  3. どの割引期間にも重ならなくなったら、残りを無割引で一括計上する
//
// 日数は丸一日単位の切り捨てで数え、金額は整数演算のみ（除算は区間ごとに
// 最後の一度、切り捨て）で決定的に計算する。期間の検証（start < end）は
// 呼び出し側の責務
func ComputeTotalPrice(pricePerDay int64, start, end time.Time, periods []*hotel.DiscountPeriod) int64 {
	var total int64
	cursor := start

	for cursor.Before(end) {
		period := firstOverlapping(periods, cursor, end)
		if period == nil {
			total += segmentPrice(pricePerDay, 0, interval.Days(cursor, end))
			break
		}
		segStart, segEnd, _ := interval.Intersect(cursor, end, period.StartDate, period.EndDate)
		if cursor.Before(segStart) {
			// 割引期間の手前の隙間は無割引
			total += segmentPrice(pricePerDay, 0, interval.Days(cursor, segStart))
		}
		total += segmentPrice(pricePerDay, period.Rate, interval.Days(segStart, segEnd))
		cursor = segEnd
	}
	return total
}

// firstOverlapping は残り区間に重なる最初の割引期間を返す（登録順の先勝ち）
func firstOverlapping(periods []*hotel.DiscountPeriod, cursor, end time.Time) *hotel.DiscountPeriod {
	for _, p := range periods {
		if interval.Overlaps(cursor, end, p.StartDate, p.EndDate) {
			return p
		}
	}
	return nil
}

// segmentPrice は1区間の金額を計算する
func segmentPrice(pricePerDay int64, rate, days int) int64 {
	return pricePerDay * int64(100-rate) * int64(days) / 100
}
