package interval

import "time"

// 半開区間 [start, end) の日付範囲演算
// 競合判定と料金計算の両方がここに依存する
// 端点が接するだけの区間（aEnd == bStart）は重複とみなさない

// Overlaps は2つの半開区間が重複するかを返す
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Intersect は2つの半開区間の共通部分を返す
// 重複しない場合は ok=false を返す
func Intersect(aStart, aEnd, bStart, bEnd time.Time) (start, end time.Time, ok bool) {
	if !Overlaps(aStart, aEnd, bStart, bEnd) {
		return time.Time{}, time.Time{}, false
	}
	start = aStart
	if bStart.After(start) {
		start = bStart
	}
	end = aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	return start, end, true
}

// Days は区間の日数を返す（整数除算による切り捨て、端数日は数えない）
func Days(start, end time.Time) int {
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}
