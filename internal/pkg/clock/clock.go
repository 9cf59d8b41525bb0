package clock

import "time"

// Clock は現在時刻の供給源を表す
// エンジン内の時刻比較は全てUTC瞬間で行うため、実装はUTCで返すこと
type Clock interface {
	Now() time.Time
}

// SystemClock はシステム時刻をUTCで返すClock実装
type SystemClock struct{}

// New は本番用のClockを作成する
func New() *SystemClock {
	return &SystemClock{}
}

// Now は現在時刻をUTCで返す
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock はテスト用の固定時刻Clock
type FixedClock struct {
	t time.Time
}

// NewFixed は固定時刻のClockを作成する
func NewFixed(t time.Time) *FixedClock {
	return &FixedClock{t: t.UTC()}
}

// Now は固定された時刻を返す
func (c *FixedClock) Now() time.Time {
	return c.t
}

// Advance は固定時刻を進める
func (c *FixedClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
