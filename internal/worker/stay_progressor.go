package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/logger"
)

// StayProgressor は日付の到来した滞在を進めるインターフェース
type StayProgressor interface {
	ProgressStays(ctx context.Context) (int, error)
}

// StayProgressWorker は滞在の自動遷移を定期実行するワーカー
// 開始日を過ぎたconfirmed予約をchecked_inに、終了日を過ぎたchecked_in予約を
// checked_outに進める
type StayProgressWorker struct {
	bookingService StayProgressor
	interval       time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewStayProgressWorker は新しいワーカーを作成
func NewStayProgressWorker(bs StayProgressor, interval time.Duration) *StayProgressWorker {
	return &StayProgressWorker{
		bookingService: bs,
		interval:       interval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はワーカーを開始
func (w *StayProgressWorker) Start(ctx context.Context) {
	logger.Info("滞在進行ワーカー開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("滞在進行ワーカー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("滞在進行ワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.progress(ctx)
		}
	}
}

// Stop はワーカーを停止
func (w *StayProgressWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// progress は滞在の自動遷移を1回実行する
func (w *StayProgressWorker) progress(ctx context.Context) {
	log := logger.Get()
	log.Debug("滞在進行の実行開始")

	count, err := w.bookingService.ProgressStays(ctx)
	if err != nil {
		log.Error("滞在進行に失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("滞在を進行", zap.Int("count", count))
	} else {
		log.Debug("進行対象の滞在なし")
	}
}
