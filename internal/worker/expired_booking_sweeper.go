package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/logger"
)

// BookingExpirer は期限切れ予約を失効させるインターフェース
type BookingExpirer interface {
	ExpireStaleBookings(ctx context.Context) (int, error)
}

// ExpiredBookingSweeper は期限切れの仮押さえ予約を定期的に失効させ、
// 座席を解放するワーカー
type ExpiredBookingSweeper struct {
	bookingService BookingExpirer
	interval       time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewExpiredBookingSweeper は新しいスイーパーを作成
func NewExpiredBookingSweeper(bs BookingExpirer, interval time.Duration) *ExpiredBookingSweeper {
	return &ExpiredBookingSweeper{
		bookingService: bs,
		interval:       interval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はスイーパーを開始
func (w *ExpiredBookingSweeper) Start(ctx context.Context) {
	logger.Info("期限切れ予約スイーパー開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れ予約スイーパー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("期限切れ予約スイーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Stop はスイーパーを停止
func (w *ExpiredBookingSweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// sweep は期限切れ予約を失効させる
func (w *ExpiredBookingSweeper) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れ予約のスイープ開始")

	count, err := w.bookingService.ExpireStaleBookings(ctx)
	if err != nil {
		log.Error("期限切れ予約のスイープ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れ予約を失効", zap.Int("count", count))
	} else {
		log.Debug("期限切れ予約なし")
	}
}
