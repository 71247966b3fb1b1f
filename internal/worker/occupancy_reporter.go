package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davcho16/flavor-trail/internal/pkg/logger"
	"github.com/davcho16/flavor-trail/internal/pkg/metrics"
)

// UpcomingCounter は現在以降のアクティブ予約数を数えるインターフェース
type UpcomingCounter interface {
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
}

// OccupancyReporter はアクティブ予約数を定期的にゲージへ反映するワーカー
// 予約の自動削除や期限切れ処理は行わない。キャンセルは明示的な操作のみ
type OccupancyReporter struct {
	counter  UpcomingCounter
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewOccupancyReporter は新しいレポーターを作成
func NewOccupancyReporter(counter UpcomingCounter, interval time.Duration) *OccupancyReporter {
	return &OccupancyReporter{
		counter:  counter,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はレポーターを開始
func (r *OccupancyReporter) Start(ctx context.Context) {
	logger.Info("予約数レポーター開始", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("予約数レポーター停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("予約数レポーター停止（シグナル受信）")
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

// Stop はレポーターを停止
func (r *OccupancyReporter) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// report は現在以降のアクティブ予約数をゲージに反映
func (r *OccupancyReporter) report(ctx context.Context) {
	count, err := r.counter.CountUpcoming(ctx, time.Now())
	if err != nil {
		logger.Error("予約数の取得に失敗", zap.Error(err))
		return
	}

	if m := metrics.Get(); m != nil {
		m.UpcomingReservations.Set(float64(count))
	}
	logger.Debug("予約数を更新", zap.Int("count", count))
}
