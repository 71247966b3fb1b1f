package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUpcomingCounter はUpcomingCounterのモック
type MockUpcomingCounter struct {
	mock.Mock
}

func (m *MockUpcomingCounter) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	args := m.Called(ctx, from)
	return args.Int(0), args.Error(1)
}

func TestNewOccupancyReporter(t *testing.T) {
	mockCounter := new(MockUpcomingCounter)
	interval := 30 * time.Second

	reporter := NewOccupancyReporter(mockCounter, interval)

	assert.NotNil(t, reporter)
	assert.Equal(t, interval, reporter.interval)
	assert.NotNil(t, reporter.stopCh)
	assert.NotNil(t, reporter.doneCh)
}

func TestOccupancyReporter_StartAndStop(t *testing.T) {
	mockCounter := new(MockUpcomingCounter)
	mockCounter.On("CountUpcoming", mock.Anything, mock.AnythingOfType("time.Time")).Return(3, nil)

	reporter := NewOccupancyReporter(mockCounter, 10*time.Millisecond)

	go reporter.Start(context.Background())

	// 数回のティックを待ってから停止
	time.Sleep(50 * time.Millisecond)
	reporter.Stop()

	mockCounter.AssertCalled(t, "CountUpcoming", mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestOccupancyReporter_ContextCancel(t *testing.T) {
	mockCounter := new(MockUpcomingCounter)
	reporter := NewOccupancyReporter(mockCounter, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go reporter.Start(ctx)

	cancel()

	select {
	case <-reporter.doneCh:
	case <-time.After(time.Second):
		t.Fatal("コンテキストキャンセル後に停止しなかった")
	}
}

func TestOccupancyReporter_CountError(t *testing.T) {
	mockCounter := new(MockUpcomingCounter)
	mockCounter.On("CountUpcoming", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(0, assert.AnError)

	reporter := NewOccupancyReporter(mockCounter, 10*time.Millisecond)

	go reporter.Start(context.Background())

	// エラーでもレポーターは動き続ける
	time.Sleep(50 * time.Millisecond)
	reporter.Stop()

	mockCounter.AssertCalled(t, "CountUpcoming", mock.Anything, mock.AnythingOfType("time.Time"))
}
