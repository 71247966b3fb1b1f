package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davcho16/flavor-trail/internal/domain/booking"
	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
	"github.com/davcho16/flavor-trail/internal/domain/transaction"
	redisinfra "github.com/davcho16/flavor-trail/internal/infrastructure/redis"
	"github.com/davcho16/flavor-trail/internal/pkg/metrics"
)

const (
	slotLockTTL        = 10 * time.Second
	slotLockMaxRetries = 3
	slotLockRetryDelay = 100 * time.Millisecond
	slotCacheTTL       = 30 * time.Second
)

// BookingService は予約エンジン本体
// 時刻の正規化、スロット定員チェック、予約レコードの永続化を束ねる
// 定員チェックと書き込みはスロットキー単位の分散ロックと同一トランザクションで直列化する
type BookingService struct {
	txManager   transaction.Manager
	bookingRepo booking.Repository
	normalizer  *timeslot.Normalizer
	lockManager redisinfra.LockManagerInterface
	slotCache   redisinfra.SlotCacheInterface
	capacity    int
}

func NewBookingService(
	txManager transaction.Manager,
	bookingRepo booking.Repository,
	normalizer *timeslot.Normalizer,
	lockManager redisinfra.LockManagerInterface,
	slotCache redisinfra.SlotCacheInterface,
	capacity int,
) *BookingService {
	return &BookingService{
		txManager:   txManager,
		bookingRepo: bookingRepo,
		normalizer:  normalizer,
		lockManager: lockManager,
		slotCache:   slotCache,
		capacity:    capacity,
	}
}

type CreateReservationInput struct {
	UserName        string
	ReservationTime string
	PartySize       int
	RestaurantID    string
}

// CreateReservation は予約を作成する
// スロットのアクティブ予約数が定員未満の場合のみ、予約と紐付けを同一トランザクションで挿入する
func (s *BookingService) CreateReservation(ctx context.Context, input CreateReservationInput) (*booking.Reservation, error) {
	if input.UserName == "" {
		return nil, booking.ErrUserNameRequired
	}
	if input.ReservationTime == "" {
		return nil, booking.ErrTimeRequired
	}
	if input.PartySize <= 0 {
		return nil, booking.ErrPartySizeInvalid
	}
	if input.RestaurantID == "" {
		return nil, booking.ErrRestaurantIDRequired
	}

	at, err := s.normalizer.Normalize(input.ReservationTime)
	if err != nil {
		s.recordBooking("create", "invalid_time")
		return nil, err
	}

	res := booking.NewReservation(input.RestaurantID, input.UserName, at, input.PartySize)
	if err := res.Validate(); err != nil {
		return nil, err
	}

	slotKey := timeslot.SlotKey(input.RestaurantID, at)
	release, err := s.acquireSlotLock(ctx, slotKey)
	if err != nil {
		s.recordBooking("create", "lock_failed")
		return nil, err
	}
	defer release()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	count, err := s.bookingRepo.CountActiveTx(ctx, tx, input.RestaurantID, at)
	if err != nil {
		s.recordBooking("create", "error")
		return nil, err
	}
	if count >= s.capacity {
		s.recordBooking("create", "slot_full")
		return nil, booking.ErrSlotFull
	}

	if err := s.bookingRepo.Create(ctx, tx, res); err != nil {
		s.recordBooking("create", "error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordBooking("create", "error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateSlot(ctx, slotKey)
	s.recordBooking("create", "success")
	return res, nil
}

// ListReservations はユーザー名とレストランIDに一致するアクティブな予約一覧を返す
// reservationID が指定された場合はその1件に絞り込む
func (s *BookingService) ListReservations(ctx context.Context, userName, restaurantID, reservationID string) ([]*booking.Reservation, error) {
	if userName == "" {
		return nil, booking.ErrUserNameRequired
	}
	if restaurantID == "" {
		return nil, booking.ErrRestaurantIDRequired
	}

	reservations, err := s.bookingRepo.ListByUser(ctx, userName, restaurantID)
	if err != nil {
		return nil, err
	}
	if reservationID == "" {
		return reservations, nil
	}

	filtered := make([]*booking.Reservation, 0, 1)
	for _, r := range reservations {
		if r.ID == reservationID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// GetReservation はIDから予約を取得する
func (s *BookingService) GetReservation(ctx context.Context, id string) (*booking.Reservation, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

type UpdateReservationInput struct {
	ReservationID   string
	ReservationTime string
	PartySize       int
}

// UpdateReservation は予約時刻と人数を変更する
// 変更後の時刻が現在と同一スロットの場合、定員チェックは行わない
// （満席スロット内での人数のみの変更が拒否されないようにするため）
// 別スロットへの移動時は移動先スロットの現在の占有数に対して定員チェックを行う
// 元スロットの1席分を先に差し引くことはしない
func (s *BookingService) UpdateReservation(ctx context.Context, input UpdateReservationInput) (*booking.Reservation, error) {
	if input.ReservationTime == "" {
		return nil, booking.ErrTimeRequired
	}
	if input.PartySize <= 0 {
		return nil, booking.ErrPartySizeInvalid
	}

	res, err := s.bookingRepo.GetByID(ctx, input.ReservationID)
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			s.recordBooking("update", "not_found")
		}
		return nil, err
	}

	newAt, err := s.normalizer.Normalize(input.ReservationTime)
	if err != nil {
		s.recordBooking("update", "invalid_time")
		return nil, err
	}

	if res.SameSlot(newAt) {
		return s.applyUpdate(ctx, res, newAt, input.PartySize)
	}

	oldSlotKey := timeslot.SlotKey(res.RestaurantID, res.SlotTime)
	newSlotKey := timeslot.SlotKey(res.RestaurantID, newAt)

	release, err := s.acquireSlotLock(ctx, newSlotKey)
	if err != nil {
		s.recordBooking("update", "lock_failed")
		return nil, err
	}
	defer release()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	count, err := s.bookingRepo.CountActiveTx(ctx, tx, res.RestaurantID, newAt)
	if err != nil {
		s.recordBooking("update", "error")
		return nil, err
	}
	if count >= s.capacity {
		s.recordBooking("update", "slot_full")
		return nil, booking.ErrSlotFull
	}

	res.Reschedule(newAt, input.PartySize)
	if err := s.bookingRepo.Update(ctx, tx, res); err != nil {
		s.recordBooking("update", "error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordBooking("update", "error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateSlot(ctx, oldSlotKey)
	s.invalidateSlot(ctx, newSlotKey)
	s.recordBooking("update", "success")
	return res, nil
}

// applyUpdate は同一スロット内の変更を適用する（定員チェックなし）
func (s *BookingService) applyUpdate(ctx context.Context, res *booking.Reservation, at timeslot.SlotTime, partySize int) (*booking.Reservation, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	res.Reschedule(at, partySize)
	if err := s.bookingRepo.Update(ctx, tx, res); err != nil {
		s.recordBooking("update", "error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordBooking("update", "error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.recordBooking("update", "success")
	return res, nil
}

// CancelReservation は予約と紐付けを削除する
// 既にキャンセル済み・存在しないIDには ErrReservationNotFound を返す（冪等）
func (s *BookingService) CancelReservation(ctx context.Context, id string) error {
	res, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			s.recordBooking("cancel", "not_found")
		}
		return err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Delete(ctx, tx, id); err != nil {
		if !errors.Is(err, booking.ErrReservationNotFound) {
			s.recordBooking("cancel", "error")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		s.recordBooking("cancel", "error")
		return fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateSlot(ctx, timeslot.SlotKey(res.RestaurantID, res.SlotTime))
	s.recordBooking("cancel", "success")
	return nil
}

// SlotAvailability は指定スロットの残席数を返す
// 読み取り専用のためロックは取らず、キャッシュから返せる場合はDBに問い合わせない
func (s *BookingService) SlotAvailability(ctx context.Context, restaurantID, rawTime string) (int, error) {
	if restaurantID == "" {
		return 0, booking.ErrRestaurantIDRequired
	}
	at, err := s.normalizer.Normalize(rawTime)
	if err != nil {
		return 0, err
	}

	slotKey := timeslot.SlotKey(restaurantID, at)
	if s.slotCache != nil {
		if count, err := s.slotCache.GetActiveCount(ctx, slotKey); err == nil {
			return s.remaining(count), nil
		}
	}

	count, err := s.bookingRepo.CountActive(ctx, restaurantID, at)
	if err != nil {
		return 0, err
	}
	if s.slotCache != nil {
		_ = s.slotCache.SetActiveCount(ctx, slotKey, count, slotCacheTTL)
	}
	return s.remaining(count), nil
}

func (s *BookingService) remaining(count int) int {
	if count >= s.capacity {
		return 0
	}
	return s.capacity - count
}

// acquireSlotLock はスロットキー単位の分散ロックを取得し、解放関数を返す
// lockManager が未設定の場合（単一インスタンス構成）はロックなしで続行する
func (s *BookingService) acquireSlotLock(ctx context.Context, slotKey string) (func(), error) {
	if s.lockManager == nil {
		return func() {}, nil
	}

	start := time.Now()
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, slotKey, slotLockTTL, slotLockMaxRetries, slotLockRetryDelay)
	if err != nil {
		s.observeLock("acquire", "failed", time.Since(start))
		if errors.Is(err, redisinfra.ErrLockNotAcquired) {
			return nil, fmt.Errorf("この時間帯は他のユーザーが処理中です: %w", err)
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	s.observeLock("acquire", "success", time.Since(start))

	return func() {
		releaseStart := time.Now()
		if err := lock.Release(ctx); err != nil {
			s.observeLock("release", "failed", time.Since(releaseStart))
			return
		}
		s.observeLock("release", "success", time.Since(releaseStart))
	}, nil
}

func (s *BookingService) invalidateSlot(ctx context.Context, slotKey string) {
	if s.slotCache == nil {
		return
	}
	_ = s.slotCache.Invalidate(ctx, slotKey)
}

func (s *BookingService) recordBooking(operation, status string) {
	if m := metrics.Get(); m != nil {
		m.BookingsTotal.WithLabelValues(operation, status).Inc()
	}
}

func (s *BookingService) observeLock(operation, status string, d time.Duration) {
	if m := metrics.Get(); m != nil {
		m.SlotLockDuration.WithLabelValues(operation, status).Observe(d.Seconds())
	}
}
