package booking

import (
	"time"

	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
)

// Reservation は予約エンティティを表す
// レストランとの紐付けは作成時に確定し、以後変更されない
type Reservation struct {
	ID           string
	RestaurantID string
	UserName     string
	SlotTime     timeslot.SlotTime
	PartySize    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReservation は新しい予約を作成する
func NewReservation(restaurantID, userName string, at timeslot.SlotTime, partySize int) *Reservation {
	now := time.Now()
	return &Reservation{
		RestaurantID: restaurantID,
		UserName:     userName,
		SlotTime:     at,
		PartySize:    partySize,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if r.UserName == "" {
		return ErrUserNameRequired
	}
	if r.SlotTime.IsZero() {
		return ErrTimeRequired
	}
	if r.PartySize <= 0 {
		return ErrPartySizeInvalid
	}
	if r.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	return nil
}

// Reschedule は予約時刻と人数を変更する
func (r *Reservation) Reschedule(at timeslot.SlotTime, partySize int) {
	r.SlotTime = at
	r.PartySize = partySize
	r.UpdatedAt = time.Now()
}

// SameSlot は予約が指定スロットに属しているかを返す
// 同一スロット内の変更（人数のみの変更）は定員チェックを要しない
func (r *Reservation) SameSlot(at timeslot.SlotTime) bool {
	return r.SlotTime.Equal(at)
}
