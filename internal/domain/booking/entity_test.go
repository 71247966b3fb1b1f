package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
)

func slotAt(t *testing.T, raw string) timeslot.SlotTime {
	t.Helper()
	n, err := timeslot.NewNormalizer("Asia/Tokyo")
	require.NoError(t, err)
	at, err := n.Normalize(raw)
	require.NoError(t, err)
	return at
}

func TestNewReservation(t *testing.T) {
	at := slotAt(t, "2025-07-01 18:00:00")

	tests := []struct {
		name         string
		restaurantID string
		userName     string
		slot         timeslot.SlotTime
		partySize    int
		wantErr      error
	}{
		{name: "正常な予約作成", restaurantID: "rest-7", userName: "tanaka", slot: at, partySize: 2},
		{name: "名前未指定", restaurantID: "rest-7", userName: "", slot: at, partySize: 2, wantErr: ErrUserNameRequired},
		{name: "時刻未指定", restaurantID: "rest-7", userName: "tanaka", slot: timeslot.SlotTime{}, partySize: 2, wantErr: ErrTimeRequired},
		{name: "人数ゼロ", restaurantID: "rest-7", userName: "tanaka", slot: at, partySize: 0, wantErr: ErrPartySizeInvalid},
		{name: "人数マイナス", restaurantID: "rest-7", userName: "tanaka", slot: at, partySize: -1, wantErr: ErrPartySizeInvalid},
		{name: "レストランID未指定", restaurantID: "", userName: "tanaka", slot: at, partySize: 2, wantErr: ErrRestaurantIDRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation(tt.restaurantID, tt.userName, tt.slot, tt.partySize)
			err := r.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.restaurantID, r.RestaurantID)
			assert.Equal(t, tt.userName, r.UserName)
			assert.Equal(t, tt.partySize, r.PartySize)
			assert.False(t, r.CreatedAt.IsZero())
		})
	}
}

func TestReservation_Reschedule(t *testing.T) {
	r := NewReservation("rest-7", "tanaka", slotAt(t, "2025-07-01 18:00:00"), 2)
	newAt := slotAt(t, "2025-07-01 19:30:00")

	r.Reschedule(newAt, 4)

	assert.True(t, r.SlotTime.Equal(newAt))
	assert.Equal(t, 4, r.PartySize)
}

func TestReservation_SameSlot(t *testing.T) {
	at := slotAt(t, "2025-07-01 18:00:00")
	r := NewReservation("rest-7", "tanaka", at, 2)

	assert.True(t, r.SameSlot(slotAt(t, "2025-07-01T18:00")))
	assert.False(t, r.SameSlot(slotAt(t, "2025-07-01 18:30:00")))
}
