package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		status      BookingStatus
		bookingType BookingType
		rank        int
	}{
		{StatusPending, TypeUrgent, 1},
		{StatusPending, TypePrebooking, 2},
		{StatusConfirmed, TypeUrgent, 3},
		{StatusConfirmed, TypePrebooking, 4},
		{StatusCompleted, TypeUrgent, 5},
		{StatusCompleted, TypePrebooking, 6},
		{StatusCancelled, TypeUrgent, 7},
		{StatusCancelled, TypePrebooking, 8},
		{StatusRejected, TypeUrgent, 9},
		{StatusRejected, TypePrebooking, 10},
		{StatusExpired, TypeUrgent, 11},
		{StatusExpired, TypePrebooking, 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.rank, Rank(tt.status, tt.bookingType),
			"rank for (%s, %s)", tt.status, tt.bookingType)
	}

	// Неизвестные комбинации уходят в конец списка
	assert.Equal(t, 13, Rank("unknown", TypeUrgent))
	assert.Equal(t, 13, Rank(StatusPending, "unknown"))
}
