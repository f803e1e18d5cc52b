package domain

// rankDefault ранг для комбинаций, которых нет в таблице
const rankDefault = 13

// rankTable фиксированный порядок выдачи списков бронирований:
// сначала ожидающие действия, затем подтвержденные, затем история.
var rankTable = map[BookingStatus]map[BookingType]int{
	StatusPending:   {TypeUrgent: 1, TypePrebooking: 2},
	StatusConfirmed: {TypeUrgent: 3, TypePrebooking: 4},
	StatusCompleted: {TypeUrgent: 5, TypePrebooking: 6},
	StatusCancelled: {TypeUrgent: 7, TypePrebooking: 8},
	StatusRejected:  {TypeUrgent: 9, TypePrebooking: 10},
	StatusExpired:   {TypeUrgent: 11, TypePrebooking: 12},
}

// Rank returns the list-ordering priority for a (status, booking type) pair.
// Lower ranks sort first.
func Rank(status BookingStatus, bookingType BookingType) int {
	if byType, ok := rankTable[status]; ok {
		if rank, ok := byType[bookingType]; ok {
			return rank
		}
	}
	return rankDefault
}
