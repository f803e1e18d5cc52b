package lifecycle

import (
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/internal/domain"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Engine computes time-driven booking transitions. Evaluation is lazy: every
// read path runs each record through the engine before serialization, so no
// background scheduler is needed and staleness is bounded by time between
// reads.
//
// Границы слотов интерпретируются в часовом поясе обслуживания (loc).
type Engine struct {
	timeProvider TimeProvider
	loc          *time.Location
}

// NewEngine создает engine с реальным временем
func NewEngine(loc *time.Location) *Engine {
	return &Engine{timeProvider: &RealTimeProvider{}, loc: loc}
}

// NewEngineWithTimeProvider создает engine с внешним провайдером времени
func NewEngineWithTimeProvider(tp TimeProvider, loc *time.Location) *Engine {
	return &Engine{timeProvider: tp, loc: loc}
}

// Next returns the automatic transition due for the booking, if any.
// Transitions never fail: they are unconditional facts derived from time.
//
//   - pending → expired   once now is strictly past created_at + expiry window
//     (15m urgent, 1h prebooking; the boundary itself is not yet expired)
//   - confirmed → completed once now is strictly past the slot's fixed end
//     time on the booking's date
func (e *Engine) Next(b *domain.Booking) (domain.BookingStatus, bool) {
	now := e.timeProvider.Now()

	switch b.Status {
	case domain.StatusPending:
		if now.After(b.ExpiresAt()) {
			return domain.StatusExpired, true
		}

	case domain.StatusConfirmed:
		end, ok := e.SlotEnd(b.Date, b.Slot)
		if ok && now.After(end) {
			return domain.StatusCompleted, true
		}
	}

	return b.Status, false
}

// SlotEnd returns the absolute end instant of a slot on the given date.
func (e *Engine) SlotEnd(date time.Time, slot domain.Slot) (time.Time, bool) {
	endTime, ok := domain.SlotEndTimes[slot]
	if !ok {
		return time.Time{}, false
	}
	end, err := endTime.On(date, e.loc)
	if err != nil {
		return time.Time{}, false
	}
	return end, true
}

// Now exposes the engine's clock so callers stamp status_updated_at
// consistently with the transition decision.
func (e *Engine) Now() time.Time {
	return e.timeProvider.Now()
}
