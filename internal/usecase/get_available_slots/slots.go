package get_available_slots

import (
	"time"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/pkg/types"
)

// generateWindowSlots генерирует слоты внутри одного рабочего окна
// Слоты идут подряд с шагом, равным длительности услуги: (cursor, cursor+duration),
// пока конец слота не выходит за конец окна. Окно короче длительности дает ноль слотов
func generateWindowSlots(windowStart, windowEnd types.TimeString, durationMinutes int) []domain.Slot {
	slots := make([]domain.Slot, 0)
	cursor := windowStart

	for {
		slotEnd, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			// Конец слота вышел за пределы суток
			break
		}
		if slotEnd.IsAfter(windowEnd) {
			break
		}

		slots = append(slots, domain.Slot{Start: cursor, End: slotEnd})
		cursor = slotEnd
	}

	return slots
}

// generateDaySlots генерирует все слоты дня: сначала утреннее окно, затем дневное
func generateDaySlots(day *domain.DayAvailability, durationMinutes int) []domain.Slot {
	slots := make([]domain.Slot, 0)
	for _, window := range day.Windows() {
		slots = append(slots, generateWindowSlots(window.Start, window.End, durationMinutes)...)
	}
	return slots
}

// filterConflicting убирает слоты, пересекающиеся хотя бы с одним активным бронированием
// Интервалы полуоткрытые: граничащие слот и бронирование не конфликтуют
func filterConflicting(slots []domain.Slot, bookings []*domain.Booking) []domain.Slot {
	free := make([]domain.Slot, 0, len(slots))

	for _, slot := range slots {
		conflict := false
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if slot.Overlaps(booking.Range()) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, slot)
		}
	}

	return free
}

// filterPast убирает слоты, начинающиеся не позже текущего времени суток
// Применяется только когда разрешенная дата - сегодня
func filterPast(slots []domain.Slot, now types.TimeString) []domain.Slot {
	upcoming := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.Start.IsAfter(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
