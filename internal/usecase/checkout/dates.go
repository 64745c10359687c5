package checkout

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// resolveBookingTime определяет момент занятия для позиции корзины. Порядок:
//  1. сохраненная booking_date или selectedDate; если в ней нет времени, берется start_time слота
//  2. specific_date слота + start_time
//  3. для еженедельного слота ближайший следующий день недели от сегодня
//  4. завтра, полночь
func resolveBookingTime(item *domain.CartItem, today types.Date, loc *time.Location) time.Time {
	for _, raw := range []string{item.BookingDate, item.SelectedDate} {
		if t, ok := parseStoredDate(raw, item.Slot.StartTime, loc); ok {
			return t
		}
	}

	slot := &item.Slot
	if slot.IsPinned() {
		return slot.SpecificDate.At(slot.StartTime, loc)
	}

	// дата повторяющегося слота вычисляется заново, выбор пользователя здесь уже не участвует
	if slot.IsRecurring() {
		if dates := domain.ExpandWeekday(*slot.DayOfWeek, today, 1); len(dates) > 0 {
			return dates[0].At(slot.StartTime, loc)
		}
	}

	return today.AddDays(1).Midnight(loc)
}

func parseStoredDate(raw string, start types.TimeString, loc *time.Location) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, false
	}
	t, err := domain.ParseBookingDate(raw, start, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formatOrderDate UTC ISO-8601 с миллисекундами и суффиксом Z
func formatOrderDate(t time.Time) string {
	return t.UTC().Format(domain.OrderDateFormat)
}
