package domain

import (
	"sort"

	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// ExpandWeekday разворачивает еженедельный слот в конкретные даты на weeks недель вперед.
// Если сегодня и есть нужный день недели, ближайшая дата через 7 дней, а не сегодня.
// В этом случае первые две недели совпадают и дат получается на одну меньше.
// Неизвестный день недели дает пустой список.
func ExpandWeekday(day Weekday, today types.Date, weeks int) []types.Date {
	target, ok := day.TimeWeekday()
	if !ok || weeks <= 0 || today.IsZero() {
		return nil
	}

	seen := make(map[types.Date]struct{}, weeks)
	dates := make([]types.Date, 0, weeks)

	for week := 0; week < weeks; week++ {
		daysUntil := (int(target) - int(today.Weekday()) + 7) % 7
		if week == 0 && daysUntil == 0 {
			daysUntil = 7
		}

		date := today.AddDays(daysUntil + 7*week)
		if date.Before(today) {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
