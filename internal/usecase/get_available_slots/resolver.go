package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// Resolve превращает слоты услуги в занятия на конкретные даты.
//
// Слоты удаленные или не в статусе AVAILABLE пропускаются. Сначала берутся слоты
// с конкретной датой (не раньше today), затем еженедельные, развернутые на weeks недель.
// Дата, на которую уже есть слот с конкретной датой, еженедельным слотам не выдается.
// Занятие заполнено, если вместимость больше нуля и booked >= вместимости;
// без записи доступности занятие считается свободным.
//
// Результат отсортирован по дате, времени начала и ID слота, поэтому повторный вызов
// на тех же данных дает тот же порядок. Функция чистая.
func Resolve(slots []domain.Slot, today types.Date, weeks int) []domain.Occurrence {
	occurrences := make([]domain.Occurrence, 0, len(slots))
	taken := make(map[string]struct{})
	pinnedDates := make(map[types.Date]struct{})

	for i := range slots {
		slot := slots[i]
		if !slot.IsBookable() || !slot.IsPinned() {
			continue
		}
		date := *slot.SpecificDate
		if date.Before(today) {
			continue
		}

		occ := newOccurrence(slot, date)
		if _, dup := taken[occ.Key()]; dup {
			continue
		}
		taken[occ.Key()] = struct{}{}
		pinnedDates[date] = struct{}{}
		occurrences = append(occurrences, occ)
	}

	for i := range slots {
		slot := slots[i]
		if !slot.IsBookable() || !slot.IsRecurring() {
			continue
		}

		for _, date := range domain.ExpandWeekday(*slot.DayOfWeek, today, weeks) {
			if _, pinned := pinnedDates[date]; pinned {
				continue
			}
			key := domain.OccurrenceKey(slot.ID, date)
			if _, dup := taken[key]; dup {
				continue
			}
			taken[key] = struct{}{}
			occurrences = append(occurrences, newOccurrence(slot, date))
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if c := a.Slot.StartTime.Compare(b.Slot.StartTime); c != 0 {
			return c < 0
		}
		return a.Slot.ID < b.Slot.ID
	})

	return occurrences
}

func newOccurrence(slot domain.Slot, date types.Date) domain.Occurrence {
	var availability *domain.AvailabilityRecord
	if record := slot.AvailabilityFor(date); record != nil {
		copied := *record
		availability = &copied
	}

	return domain.Occurrence{
		Slot:         slot,
		Date:         date,
		Availability: availability,
		IsAvailable:  !domain.IsOccurrenceFull(&slot, availability),
	}
}
