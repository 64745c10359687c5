package expand_attendance

import (
	"sort"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// Expand строит табель: каждая команда в каждую смену на каждую дату периода, по строке на сотрудника.
// Статус берется из отметки, если она есть, иначе SCHEDULED. Отметки вне сетки игнорируются.
func Expand(teams []domain.Team, shifts []domain.Shift, from, to types.Date, overrides []domain.AttendanceOverride) []domain.AttendanceEntry {
	index := make(map[string]domain.AttendanceOverride, len(overrides))
	for i := range overrides {
		index[overrides[i].Key()] = overrides[i]
	}

	entries := make([]domain.AttendanceEntry, 0)
	for date := from; !date.After(to); date = date.AddDays(1) {
		for _, team := range teams {
			for _, shift := range shifts {
				for _, member := range team.Members {
					entry := domain.AttendanceEntry{
						Date:   date,
						Team:   domain.Team{ID: team.ID, Name: team.Name},
						Shift:  shift,
						Member: member,
						Status: domain.AttendanceScheduled,
					}
					if o, ok := index[domain.AttendanceKey(team.ID, shift.ID, date, member.ID)]; ok {
						if o.Status != "" {
							entry.Status = o.Status
						}
						entry.Note = o.Note
						entry.Overridden = true
					}
					entries = append(entries, entry)
				}
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if c := a.Shift.StartTime.Compare(b.Shift.StartTime); c != 0 {
			return c < 0
		}
		if a.Team.ID != b.Team.ID {
			return a.Team.ID < b.Team.ID
		}
		return a.Member.ID < b.Member.ID
	})
	return entries
}
