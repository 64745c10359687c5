package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// Weekday day of week of a recurring slot as the cafe backend spells it
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdays = map[Weekday]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// ParseWeekday normalizes case and surrounding spaces. Unknown values are kept as is
// and report ok=false from TimeWeekday.
func ParseWeekday(s string) Weekday {
	return Weekday(strings.ToUpper(strings.TrimSpace(s)))
}

// TimeWeekday maps to time.Weekday (Sunday=0 ... Saturday=6)
func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	wd, ok := weekdays[w]
	return wd, ok
}

// IsValid returns true for one of the seven known values
func (w Weekday) IsValid() bool {
	_, ok := weekdays[w]
	return ok
}

// ServiceStatus bookability status of a slot
type ServiceStatus string

const (
	ServiceStatusAvailable   ServiceStatus = "AVAILABLE"
	ServiceStatusUnavailable ServiceStatus = "UNAVAILABLE"
)

// Slot is a bookable unit of service time, pinned to one date or recurring weekly
type Slot struct {
	ID            string               `json:"id"`
	ServiceID     string               `json:"service_id,omitempty"`
	SpecificDate  *types.Date          `json:"specific_date,omitempty"`
	DayOfWeek     *Weekday             `json:"day_of_week,omitempty"`
	StartTime     types.TimeString     `json:"start_time"`
	EndTime       types.TimeString     `json:"end_time"`
	MaxCapacity   int                  `json:"max_capacity"`
	Price         *float64             `json:"price,omitempty"`
	ServiceStatus ServiceStatus        `json:"service_status,omitempty"`
	IsDeleted     bool                 `json:"is_deleted,omitempty"`
	PetGroupID    *string              `json:"pet_group_id,omitempty"`
	Availability  []AvailabilityRecord `json:"availability,omitempty"`
}

// IsBookable returns true if the slot is not soft-deleted and its status is AVAILABLE
func (s *Slot) IsBookable() bool {
	return !s.IsDeleted && s.ServiceStatus == ServiceStatusAvailable
}

// IsPinned returns true if the slot is bound to a single calendar date
func (s *Slot) IsPinned() bool {
	return s.SpecificDate != nil && !s.SpecificDate.IsZero()
}

// IsRecurring returns true if the slot repeats weekly. A pinned slot is never recurring,
// even if the backend also sent day_of_week.
func (s *Slot) IsRecurring() bool {
	return !s.IsPinned() && s.DayOfWeek != nil && *s.DayOfWeek != ""
}

// AvailabilityFor returns the availability record for the date or nil
func (s *Slot) AvailabilityFor(date types.Date) *AvailabilityRecord {
	for i := range s.Availability {
		if s.Availability[i].BookingDate.Equal(date) {
			return &s.Availability[i]
		}
	}
	return nil
}

// EffectivePrice returns the slot price if set, otherwise the service base price
func (s *Slot) EffectivePrice(basePrice float64) float64 {
	if s.Price != nil {
		return *s.Price
	}
	return basePrice
}

// AvailabilityRecord booked/max counters for one slot on one date, as reported by the backend.
// booked_count <= max_capacity is not guaranteed. MaxCapacity is nil when the backend
// did not send it, in which case the slot's nominal capacity applies.
type AvailabilityRecord struct {
	SlotID      string     `json:"slot_id"`
	BookingDate types.Date `json:"booking_date"`
	BookedCount int        `json:"booked_count"`
	MaxCapacity *int       `json:"max_capacity,omitempty"`
}

// PetGroup display-only details of the pet group a slot is meant for
type PetGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
