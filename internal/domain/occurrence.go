package domain

import "github.com/m04kA/SMC-PetCafeGateway/pkg/types"

// Occurrence is a slot resolved to one concrete calendar date.
// Built fresh on every resolution and never mutated afterwards.
type Occurrence struct {
	Slot         Slot
	Date         types.Date
	Availability *AvailabilityRecord
	IsAvailable  bool
	PetGroup     *PetGroup
}

// OccurrenceKey composite key of a slot on a date
func OccurrenceKey(slotID string, date types.Date) string {
	return slotID + "_" + date.String()
}

func (o *Occurrence) Key() string {
	return OccurrenceKey(o.Slot.ID, o.Date)
}

// Capacity prefers the availability record's max_capacity over the slot's nominal one
func (o *Occurrence) Capacity() int {
	return effectiveCapacity(&o.Slot, o.Availability)
}

// BookedCount returns 0 when there is no availability record
func (o *Occurrence) BookedCount() int {
	if o.Availability == nil {
		return 0
	}
	return o.Availability.BookedCount
}

// RemainingSpots returns -1 for unlimited capacity (max_capacity = 0)
func (o *Occurrence) RemainingSpots() int {
	capacity := o.Capacity()
	if capacity <= 0 {
		return -1
	}
	remaining := capacity - o.BookedCount()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsOccurrenceFull full iff capacity > 0 and booked >= capacity.
// A missing availability record means the occurrence is open.
func IsOccurrenceFull(slot *Slot, availability *AvailabilityRecord) bool {
	if availability == nil {
		return false
	}
	capacity := effectiveCapacity(slot, availability)
	return capacity > 0 && availability.BookedCount >= capacity
}

func effectiveCapacity(slot *Slot, availability *AvailabilityRecord) int {
	if availability != nil && availability.MaxCapacity != nil {
		return *availability.MaxCapacity
	}
	return slot.MaxCapacity
}
