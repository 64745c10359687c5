package get_available_slots

import (
	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/get_available_slots"
)

// OccurrenceResponse одно занятие: слот на конкретную дату
type OccurrenceResponse struct {
	Key            string           `json:"key"`
	Date           string           `json:"date"`
	Slot           domain.Slot      `json:"slot"`
	IsAvailable    bool             `json:"isAvailable"`
	BookedCount    int              `json:"bookedCount"`
	MaxCapacity    int              `json:"maxCapacity"`
	RemainingSpots *int             `json:"remainingSpots,omitempty"` // nil при неограниченной вместимости
	PetGroup       *domain.PetGroup `json:"petGroup,omitempty"`
}

// OccurrencesResponse HTTP response model
type OccurrencesResponse struct {
	ServiceID   string               `json:"serviceId"`
	Today       string               `json:"today"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *OccurrencesResponse {
	out := &OccurrencesResponse{
		ServiceID:   resp.ServiceID,
		Today:       resp.Today.String(),
		Occurrences: make([]OccurrenceResponse, 0, len(resp.Occurrences)),
	}

	for i := range resp.Occurrences {
		o := &resp.Occurrences[i]
		slot := o.Slot
		slot.Availability = nil // доступность уже отражена в полях занятия

		item := OccurrenceResponse{
			Key:         o.Key(),
			Date:        o.Date.String(),
			Slot:        slot,
			IsAvailable: o.IsAvailable,
			BookedCount: o.BookedCount(),
			MaxCapacity: o.Capacity(),
			PetGroup:    o.PetGroup,
		}
		if remaining := o.RemainingSpots(); remaining >= 0 {
			item.RemainingSpots = &remaining
		}
		out.Occurrences = append(out.Occurrences, item)
	}
	return out
}
