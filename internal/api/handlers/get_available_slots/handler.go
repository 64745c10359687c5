package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "Thiếu mã dịch vụ"
	msgServiceNotFound  = "Không tìm thấy dịch vụ"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/occurrences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := strings.TrimSpace(mux.Vars(r)["serviceId"])
	if serviceID == "" {
		h.logger.Warn("GET /services/{id}/occurrences - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{ServiceID: serviceID})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/occurrences - Invalid input: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgMissingServiceID)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/occurrences - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /services/{id}/occurrences - Failed to resolve slots: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{id}/occurrences - Occurrences resolved: service_id=%s, count=%d",
		serviceID, len(response.Occurrences))
	handlers.RespondJSON(w, http.StatusOK, response)
}
