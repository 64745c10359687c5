package get_attendance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	expandAttendance "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/expand_attendance"
)

const (
	msgInvalidDate  = "Ngày không hợp lệ, định dạng YYYY-MM-DD"
	msgInvalidRange = "Khoảng thời gian không hợp lệ (tối đa 31 ngày)"
)

type Handler struct {
	useCase ExpandAttendanceUseCase
	logger  Logger
}

func NewHandler(useCase ExpandAttendanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/attendance
// Query params: from, to (required, YYYY-MM-DD), teamId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(q.Get("from"), q.Get("to"), q.Get("teamId"))
	if err != nil {
		h.logger.Warn("GET /attendance - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, expandAttendance.ErrInvalidInput):
			h.logger.Warn("GET /attendance - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /attendance - Failed to expand attendance: from=%s, to=%s, error=%v",
				useCaseReq.From, useCaseReq.To, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /attendance - Attendance expanded: from=%s, to=%s, entries=%d",
		result.From, result.To, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
