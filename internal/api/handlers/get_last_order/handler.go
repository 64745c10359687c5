package get_last_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	cartService "github.com/m04kA/SMC-PetCafeGateway/internal/service/cart"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

const msgNoOrder = "Chưa có đơn đặt lịch nào"

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/last
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := reqctx.Session(r.Context())

	order, err := h.service.LastOrder(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrNoLastOrder):
			handlers.RespondNotFound(w, msgNoOrder)

		default:
			h.logger.Error("GET /orders/last - Failed to load last order: session=%s, error=%v", session, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}
