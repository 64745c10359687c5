package clear_cart

import (
	"net/http"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

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

// Handle DELETE /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := reqctx.Session(r.Context())

	if err := h.service.Clear(r.Context(), session); err != nil {
		h.logger.Error("DELETE /cart - Failed to clear cart: session=%s, error=%v", session, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondNoContent(w)
}
