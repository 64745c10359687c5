package get_cart

import (
	"net/http"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
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

// Handle GET /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := reqctx.Session(r.Context())

	cart, err := h.service.Get(r.Context(), session)
	if err != nil {
		h.logger.Error("GET /cart - Failed to load cart: session=%s, error=%v", session, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCart(cart))
}
