package add_to_cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	cartService "github.com/m04kA/SMC-PetCafeGateway/internal/service/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

const (
	msgInvalidRequestBody = "Dữ liệu không hợp lệ"
	msgAddFailed          = "Không thể thêm vào giỏ hàng, vui lòng thử lại"
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

// Handle POST /api/v1/cart/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := reqctx.Session(r.Context())

	var req AddToCartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cart, err := h.service.Add(r.Context(), session, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrInvalidInput):
			h.logger.Warn("POST /cart/items - Invalid item: session=%s, error=%v", session, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /cart/items - Failed to add item: session=%s, error=%v", session, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgAddFailed)
		}
		return
	}

	h.logger.Info("POST /cart/items - Item added: session=%s, slot_id=%s, count=%d", session, req.Slot.ID, len(cart.Items))
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainCart(cart))
}
