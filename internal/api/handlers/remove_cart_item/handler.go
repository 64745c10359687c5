package remove_cart_item

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	cartService "github.com/m04kA/SMC-PetCafeGateway/internal/service/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

const msgItemNotFound = "Không tìm thấy mục trong giỏ hàng"

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

// Handle DELETE /api/v1/cart/items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := reqctx.Session(r.Context())
	itemID := mux.Vars(r)["itemId"]

	cart, err := h.service.Remove(r.Context(), session, itemID)
	if err != nil {
		switch {
		case errors.Is(err, cartService.ErrItemNotFound):
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("DELETE /cart/items/{id} - Failed to remove item: session=%s, item_id=%s, error=%v", session, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCart(cart))
}
