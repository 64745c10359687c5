package checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCafeGateway/internal/api/handlers"
	checkoutUC "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/checkout"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
)

const (
	msgInvalidRequestBody = "Dữ liệu không hợp lệ"
	msgEmptyCart          = "Giỏ hàng trống"
	msgMissingContactInfo = "Vui lòng điền thông tin liên hệ"
	msgCheckoutFailed     = "Đặt lịch thất bại, vui lòng thử lại"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/cart/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := reqctx.Session(r.Context())

	var req CheckoutRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /cart/checkout - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session))
	if err != nil {
		var rejected *checkoutUC.RejectedError
		switch {
		case errors.Is(err, checkoutUC.ErrInvalidInput):
			h.logger.Warn("POST /cart/checkout - Invalid input: session=%s, error=%v", session, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, checkoutUC.ErrEmptyCart):
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, checkoutUC.ErrMissingContactInfo):
			handlers.RespondUnprocessable(w, msgMissingContactInfo)

		case errors.As(err, &rejected):
			h.logger.Warn("POST /cart/checkout - Order rejected: session=%s, message=%s", session, rejected.Message)
			handlers.RespondUnprocessable(w, rejected.Message)

		default:
			h.logger.Error("POST /cart/checkout - Checkout failed: session=%s, error=%v", session, err)
			handlers.RespondBadGateway(w, msgCheckoutFailed)
		}
		return
	}

	h.logger.Info("POST /cart/checkout - Order created: session=%s, order_id=%s", session, result.Order.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
